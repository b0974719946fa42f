package shopcartControllers

import (
	"net/http"

	"github.com/Ramneek99/shopcarts/httperr"
	"github.com/Ramneek99/shopcarts/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// GET /export/shopcarts
// Streams every cart as an xlsx workbook, one row per line item. Carts with
// no products still get a row so they are visible in the export.
func ExportShopcartsToExcel(carts *models.ShopcartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := carts.All()
		if err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "Failed to fetch shopcarts")
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Shopcarts")
		if err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "Failed to create Excel sheet")
			return
		}

		headers := []string{"ShopcartID", "ProductID", "Name", "Quantity", "Price"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, cart := range all {
			if len(cart.Products) == 0 {
				row := sheet.AddRow()
				row.AddCell().SetValue(cart.ID)
				continue
			}
			for _, product := range cart.Products {
				row := sheet.AddRow()
				row.AddCell().SetValue(cart.ID)
				row.AddCell().SetValue(product.ID)
				row.AddCell().SetValue(product.Name)
				row.AddCell().SetValue(product.Quantity)
				row.AddCell().SetValue(product.Price)
			}
		}

		c.Header("Content-Disposition", "attachment; filename=shopcarts.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "Failed to write Excel file")
			return
		}
	}
}
