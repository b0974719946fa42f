package productControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Ramneek99/shopcarts/httperr"
	"github.com/Ramneek99/shopcarts/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func pathInt(c *gin.Context, key, entity string) (int, bool) {
	value, err := strconv.Atoi(c.Param(key))
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest,
			fmt.Sprintf("%s id '%s' is not an integer", entity, c.Param(key)))
		return 0, false
	}
	return value, true
}

// findCart fetches the owning cart or writes the 404.
func findCart(c *gin.Context, carts *models.ShopcartStore, id int) (*models.Shopcart, bool) {
	cart, err := carts.Find(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Abort(c, http.StatusNotFound,
				fmt.Sprintf("Shopcart with id '%d' was not found", id))
		} else {
			httperr.Abort(c, http.StatusInternalServerError, "Failed to fetch shopcart")
		}
		return nil, false
	}
	return cart, true
}

// POST /shopcarts/:id/products
// The owning cart must exist before the body is validated.
func AddProduct(carts *models.ShopcartStore, products *models.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := pathInt(c, "id", "Shopcart")
		if !ok {
			return
		}
		if _, ok := findCart(c, carts, cartID); !ok {
			return
		}

		var body any
		if err := c.ShouldBindJSON(&body); err != nil {
			httperr.Abort(c, http.StatusBadRequest,
				"Invalid Product: body of request contained bad or no data")
			return
		}
		var product models.Product
		if err := product.Deserialize(body); err != nil {
			httperr.Abort(c, http.StatusBadRequest, err.Error())
			return
		}

		// The cart in the path owns the product regardless of the body.
		product.ShopcartID = cartID
		if err := products.Create(&product); err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "Failed to add product")
			return
		}

		c.Header("Location", fmt.Sprintf("/shopcarts/%d/products/%d", cartID, product.ID))
		c.JSON(http.StatusCreated, product.Serialize())
	}
}

// GET /shopcarts/:id/products
func ListCartProducts(carts *models.ShopcartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cartID, ok := pathInt(c, "id", "Shopcart")
		if !ok {
			return
		}
		cart, ok := findCart(c, carts, cartID)
		if !ok {
			return
		}
		results := make([]map[string]any, 0, len(cart.Products))
		for i := range cart.Products {
			results = append(results, cart.Products[i].Serialize())
		}
		c.JSON(http.StatusOK, results)
	}
}

// GET /shopcarts/:id/products/:pid
// The product is resolved by its own id.
func GetProduct(products *models.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		pid, ok := pathInt(c, "pid", "Product")
		if !ok {
			return
		}
		product, err := products.Find(pid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Abort(c, http.StatusNotFound,
					fmt.Sprintf("Product with id '%d' was not found", pid))
			} else {
				httperr.Abort(c, http.StatusInternalServerError, "Failed to fetch product")
			}
			return
		}
		c.JSON(http.StatusOK, product.Serialize())
	}
}

// PUT /shopcarts/:id/products/:pid
// Every field of the product is replaced; there is no partial merge.
func UpdateProduct(products *models.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		pid, ok := pathInt(c, "pid", "Product")
		if !ok {
			return
		}
		if _, err := products.Find(pid); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Abort(c, http.StatusNotFound,
					fmt.Sprintf("Product with id '%d' was not found", pid))
			} else {
				httperr.Abort(c, http.StatusInternalServerError, "Failed to fetch product")
			}
			return
		}

		var body any
		if err := c.ShouldBindJSON(&body); err != nil {
			httperr.Abort(c, http.StatusBadRequest,
				"Invalid Product: body of request contained bad or no data")
			return
		}
		var product models.Product
		if err := product.Deserialize(body); err != nil {
			httperr.Abort(c, http.StatusBadRequest, err.Error())
			return
		}
		product.ID = pid
		if err := products.Update(&product); err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "Failed to update product")
			return
		}
		c.JSON(http.StatusOK, product.Serialize())
	}
}

// DELETE /shopcarts/:id/products/:pid
// Always 204; deleting an absent product is a no-op.
func DeleteProduct(products *models.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		pid, ok := pathInt(c, "pid", "Product")
		if !ok {
			return
		}
		if _, err := products.Delete(pid); err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "Failed to delete product")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
