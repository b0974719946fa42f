package routes

import (
	"net/http"

	productControllers "github.com/Ramneek99/shopcarts/controllers/product"
	shopcartControllers "github.com/Ramneek99/shopcarts/controllers/shopcart"
	"github.com/Ramneek99/shopcarts/httperr"
	"github.com/Ramneek99/shopcarts/middleware"
	"github.com/Ramneek99/shopcarts/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Index reports service metadata so GET / doubles as a liveness check.
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Shopcarts REST API Service",
		"version": "1.0",
		"paths": gin.H{
			"shopcarts":      "/shopcarts",
			"filter_by_name": "/shopcarts/products/{name}",
			"export":         "/export/shopcarts",
		},
	})
}

// SetupRoutes is the single entry-point that wires every endpoint onto the
// engine, with the stores built once and injected into the handlers.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	carts := models.NewShopcartStore(db)
	products := models.NewProductStore(db)

	r.HandleMethodNotAllowed = true
	r.NoMethod(httperr.MethodNotAllowedHandler)
	r.NoRoute(httperr.NotFoundHandler)

	r.GET("/", Index)
	r.GET("/export/shopcarts", shopcartControllers.ExportShopcartsToExcel(carts))

	listCartProducts := productControllers.ListCartProducts(carts)
	filterByName := shopcartControllers.FilterShopcartsByProductName(carts)
	clearCart := shopcartControllers.ClearShopcart(carts)
	addProduct := productControllers.AddProduct(carts, products)
	getProduct := productControllers.GetProduct(products)
	updateProduct := productControllers.UpdateProduct(products)
	deleteProduct := productControllers.DeleteProduct(products)

	sc := r.Group("/shopcarts")
	{
		sc.GET("", shopcartControllers.ListShopcarts(carts))
		sc.POST("/:id", middleware.RequireJSON, shopcartControllers.CreateShopcart(carts))
		sc.GET("/:id", shopcartControllers.GetShopcart(carts))
		sc.PUT("/:id", middleware.RequireJSON, shopcartControllers.UpdateShopcart(carts))
		sc.DELETE("/:id", shopcartControllers.DeleteShopcart(carts))

		// Gin's router does not allow a static segment where a wildcard is
		// already registered, so /shopcarts/products/{name},
		// /shopcarts/{id}/products and /shopcarts/{id}/clear share the
		// wildcard routes below and are told apart by segment value. The
		// external paths are exactly the documented ones.
		sc.GET("/:id/:sub", func(c *gin.Context) {
			switch {
			case c.Param("id") == "products":
				setParam(c, "name", c.Param("sub"))
				filterByName(c)
			case c.Param("sub") == "products":
				listCartProducts(c)
			default:
				httperr.NotFoundHandler(c)
			}
		})
		sc.POST("/:id/:sub", middleware.RequireJSON, productsSegmentOnly(addProduct))
		sc.PUT("/:id/:sub", func(c *gin.Context) {
			if c.Param("sub") != "clear" {
				httperr.NotFoundHandler(c)
				return
			}
			clearCart(c)
		})

		sc.GET("/:id/:sub/:pid", productsSegmentOnly(getProduct))
		sc.PUT("/:id/:sub/:pid", middleware.RequireJSON, productsSegmentOnly(updateProduct))
		sc.DELETE("/:id/:sub/:pid", productsSegmentOnly(deleteProduct))
	}
}

// setParam exposes a dispatched wildcard value under the name the handler
// reads it by.
func setParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

func productsSegmentOnly(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("sub") != "products" {
			httperr.NotFoundHandler(c)
			return
		}
		next(c)
	}
}
