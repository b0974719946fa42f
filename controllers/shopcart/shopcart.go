package shopcartControllers

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

// cartID parses the :id path segment. A non-integer id is a 400, reported
// by the caller.
func cartID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest,
			fmt.Sprintf("Shopcart id '%s' is not an integer", c.Param("id")))
		return 0, false
	}
	return id, true
}

// POST /shopcarts/:id
func CreateShopcart(carts *models.ShopcartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := cartID(c)
		if !ok {
			return
		}

		// Duplicate ids are rejected before the body is even looked at.
		if _, err := carts.Find(id); err == nil {
			httperr.Abort(c, http.StatusConflict,
				fmt.Sprintf("Shopcart with id '%d' already exists", id))
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Abort(c, http.StatusInternalServerError, "Failed to look up shopcart")
			return
		}

		var body any
		if err := c.ShouldBindJSON(&body); err != nil {
			httperr.Abort(c, http.StatusBadRequest,
				"Invalid Shopcart: body of request contained bad or no data")
			return
		}
		var cart models.Shopcart
		if err := cart.Deserialize(body); err != nil {
			httperr.Abort(c, http.StatusBadRequest, err.Error())
			return
		}

		// The path id is canonical; an id in the body does not override it.
		cart.ID = id
		if err := carts.Create(&cart); err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "Failed to create shopcart")
			return
		}

		c.Header("Location", fmt.Sprintf("/shopcarts/%d", cart.ID))
		c.JSON(http.StatusCreated, cart.Serialize())
	}
}

// GET /shopcarts/:id
func GetShopcart(carts *models.ShopcartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := cartID(c)
		if !ok {
			return
		}
		cart, err := carts.Find(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Abort(c, http.StatusNotFound,
					fmt.Sprintf("Shopcart with id '%d' was not found", id))
			} else {
				httperr.Abort(c, http.StatusInternalServerError, "Failed to fetch shopcart")
			}
			return
		}
		c.JSON(http.StatusOK, cart.Serialize())
	}
}

// GET /shopcarts
// An optional ?id= (alias ?customer_id=) narrows the list to one cart; an
// absent match is an empty list, not an error.
func ListShopcarts(carts *models.ShopcartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Query("id")
		if idParam == "" {
			idParam = c.Query("customer_id")
		}
		if idParam != "" {
			id, err := strconv.Atoi(idParam)
			if err != nil {
				httperr.Abort(c, http.StatusBadRequest,
					fmt.Sprintf("Shopcart id '%s' is not an integer", idParam))
				return
			}
			results := make([]map[string]any, 0, 1)
			cart, err := carts.Find(id)
			if err == nil {
				results = append(results, cart.Serialize())
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Abort(c, http.StatusInternalServerError, "Failed to fetch shopcart")
				return
			}
			c.JSON(http.StatusOK, results)
			return
		}

		all, err := carts.All()
		if err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "Failed to list shopcarts")
			return
		}
		results := make([]map[string]any, 0, len(all))
		for i := range all {
			results = append(results, all[i].Serialize())
		}
		c.JSON(http.StatusOK, results)
	}
}

// PUT /shopcarts/:id
// Replaces the cart's product collection wholesale.
func UpdateShopcart(carts *models.ShopcartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := cartID(c)
		if !ok {
			return
		}
		if _, err := carts.Find(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Abort(c, http.StatusNotFound,
					fmt.Sprintf("Shopcart with id '%d' was not found", id))
			} else {
				httperr.Abort(c, http.StatusInternalServerError, "Failed to fetch shopcart")
			}
			return
		}

		var body any
		if err := c.ShouldBindJSON(&body); err != nil {
			httperr.Abort(c, http.StatusBadRequest,
				"Invalid Shopcart: body of request contained bad or no data")
			return
		}
		var cart models.Shopcart
		if err := cart.Deserialize(body); err != nil {
			httperr.Abort(c, http.StatusBadRequest, err.Error())
			return
		}
		cart.ID = id
		if err := carts.Update(&cart); err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "Failed to update shopcart")
			return
		}
		c.JSON(http.StatusOK, cart.Serialize())
	}
}

// DELETE /shopcarts/:id
// Cascades to the cart's products; a 204 comes back whether or not the cart
// existed.
func DeleteShopcart(carts *models.ShopcartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := cartID(c)
		if !ok {
			return
		}
		if err := carts.Delete(id); err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "Failed to delete shopcart")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// PUT /shopcarts/:id/clear
// Empties the product collection and keeps the cart.
func ClearShopcart(carts *models.ShopcartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := cartID(c)
		if !ok {
			return
		}
		cart, err := carts.Find(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httperr.Abort(c, http.StatusNotFound,
					fmt.Sprintf("Shopcart with id '%d' was not found", id))
			} else {
				httperr.Abort(c, http.StatusInternalServerError, "Failed to fetch shopcart")
			}
			return
		}
		if err := carts.Clear(cart); err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "Failed to clear shopcart")
			return
		}
		c.JSON(http.StatusOK, cart.Serialize())
	}
}

// GET /shopcarts/products/:name
// Every cart holding a product with the exact name; empty list when none do.
func FilterShopcartsByProductName(carts *models.ShopcartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		matches, err := carts.FilterByProductName(name)
		if err != nil {
			httperr.Abort(c, http.StatusInternalServerError, "Failed to filter shopcarts")
			return
		}
		results := make([]map[string]any, 0, len(matches))
		for i := range matches {
			results = append(results, matches[i].Serialize())
		}
		c.JSON(http.StatusOK, results)
	}
}
