package middleware

import (
	"net/http"

	"github.com/Ramneek99/shopcarts/httperr"
	"github.com/gin-gonic/gin"
)

// RequireJSON rejects body-bearing requests whose Content-Type is not
// application/json. Attached per-route; routes without a body skip it.
func RequireJSON(c *gin.Context) {
	if c.ContentType() != "application/json" {
		httperr.Abort(c, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}
	c.Next()
}
