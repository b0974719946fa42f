// Package httperr writes the error envelope shared by every endpoint:
// {"message": "<code> <reason>: <detail>"}.
package httperr

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Abort stops the handler chain and writes the structured error body.
func Abort(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{
		"message": fmt.Sprintf("%d %s: %s", status, http.StatusText(status), detail),
	})
}

// NotFoundHandler answers requests for paths outside the route table.
func NotFoundHandler(c *gin.Context) {
	Abort(c, http.StatusNotFound, fmt.Sprintf("%s was not found", c.Request.URL.Path))
}

// MethodNotAllowedHandler answers known paths hit with an unsupported verb.
func MethodNotAllowedHandler(c *gin.Context) {
	Abort(c, http.StatusMethodNotAllowed,
		fmt.Sprintf("method %s is not allowed on %s", c.Request.Method, c.Request.URL.Path))
}
