package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
)

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

// JSON sends the resource as the bare response body.
func JSON(c *gin.Context, status int, data interface{}) {
	noStore(c)
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Empty responds with the status code and no body.
func Empty(c *gin.Context, status int) {
	noStore(c)
	c.Status(status)
	c.Writer.WriteHeaderNow()
}

// Error converts the error to its status code and, where the kind carries one, a JSON body.
// Internal failures are attached to the context so the request logger records the cause.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	if appErr.Kind == appErrors.KindInternal {
		_ = c.Error(err)
		c.JSON(appErr.Status, appErrors.ErrInternal)
		return
	}
	if !appErr.HasBody() {
		c.Status(appErr.Status)
		c.Writer.WriteHeaderNow()
		return
	}
	c.JSON(appErr.Status, appErr)
}
