package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
	"github.com/noah-isme/enrollment-api/pkg/response"
)

// pathID parses a non-negative integer path parameter. Anything else is answered
// with an empty 404, like an unmatched route.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 63)
	if err != nil {
		response.Empty(c, http.StatusNotFound)
		return 0, false
	}
	return int64(id), true
}

// bindRequest decodes a JSON, form or query payload into dst. An empty body
// leaves every field absent.
func bindRequest(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBind(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInvalidPayload, "")
	}
	return nil
}
