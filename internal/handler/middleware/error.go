package middleware

import (
	"log/slog"
	"net/http"

	"serial-inventory/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes the last public error a handler attached. Errors attached
// with a bare c.Error are classified the same way httperr.Abort does.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		last := c.Errors.Last()
		if resp, ok := last.Meta.(httperr.Response); ok && last.IsType(gin.ErrorTypePublic) {
			c.JSON(resp.Status, resp)
			return
		}

		status, detail := httperr.Classify(last.Err)
		resp := httperr.Response{Status: status, Detail: detail}
		resp.Error.Message = last.Err.Error()
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(c.Request.Context(), "unhandled request error",
				"path", c.FullPath(), "error", last.Err.Error())
			resp.Error.Message = "Internal server error"
		}
		c.JSON(status, resp)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				attrs := []any{"error", err, "path", c.Request.URL.Path}
				if shop, ok := GetShop(c); ok {
					attrs = append(attrs, "shop", shop)
				}
				slog.ErrorContext(c.Request.Context(), "recovered from panic", attrs...)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
