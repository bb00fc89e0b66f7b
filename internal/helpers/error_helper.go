package helpers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// IsUUIDSyntaxError recognizes the postgres error raised when a malformed
// identifier reaches a uuid column, so it can be translated to a 400
// instead of leaking a 500.
func IsUUIDSyntaxError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "invalid input syntax for type uuid")
}

// IsUniqueViolation recognizes a unique-constraint failure from the store.
// The composite indexes on the join tables are the authoritative guard
// against duplicate pairs; this translates a lost race into a 409.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}
