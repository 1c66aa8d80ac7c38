package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the JSON error body returned by the HTTP surface.
type APIError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// AbortWithError maps an error to its HTTP status and sends a structured
// error response, aborting the request.
func AbortWithError(c *gin.Context, err error) {
	kind := KindOf(err)
	c.AbortWithStatusJSON(statusFor(kind), gin.H{
		"error": APIError{Kind: kind, Message: MessageOf(err)},
	})
}

// AbortWithBadRequest sends a 400 response with an invalid-argument error
// and aborts the request.
func AbortWithBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error": APIError{Kind: KindInvalidArgument, Message: message},
	})
}

func statusFor(kind Kind) int {
	switch kind {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindFailedPrecondition:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}
