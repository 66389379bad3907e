package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
)

// ErrorResponse is the error payload both services expose. The shape is part
// of the inter-service contract and must stay byte-compatible.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// OK writes data as the raw response body. Handlers return DTOs directly;
// there is no success envelope on the wire.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes data with a 201 status.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error maps err to its transport status via apperr and writes the
// standard error payload.
func Error(c *gin.Context, err error) {
	ErrorWithStatus(c, apperr.HTTPStatus(err), apperr.Label(err), err.Error())
}

// ErrorWithStatus writes the standard error payload with an explicit status.
func ErrorWithStatus(c *gin.Context, status int, label, message string) {
	c.JSON(status, ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     label,
		Message:   message,
		Path:      c.Request.URL.Path,
	})
	c.Abort()
}
