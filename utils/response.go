package utils

import "github.com/gin-gonic/gin"

// ErrorResponse is the uniform body for failed requests.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Error writes a JSON error body with the given status code.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, ErrorResponse{Message: message})
}
