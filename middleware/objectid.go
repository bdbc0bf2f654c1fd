package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hanuiwon/clinic-api/utils"
)

// CheckObjectID rejects requests whose :id path parameter is not a
// syntactically valid object id, before any controller runs.
func CheckObjectID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, err := primitive.ObjectIDFromHex(ctx.Param("id")); err != nil {
			utils.Error(ctx, http.StatusBadRequest, "invalid ID")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
