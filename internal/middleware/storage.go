package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"moneybook/internal/database"
	apperrors "moneybook/internal/errors"
	"moneybook/internal/logger"
)

const storagePingTimeout = 2 * time.Second

// StorageGate rejects requests with 503 when the connection pool cannot
// reach the database, before any handler logic runs.
func StorageGate(manager *database.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storagePingTimeout)
		defer cancel()

		if err := manager.Ping(ctx); err != nil {
			logger.Get().Errorw("storage unavailable",
				"error", err.Error(),
				"path", c.Request.URL.Path,
			)
			c.AbortWithStatusJSON(apperrors.ErrStorageUnavailable.StatusCode, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrStorageUnavailable.Code,
					"message": apperrors.ErrStorageUnavailable.Message,
				},
			})
			return
		}
		c.Next()
	}
}
