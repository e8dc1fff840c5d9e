package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneybook/internal/services"
)

// DataHandler handles the bulk reset endpoint.
type DataHandler struct {
	dataService services.DataServicer
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(dataService services.DataServicer) *DataHandler {
	return &DataHandler{dataService: dataService}
}

// ResetData deletes every transaction and asset owned by the session
// identity. Irreversible, and idempotent: a second call on an empty account
// still succeeds.
func (h *DataHandler) ResetData(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.dataService.ResetUserData(userID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All data deleted successfully."})
}
