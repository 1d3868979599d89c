package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"booking-gateway-server/models"
	"booking-gateway-server/store"
)

// AdminHandler serves API key management and contractor activation. Guarded
// by AdminAuthMiddleware.
type AdminHandler struct {
	Keys        *store.ApiKeyRegistry
	Contractors *store.ContractorStore
}

// RegisterAdminRoutes registers all admin routes
func RegisterAdminRoutes(router *gin.RouterGroup, h *AdminHandler) {
	router.POST("/api-keys", h.MintApiKey)
	router.PATCH("/api-keys/:key/deactivate", h.DeactivateApiKey)
	router.PATCH("/contractors/:id/activate", h.ActivateContractor)
}

func (h *AdminHandler) MintApiKey(c *gin.Context) {
	var req models.ApiKeyCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := h.Keys.Mint(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mint API key"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"api_key": key})
}

func (h *AdminHandler) DeactivateApiKey(c *gin.Context) {
	if err := h.Keys.Deactivate(c.Request.Context(), c.Param("key")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "API key not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate API key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "API key deactivated"})
}

func (h *AdminHandler) ActivateContractor(c *gin.Context) {
	contractorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contractor ID"})
		return
	}

	contractor, err := h.Contractors.Activate(c.Request.Context(), uint(contractorID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contractor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate contractor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Contractor activated",
		"contractor": contractor,
	})
}
