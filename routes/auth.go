package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-gateway-server/models"
	"booking-gateway-server/store"
	"booking-gateway-server/utils"
)

// AuthHandler implements the contractor Authenticator surface: signup, login,
// current account. Freshly registered contractors start as pending and
// cannot list or claim jobs until activated.
type AuthHandler struct {
	Contractors *store.ContractorStore
}

// Register creates a pending contractor account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.ContractorRegister
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Contractors.GetByPhone(c.Request.Context(), req.PhoneNumber); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Phone number already registered"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	contractor := models.Contractor{
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hash,
		Status:       models.ContractorStatusPending,
	}
	if err := h.Contractors.Create(c.Request.Context(), &contractor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	token, err := utils.GenerateToken(contractor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Registration successful, account pending activation",
		"contractor": contractor,
		"token":      token,
	})
}

// Login verifies credentials and issues a JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.ContractorLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contractor, err := h.Contractors.GetByPhone(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, contractor.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(contractor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"contractor": contractor,
	})
}

// Me returns the authenticated contractor.
func (h *AuthHandler) Me(c *gin.Context) {
	contractor, _ := c.Get("contractor")
	c.JSON(http.StatusOK, gin.H{"contractor": contractor})
}
