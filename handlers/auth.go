package handlers

import (
	"net/http"

	"restaurant-orders-api/middleware"
	"restaurant-orders-api/models"
	"restaurant-orders-api/services"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name     string           `json:"name" binding:"required"`
	Email    string           `json:"email" binding:"required,email"`
	Password string           `json:"password" binding:"required,min=6"`
	Role     models.StaffRole `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new staff account
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	staff, err := h.Staff.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusCreated, "Account created successfully", staff)
}

// Login authenticates a staff member and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	staff, err := h.Staff.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, "Login successful", staff)
}

// GetProfile returns the authenticated staff member
func (h *Handler) GetProfile(c *gin.Context) {
	staff, err := h.Staff.Get(c.Request.Context(), middleware.GetStaffID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

func (h *Handler) respondWithToken(c *gin.Context, code int, message string, staff *models.Staff) {
	token, err := middleware.GenerateToken(staff)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(code, gin.H{
		"message": message,
		"token":   token,
		"staff": gin.H{
			"id":    staff.ID,
			"name":  staff.Name,
			"email": staff.Email,
			"role":  staff.Role,
		},
	})
}
