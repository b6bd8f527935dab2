package api

import (
	"net/http"

	"creatorhub/internal/middleware"
	"creatorhub/internal/response"
	"creatorhub/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=creator subscriber admin"`
}

// Register creates a new account.
// POST /auth/register
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	user, token, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}

	response.CreatedJSON(c, gin.H{
		"user":  user,
		"token": token,
	})
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a session token.
// POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "invalid request format: "+err.Error())
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}

	response.SuccessJSON(c, gin.H{
		"user":  user,
		"token": token,
	})
}

// Me returns the authenticated user.
// GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	principal := middleware.MustPrincipal(c)

	user, err := h.users.GetUser(c.Request.Context(), principal.UserID)
	if err != nil {
		response.ErrorFromErr(c, err)
		return
	}
	response.SuccessJSON(c, user)
}
