package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/goofitre/carcare-api/internal/httpresp"
	"github.com/goofitre/carcare-api/internal/middleware"
	ucUser "github.com/goofitre/carcare-api/internal/usecase/user"
)

type AuthHandler struct {
	accounts *ucUser.Accounts
}

func NewAuthHandler(accounts *ucUser.Accounts) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	session, err := h.accounts.Register(c.Request.Context(), ucUser.NewUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err, "register")
		return
	}
	httpresp.Created(c, session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	session, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "login")
		return
	}
	httpresp.OK(c, session)
}

func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.accounts.Me(c.Request.Context(), middleware.Actor(c).UserID)
	if err != nil {
		respondError(c, err, "me")
		return
	}
	httpresp.OK(c, profile)
}
