package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/goofitre/carcare-api/internal/httpresp"
	"github.com/goofitre/carcare-api/internal/middleware"
	ucAdmin "github.com/goofitre/carcare-api/internal/usecase/admin"
	ucStore "github.com/goofitre/carcare-api/internal/usecase/store"
	ucUser "github.com/goofitre/carcare-api/internal/usecase/user"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	accounts  *ucUser.Accounts
	stores    *ucStore.ListStores
	setOpen   *ucStore.SetStoreOpen
	delStore  *ucStore.DeleteStore
	dashboard *ucAdmin.Dashboard
}

func NewAdminHandler(
	accounts *ucUser.Accounts,
	stores *ucStore.ListStores,
	setOpen *ucStore.SetStoreOpen,
	delStore *ucStore.DeleteStore,
	dashboard *ucAdmin.Dashboard,
) *AdminHandler {
	return &AdminHandler{
		accounts:  accounts,
		stores:    stores,
		setOpen:   setOpen,
		delStore:  delStore,
		dashboard: dashboard,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateUserRequest struct {
	Name     string `json:"name" binding:"max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type OpenRequest struct {
	IsOpen *bool `json:"is_open" binding:"required"`
}

// ======================================================
// USERS
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.accounts.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "user_list")
		return
	}
	httpresp.List(c, users, int64(len(users)))
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	u, err := h.accounts.CreateUser(c.Request.Context(), middleware.Actor(c).UserID, ucUser.NewUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err, "user_create")
		return
	}
	httpresp.Created(c, u)
}

func (h *AdminHandler) ChangeRole(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	role, err := h.accounts.ChangeRole(c.Request.Context(), middleware.Actor(c).UserID, c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err, "user_role")
		return
	}
	httpresp.OK(c, gin.H{"id": c.Param("id"), "role": role})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.accounts.DeleteUser(c.Request.Context(), middleware.Actor(c).UserID, c.Param("id")); err != nil {
		respondError(c, err, "user_delete")
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}

// ======================================================
// STORES
// ======================================================

func (h *AdminHandler) ListStores(c *gin.Context) {
	stores, err := h.stores.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err, "store_list")
		return
	}
	httpresp.List(c, stores, int64(len(stores)))
}

func (h *AdminHandler) SetStoreOpen(c *gin.Context) {
	var req OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if err := h.setOpen.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id"), *req.IsOpen); err != nil {
		respondError(c, err, "store_open")
		return
	}
	httpresp.OK(c, gin.H{"id": c.Param("id"), "is_open": *req.IsOpen})
}

func (h *AdminHandler) DeleteStore(c *gin.Context) {
	if err := h.delStore.Execute(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		respondError(c, err, "store_delete")
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *AdminHandler) Dashboard(c *gin.Context) {
	out, err := h.dashboard.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err, "dashboard")
		return
	}
	httpresp.OK(c, out)
}
