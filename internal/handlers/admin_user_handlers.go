package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/middleware"
	"github.com/sportall/app-recruit/internal/models"
	"github.com/sportall/app-recruit/internal/services"
	"github.com/sportall/app-recruit/internal/utils"
	"go.uber.org/zap"
)

// AdminUserHandler serves admin account management
type AdminUserHandler struct {
	users  services.UserStore
	logger *logging.SafeLogger
}

// NewAdminUserHandler creates an AdminUserHandler
func NewAdminUserHandler(users services.UserStore, logger *logging.SafeLogger) *AdminUserHandler {
	return &AdminUserHandler{
		users:  users,
		logger: logger.With(zap.String("handler", "admin_users")),
	}
}

// List godoc
// @Summary List accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} ListResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/users [get]
func (h *AdminUserHandler) List(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 20)

	users, total, err := h.users.List(c.Request.Context(), c.Query("role"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{
		Data: users,
		Meta: services.NewListMeta(page, limit, total),
	})
}

// Get godoc
// @Summary Get an account
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {object} models.User
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{id} [get]
func (h *AdminUserHandler) Get(c *gin.Context) {
	userID, err := parseObjectID(c, "id")
	if err != nil {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type roleUpdateRequest struct {
	Role string `json:"role" binding:"required,oneof=player coach admin"`
}

// UpdateRole godoc
// @Summary Change an account's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Param data body roleUpdateRequest true "New role"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{id}/role [patch]
func (h *AdminUserHandler) UpdateRole(c *gin.Context) {
	userID, err := parseObjectID(c, "id")
	if err != nil {
		return
	}

	var req roleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.users.UpdateRole(c.Request.Context(), userID, req.Role); err != nil {
		respondError(c, err)
		return
	}

	if err := utils.LogAuditEvent(c.Request.Context(), middleware.UserID(c),
		models.AuditActionUserRoleChanged, "User", userID.Hex(),
		map[string]interface{}{"role": req.Role}); err != nil {
		h.logger.Warn("audit log write failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Delete godoc
// @Summary Delete an account
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminUserHandler) Delete(c *gin.Context) {
	userID, err := parseObjectID(c, "id")
	if err != nil {
		return
	}

	if err := h.users.Delete(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	if err := utils.LogAuditEvent(c.Request.Context(), middleware.UserID(c),
		models.AuditActionUserDeleted, "User", userID.Hex(), nil); err != nil {
		h.logger.Warn("audit log write failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
