package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/visipakalpojumi/backend/internal/middleware"
	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/services"
	"github.com/visipakalpojumi/backend/internal/services/dto"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", h.GetProfile)
		users.PUT("/me", h.UpdateProfile)
	}

	admin := r.Group("/admin/users")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.ListUsers)
		admin.PUT("/:userId/suspend", h.SuspendUser)
		admin.PUT("/:userId/activate", h.ActivateUser)
		admin.PUT("/:userId/verify-profile", h.VerifyProviderProfile)
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, profile)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit := ParsePagination(c)

	users, pagination, err := h.userService.ListUsers(page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondPage(c, users, pagination)
}

func (h *UserHandler) SuspendUser(c *gin.Context) {
	if err := h.userService.SetUserStatus(c.Param("userId"), models.UserStatusSuspended); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "User suspended")
}

func (h *UserHandler) ActivateUser(c *gin.Context) {
	if err := h.userService.SetUserStatus(c.Param("userId"), models.UserStatusActive); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "User activated")
}

func (h *UserHandler) VerifyProviderProfile(c *gin.Context) {
	if err := h.userService.VerifyProviderProfile(c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondMessage(c, "Provider profile verified")
}
