package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/visipakalpojumi/backend/internal/middleware"
	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/services"
	"github.com/visipakalpojumi/backend/internal/services/dto"
)

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
}

func NewBookingHandler(base *BaseHandler, bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    base,
		bookingService: bookingService,
	}
}

func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware())
	{
		bookings.POST("", h.Create)
		bookings.GET("/user", h.ListForCustomer)
		bookings.GET("/user/:bookingId", h.Get)
		bookings.PUT("/user/:bookingId/cancel", h.Cancel)
	}

	provider := r.Group("/bookings/provider")
	provider.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleProvider))
	{
		provider.GET("", h.ListForProvider)
		provider.GET("/:bookingId", h.Get)
		provider.PUT("/:bookingId/status", h.AdvanceStatus)
	}

	admin := r.Group("/admin/bookings")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/stats", h.Stats)
	}
}

func (h *BookingHandler) Create(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Create(customerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, booking)
}

func (h *BookingHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Get(c.Param("bookingId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, booking)
}

func (h *BookingHandler) ListForCustomer(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	status, ok := ParseStatusFilter(c)
	if !ok {
		return
	}
	page, limit := ParsePagination(c)

	bookings, pagination, err := h.bookingService.ListForCustomer(customerID, status, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondPage(c, bookings, pagination)
}

func (h *BookingHandler) ListForProvider(c *gin.Context) {
	providerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	status, ok := ParseStatusFilter(c)
	if !ok {
		return
	}
	page, limit := ParsePagination(c)

	bookings, pagination, err := h.bookingService.ListForProvider(providerID, status, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondPage(c, bookings, pagination)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CancelBookingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Cancel(c.Param("bookingId"), customerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, booking)
}

func (h *BookingHandler) Stats(c *gin.Context) {
	stats, err := h.bookingService.Stats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, stats)
}

func (h *BookingHandler) AdvanceStatus(c *gin.Context) {
	providerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBookingStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.AdvanceStatus(c.Param("bookingId"), providerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, booking)
}
