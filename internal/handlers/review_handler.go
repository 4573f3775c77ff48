package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/visipakalpojumi/backend/internal/middleware"
	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/services"
	"github.com/visipakalpojumi/backend/internal/services/dto"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/reviews")
	{
		public.GET("/services/:serviceId", h.ListForListing)
	}

	customer := r.Group("/reviews")
	customer.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCustomer))
	{
		customer.POST("", h.Create)
		customer.PUT("/:reviewId", h.Update)
		customer.DELETE("/:reviewId", h.Delete)
	}

	provider := r.Group("/reviews")
	provider.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleProvider))
	{
		provider.POST("/:reviewId/respond", h.Respond)
	}
}

func (h *ReviewHandler) ListForListing(c *gin.Context) {
	page, limit := ParsePagination(c)

	reviews, pagination, err := h.reviewService.ListForListing(c.Param("serviceId"), page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondPage(c, reviews, pagination)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(customerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Update(customerID, c.Param("reviewId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(customerID, c.Param("reviewId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondMessage(c, "Review deleted")
}

func (h *ReviewHandler) Respond(c *gin.Context) {
	providerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RespondReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.reviewService.Respond(providerID, c.Param("reviewId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondMessage(c, "Response saved")
}
