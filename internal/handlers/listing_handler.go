package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/visipakalpojumi/backend/internal/middleware"
	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/repositories"
	"github.com/visipakalpojumi/backend/internal/services"
	"github.com/visipakalpojumi/backend/internal/services/dto"
)

type ListingHandler struct {
	*BaseHandler
	listingService services.ListingService
}

func NewListingHandler(base *BaseHandler, listingService services.ListingService) *ListingHandler {
	return &ListingHandler{
		BaseHandler:    base,
		listingService: listingService,
	}
}

func (h *ListingHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/services")
	{
		public.GET("", h.Browse)
		public.GET("/:serviceId", h.Get)
	}

	provider := r.Group("/services")
	provider.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleProvider))
	{
		provider.POST("", h.Create)
		provider.GET("/my", h.MyListings)
		provider.PUT("/:serviceId", h.Update)
		provider.DELETE("/:serviceId", h.Delete)
	}
}

func (h *ListingHandler) Browse(c *gin.Context) {
	page, limit := ParsePagination(c)

	filter := repositories.ListingFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	}
	if raw := c.Query("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}

	listings, pagination, err := h.listingService.Browse(filter, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondPage(c, listings, pagination)
}

func (h *ListingHandler) Get(c *gin.Context) {
	listing, err := h.listingService.Get(c.Request.Context(), c.Param("serviceId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, listing)
}

func (h *ListingHandler) Create(c *gin.Context) {
	providerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	listing, err := h.listingService.Create(providerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondCreated(c, listing)
}

func (h *ListingHandler) MyListings(c *gin.Context) {
	providerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, limit := ParsePagination(c)

	listings, pagination, err := h.listingService.ListByProvider(providerID, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondPage(c, listings, pagination)
}

func (h *ListingHandler) Update(c *gin.Context) {
	providerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateListingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	listing, err := h.listingService.Update(providerID, c.Param("serviceId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, listing)
}

func (h *ListingHandler) Delete(c *gin.Context) {
	providerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.listingService.Delete(providerID, c.Param("serviceId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondMessage(c, "Listing deleted")
}
