package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/visipakalpojumi/backend/internal/middleware"
	"github.com/visipakalpojumi/backend/internal/services"
	"github.com/visipakalpojumi/backend/internal/services/dto"
)

type ReferralHandler struct {
	*BaseHandler
	referralService services.ReferralService
}

func NewReferralHandler(base *BaseHandler, referralService services.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		BaseHandler:     base,
		referralService: referralService,
	}
}

func (h *ReferralHandler) RegisterRoutes(r *gin.RouterGroup) {
	referrals := r.Group("/referrals")
	referrals.Use(middleware.AuthMiddleware())
	{
		referrals.POST("/generate", h.GenerateCode)
		referrals.POST("/apply", h.ApplyCode)
		referrals.POST("/verify-step", h.VerifyStep)
		referrals.GET("/status", h.Status)
	}
}

func (h *ReferralHandler) GenerateCode(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.referralService.GenerateCode(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, resp)
}

func (h *ReferralHandler) ApplyCode(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyCodeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.referralService.ApplyCode(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(200, SuccessResponse{
		Success: true,
		Message: "Referral code applied. Complete the verification steps to unlock the reward.",
		Data:    resp,
	})
}

func (h *ReferralHandler) VerifyStep(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyStepRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.referralService.VerifyStep(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, resp)
}

func (h *ReferralHandler) Status(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.referralService.Status(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.RespondOK(c, resp)
}
