package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sportall/app-recruit/internal/middleware"
	"github.com/sportall/app-recruit/internal/services"
)

// VerificationHandler serves the player side of profile verification
type VerificationHandler struct {
	verification *services.VerificationService
}

// NewVerificationHandler creates a VerificationHandler
func NewVerificationHandler(verification *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{verification: verification}
}

type confirmCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

type sendPhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type submitStatsRequest struct {
	StatsSnapshot   map[string]interface{} `json:"stats_snapshot" binding:"required"`
	Attested        bool                   `json:"attested"`
	SupportingFiles []string               `json:"supporting_files"`
}

// StartEmail godoc
// @Summary Start email verification
// @Description Issues a one-time code to the caller's email address
// @Tags verification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /verification/start [post]
func (h *VerificationHandler) StartEmail(c *gin.Context) {
	if err := h.verification.StartEmail(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ConfirmEmail godoc
// @Summary Confirm email verification code
// @Tags verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /verification/email/confirm [post]
func (h *VerificationHandler) ConfirmEmail(c *gin.Context) {
	var req confirmCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Code is required"})
		return
	}

	if err := h.verification.ConfirmEmail(c.Request.Context(), middleware.UserID(c), req.Code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Next: "phone_pending"})
}

// SendPhoneCode godoc
// @Summary Send a phone verification code
// @Description Opens an OTP session with the SMS provider
// @Tags verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /verification/phone/send [post]
func (h *VerificationHandler) SendPhoneCode(c *gin.Context) {
	var req sendPhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Phone number is required"})
		return
	}

	if err := h.verification.SendPhoneCode(c.Request.Context(), middleware.UserID(c), req.Phone); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ConfirmPhone godoc
// @Summary Confirm phone verification code
// @Tags verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /verification/phone/confirm [post]
func (h *VerificationHandler) ConfirmPhone(c *gin.Context) {
	var req confirmCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Code is required"})
		return
	}

	if err := h.verification.ConfirmPhone(c.Request.Context(), middleware.UserID(c), req.Code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Next: "stats_pending"})
}

// SubmitStats godoc
// @Summary Submit attested stats for review
// @Tags verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /verification/stats [post]
func (h *VerificationHandler) SubmitStats(c *gin.Context) {
	var req submitStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Stats snapshot is required"})
		return
	}

	err := h.verification.SubmitStats(c.Request.Context(), middleware.UserID(c),
		req.StatsSnapshot, req.Attested, req.SupportingFiles)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Next: "in_review"})
}

// MyStatus godoc
// @Summary Get my verification status
// @Tags verification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Verification
// @Failure 404 {object} ErrorResponse
// @Router /verification/me [get]
func (h *VerificationHandler) MyStatus(c *gin.Context) {
	verification, err := h.verification.Status(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verification": verification})
}
