package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sportall/app-recruit/internal/middleware"
	"github.com/sportall/app-recruit/internal/models"
	"github.com/sportall/app-recruit/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminVerificationHandler serves the admin review side of verification
type AdminVerificationHandler struct {
	review *services.ReviewService
}

// NewAdminVerificationHandler creates an AdminVerificationHandler
func NewAdminVerificationHandler(review *services.ReviewService) *AdminVerificationHandler {
	return &AdminVerificationHandler{review: review}
}

type reviewDecisionRequest struct {
	Note string `json:"note"`
}

// List godoc
// @Summary List profiles for review
// @Description Filters by status (default in_review), division, endorsing
// @Description coach, name/school search and update window
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Verification status"
// @Param division query string false "Division"
// @Param juco_coach query string false "Endorsing coach id"
// @Param search query string false "Name or school search"
// @Param updated_before query string false "RFC3339 upper bound"
// @Param updated_after query string false "RFC3339 lower bound"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} ListResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/verifications [get]
func (h *AdminVerificationHandler) List(c *gin.Context) {
	filter := services.ProfileListFilter{
		Status:   models.StatusInReview,
		Division: c.Query("division"),
		Search:   c.Query("search"),
	}
	if status := c.Query("status"); status != "" {
		filter.Status = models.VerificationStatus(status)
	}
	if coachID := c.Query("juco_coach"); coachID != "" {
		oid, err := primitive.ObjectIDFromHex(coachID)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid coach id"})
			return
		}
		filter.JucoCoachID = &oid
	}
	if before := c.Query("updated_before"); before != "" {
		t, err := time.Parse(time.RFC3339, before)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid updated_before"})
			return
		}
		filter.UpdatedBefore = &t
	}
	if after := c.Query("updated_after"); after != "" {
		t, err := time.Parse(time.RFC3339, after)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid updated_after"})
			return
		}
		filter.UpdatedAfter = &t
	}
	filter.Page = intQuery(c, "page", 1)
	filter.Limit = intQuery(c, "limit", 20)

	profiles, meta, err := h.review.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: profiles, Meta: meta})
}

// Get godoc
// @Summary Get one profile for review
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile id"
// @Success 200 {object} services.ReviewDetail
// @Failure 404 {object} ErrorResponse
// @Router /admin/verifications/{id} [get]
func (h *AdminVerificationHandler) Get(c *gin.Context) {
	profileID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid profile id"})
		return
	}

	detail, err := h.review.Get(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": detail})
}

// Approve godoc
// @Summary Approve a verification
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile id"
// @Param data body reviewDecisionRequest false "Optional note"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/verifications/{id}/approve [post]
func (h *AdminVerificationHandler) Approve(c *gin.Context) {
	profileID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid profile id"})
		return
	}

	var req reviewDecisionRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.review.Approve(c.Request.Context(), profileID, middleware.UserID(c), req.Note); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Reject godoc
// @Summary Reject a verification
// @Description Requires a non-empty note explaining what to fix
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile id"
// @Param data body reviewDecisionRequest true "Required note"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/verifications/{id}/reject [post]
func (h *AdminVerificationHandler) Reject(c *gin.Context) {
	profileID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid profile id"})
		return
	}

	var req reviewDecisionRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.review.Reject(c.Request.Context(), profileID, middleware.UserID(c), req.Note); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
