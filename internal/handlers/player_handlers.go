package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/middleware"
	"github.com/sportall/app-recruit/internal/models"
	"github.com/sportall/app-recruit/internal/services"
	"go.uber.org/zap"
)

// PlayerHandler serves player profile CRUD and the JUCO roster views
type PlayerHandler struct {
	profiles services.ProfileStore
	logger   *logging.SafeLogger
}

// NewPlayerHandler creates a PlayerHandler
func NewPlayerHandler(profiles services.ProfileStore, logger *logging.SafeLogger) *PlayerHandler {
	return &PlayerHandler{
		profiles: profiles,
		logger:   logger.With(zap.String("handler", "players")),
	}
}

// UpsertMe godoc
// @Summary Create or update my player profile
// @Tags players
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body models.PlayerProfileInput true "Profile fields"
// @Success 200 {object} models.PlayerProfile
// @Failure 400 {object} ErrorResponse
// @Router /players [post]
func (h *PlayerHandler) UpsertMe(c *gin.Context) {
	var input models.PlayerProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	userID := middleware.UserID(c)
	now := time.Now()

	profile, err := h.profiles.GetByUserID(c.Request.Context(), userID)
	if err == models.ErrProfileNotFound {
		profile = &models.PlayerProfile{
			UserID:        userID,
			ContactAccess: models.ContactAccessPending,
			Verification:  models.NewVerification(now),
			CreatedAt:     now,
		}
		applyProfileInput(profile, &input, now)
		if err := h.profiles.Create(c.Request.Context(), profile); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, sanitizeForRole(profile, middleware.Role(c)))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	applyProfileInput(profile, &input, now)
	if err := h.profiles.Update(c.Request.Context(), profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sanitizeForRole(profile, middleware.Role(c)))
}

// Me godoc
// @Summary Get my player profile
// @Tags players
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.PlayerProfile
// @Failure 404 {object} ErrorResponse
// @Router /players/me [get]
func (h *PlayerHandler) Me(c *gin.Context) {
	profile, err := h.profiles.GetByUserID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sanitizeForRole(profile, middleware.Role(c)))
}

// List godoc
// @Summary Browse player profiles
// @Description Recruiter-only listing with position, division and text
// @Description filters
// @Tags players
// @Produce json
// @Security BearerAuth
// @Param positions query string false "Comma-separated positions"
// @Param division query string false "Division"
// @Param search query string false "Name or school search"
// @Param status query string false "Verification status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} ListResponse
// @Failure 403 {object} ErrorResponse
// @Router /players [get]
func (h *PlayerHandler) List(c *gin.Context) {
	filter := services.ProfileListFilter{
		Division: c.Query("division"),
		Search:   c.Query("search"),
		Status:   models.VerificationStatus(c.Query("status")),
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 20),
	}
	if positions := c.Query("positions"); positions != "" {
		for _, p := range strings.Split(positions, ",") {
			if p = strings.TrimSpace(p); p != "" {
				filter.Positions = append(filter.Positions, p)
			}
		}
	}

	profiles, total, err := h.profiles.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	filter.Normalize()
	c.JSON(http.StatusOK, ListResponse{
		Data: profiles,
		Meta: services.NewListMeta(filter.Page, filter.Limit, total),
	})
}

// Get godoc
// @Summary Get a player profile
// @Tags players
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile id"
// @Success 200 {object} models.PlayerProfile
// @Failure 404 {object} ErrorResponse
// @Router /players/{id} [get]
func (h *PlayerHandler) Get(c *gin.Context) {
	profileID, err := parseObjectID(c, "id")
	if err != nil {
		return
	}

	profile, err := h.profiles.GetByID(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sanitizeForRole(profile, middleware.Role(c)))
}

type jucoNoteRequest struct {
	Note string `json:"note" binding:"max=2000"`
}

// SetJucoNote godoc
// @Summary Endorse a player with a JUCO coach note
// @Description Claims the player for the calling coach. An empty note
// @Description clears the endorsement text.
// @Tags players
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile id"
// @Param data body jucoNoteRequest true "Note"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /players/{id}/juco-note [patch]
func (h *PlayerHandler) SetJucoNote(c *gin.Context) {
	profileID, err := parseObjectID(c, "id")
	if err != nil {
		return
	}

	var req jucoNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	profile, err := h.profiles.GetByID(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}

	coachID := middleware.UserID(c)
	if profile.JucoCoachID != nil && *profile.JucoCoachID != coachID && middleware.Role(c) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Player is endorsed by another coach"})
		return
	}

	now := time.Now()
	profile.JucoCoachID = &coachID
	note := strings.TrimSpace(req.Note)
	if note == "" {
		profile.JucoCoachNote = ""
		profile.JucoCoachNoteUpdatedAt = nil
	} else {
		profile.JucoCoachNote = note
		profile.JucoCoachNoteUpdatedAt = &now
	}
	profile.UpdatedAt = now

	if err := h.profiles.Update(c.Request.Context(), profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"note":       profile.JucoCoachNote,
		"updated_at": profile.JucoCoachNoteUpdatedAt,
	})
}

// MyRoster godoc
// @Summary List players endorsed by the calling JUCO coach
// @Tags players
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} ListResponse
// @Failure 403 {object} ErrorResponse
// @Router /players/juco/my-players [get]
func (h *PlayerHandler) MyRoster(c *gin.Context) {
	coachID := middleware.UserID(c)
	filter := services.ProfileListFilter{
		JucoCoachID: &coachID,
		Page:        intQuery(c, "page", 1),
		Limit:       intQuery(c, "limit", 20),
	}

	profiles, total, err := h.profiles.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	filter.Normalize()
	c.JSON(http.StatusOK, ListResponse{
		Data: profiles,
		Meta: services.NewListMeta(filter.Page, filter.Limit, total),
	})
}

// applyProfileInput copies set input fields onto a profile
func applyProfileInput(profile *models.PlayerProfile, input *models.PlayerProfileInput, now time.Time) {
	if input.AvatarURL != nil {
		profile.AvatarURL = *input.AvatarURL
	}
	if input.CoverURL != nil {
		profile.CoverURL = *input.CoverURL
	}
	if input.FullName != nil {
		profile.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.DOB != nil {
		profile.DOB = input.DOB
	}
	if input.City != nil {
		profile.City = *input.City
	}
	if input.State != nil {
		profile.State = *input.State
	}
	if input.Country != nil {
		profile.Country = *input.Country
	}
	if input.HeightFeet != nil {
		profile.HeightFeet = *input.HeightFeet
	}
	if input.HeightInches != nil {
		profile.HeightInches = *input.HeightInches
	}
	if input.WeightLbs != nil {
		profile.WeightLbs = *input.WeightLbs
	}
	if input.School != nil {
		profile.School = strings.TrimSpace(*input.School)
		profile.SchoolNormalized = models.NormalizeSchool(profile.School)
	}
	if input.GPA != nil {
		profile.GPA = *input.GPA
	}
	if input.GPANumeric != nil {
		profile.GPANumeric = *input.GPANumeric
	}
	if input.Positions != nil {
		profile.Positions = input.Positions
	}
	if input.HighlightURLs != nil {
		profile.HighlightURLs = input.HighlightURLs
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.ClassYear != nil {
		profile.ClassYear = *input.ClassYear
	}
	if input.Stats != nil {
		profile.Stats = *input.Stats
	}
	if input.Division != nil {
		profile.Division = *input.Division
	}
	if input.Budget != nil {
		profile.Budget = *input.Budget
	}
	if input.PreferredLocation != nil {
		profile.PreferredLocation = *input.PreferredLocation
	}
	profile.UpdatedAt = now
}

// sanitizeForRole hides coach endorsement internals from players
func sanitizeForRole(profile *models.PlayerProfile, role string) *models.PlayerProfile {
	if role != models.RolePlayer {
		return profile
	}
	out := *profile
	out.JucoCoachNote = ""
	out.JucoCoachNoteUpdatedAt = nil
	return &out
}
