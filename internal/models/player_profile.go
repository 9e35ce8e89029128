package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Class years
const (
	ClassYearFreshman  = "freshman"
	ClassYearSophomore = "sophomore"
)

// Contact access states
const (
	ContactAccessPending    = "pending"
	ContactAccessAuthorized = "authorized"
	ContactAccessRevoked    = "revoked"
)

// CareerStats is the cumulative stat line displayed on a player profile
type CareerStats struct {
	Games        int `bson:"games" json:"games"`
	GamesStarted int `bson:"games_started" json:"games_started"`
	Goals        int `bson:"goals" json:"goals"`
	Assists      int `bson:"assists" json:"assists"`
	Points       int `bson:"points" json:"points"`
}

// PlayerProfile is the recruiting profile owned by a player account
type PlayerProfile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	AvatarURL string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CoverURL  string             `bson:"cover_url,omitempty" json:"cover_url,omitempty"`

	// Endorsement by the player's current JUCO coach
	JucoCoachID            *primitive.ObjectID `bson:"juco_coach_id,omitempty" json:"juco_coach_id,omitempty"`
	JucoCoachNote          string              `bson:"juco_coach_note,omitempty" json:"juco_coach_note,omitempty"`
	JucoCoachNoteUpdatedAt *time.Time          `bson:"juco_coach_note_updated_at,omitempty" json:"juco_coach_note_updated_at,omitempty"`

	// Personal
	FullName     string     `bson:"full_name,omitempty" json:"full_name,omitempty"`
	DOB          *time.Time `bson:"dob,omitempty" json:"dob,omitempty"`
	City         string     `bson:"city,omitempty" json:"city,omitempty"`
	State        string     `bson:"state,omitempty" json:"state,omitempty"`
	Country      string     `bson:"country,omitempty" json:"country,omitempty"`
	HeightFeet   int        `bson:"height_feet,omitempty" json:"height_feet,omitempty"`
	HeightInches int        `bson:"height_inches,omitempty" json:"height_inches,omitempty"`
	WeightLbs    int        `bson:"weight_lbs,omitempty" json:"weight_lbs,omitempty"`

	// Background
	School           string   `bson:"school,omitempty" json:"school,omitempty"`
	SchoolNormalized string   `bson:"school_normalized,omitempty" json:"-"`
	GPA              string   `bson:"gpa,omitempty" json:"gpa,omitempty"`
	GPANumeric       float64  `bson:"gpa_numeric,omitempty" json:"gpa_numeric,omitempty"`
	Positions        []string `bson:"positions,omitempty" json:"positions,omitempty"`
	HighlightURLs    []string `bson:"highlight_urls,omitempty" json:"highlight_urls,omitempty"`
	Bio              string   `bson:"bio,omitempty" json:"bio,omitempty"`
	ClassYear        string   `bson:"class_year,omitempty" json:"class_year,omitempty"`

	ContactAccess          string     `bson:"contact_access" json:"contact_access"`
	ContactAccessUpdatedAt *time.Time `bson:"contact_access_updated_at,omitempty" json:"contact_access_updated_at,omitempty"`

	Stats CareerStats `bson:"stats" json:"stats"`

	// Preferences
	Division          string  `bson:"division,omitempty" json:"division,omitempty"`
	Budget            float64 `bson:"budget,omitempty" json:"budget,omitempty"`
	PreferredLocation string  `bson:"preferred_location,omitempty" json:"preferred_location,omitempty"`

	Verification Verification `bson:"verification" json:"verification"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// NormalizeSchool returns the lowercase trimmed form used for indexed lookups
func NormalizeSchool(school string) string {
	return strings.ToLower(strings.TrimSpace(school))
}

// PlayerProfileInput represents the writable fields of a player profile
type PlayerProfileInput struct {
	AvatarURL         *string      `json:"avatar_url,omitempty"`
	CoverURL          *string      `json:"cover_url,omitempty"`
	FullName          *string      `json:"full_name,omitempty"`
	DOB               *time.Time   `json:"dob,omitempty"`
	City              *string      `json:"city,omitempty"`
	State             *string      `json:"state,omitempty"`
	Country           *string      `json:"country,omitempty"`
	HeightFeet        *int         `json:"height_feet,omitempty" binding:"omitempty,min=0,max=9"`
	HeightInches      *int         `json:"height_inches,omitempty" binding:"omitempty,min=0,max=11"`
	WeightLbs         *int         `json:"weight_lbs,omitempty" binding:"omitempty,min=0"`
	School            *string      `json:"school,omitempty"`
	GPA               *string      `json:"gpa,omitempty"`
	GPANumeric        *float64     `json:"gpa_numeric,omitempty" binding:"omitempty,min=0,max=4"`
	Positions         []string     `json:"positions,omitempty"`
	HighlightURLs     []string     `json:"highlight_urls,omitempty"`
	Bio               *string      `json:"bio,omitempty" binding:"omitempty,max=2000"`
	ClassYear         *string      `json:"class_year,omitempty" binding:"omitempty,oneof=freshman sophomore"`
	Stats             *CareerStats `json:"stats,omitempty"`
	Division          *string      `json:"division,omitempty"`
	Budget            *float64     `json:"budget,omitempty" binding:"omitempty,min=0"`
	PreferredLocation *string      `json:"preferred_location,omitempty"`
}
