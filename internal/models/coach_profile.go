package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coach types
const (
	CoachTypeJuco = "JUCO"
	CoachTypeNCAA = "NCAA"
)

// CoachProfile is the profile owned by a coach account. JUCO and NCAA
// coaches share one document with type-specific field groups.
type CoachProfile struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	CoachType string `bson:"coach_type" json:"coach_type"`

	FirstName             string   `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName              string   `bson:"last_name,omitempty" json:"last_name,omitempty"`
	Phone                 string   `bson:"phone,omitempty" json:"phone,omitempty"`
	Website               string   `bson:"website,omitempty" json:"website,omitempty"`
	RoleTitle             string   `bson:"role_title,omitempty" json:"role_title,omitempty"`
	ProgramName           string   `bson:"program_name,omitempty" json:"program_name,omitempty"`
	ProgramNameNormalized string   `bson:"program_name_normalized,omitempty" json:"-"`
	ProgramCity           string   `bson:"program_city,omitempty" json:"program_city,omitempty"`
	ProgramState          string   `bson:"program_state,omitempty" json:"program_state,omitempty"`
	Bio                   string   `bson:"bio,omitempty" json:"bio,omitempty"`
	RecruitingBudgetRange string   `bson:"recruiting_budget_range,omitempty" json:"recruiting_budget_range,omitempty"`
	PriorityPositions     []string `bson:"priority_positions,omitempty" json:"priority_positions,omitempty"`
	MinGPA                string   `bson:"min_gpa,omitempty" json:"min_gpa,omitempty"`
	OtherCriteria         string   `bson:"other_criteria,omitempty" json:"other_criteria,omitempty"`

	// JUCO fields
	JucoRole       string `bson:"juco_role,omitempty" json:"juco_role,omitempty"`
	JucoProgram    string `bson:"juco_program,omitempty" json:"juco_program,omitempty"`
	JucoLeague     string `bson:"juco_league,omitempty" json:"juco_league,omitempty"`
	JucoCity       string `bson:"juco_city,omitempty" json:"juco_city,omitempty"`
	JucoState      string `bson:"juco_state,omitempty" json:"juco_state,omitempty"`
	JucoPhone      string `bson:"juco_phone,omitempty" json:"juco_phone,omitempty"`
	JucoEmail      string `bson:"juco_email,omitempty" json:"juco_email,omitempty"`
	JucoExperience string `bson:"juco_experience,omitempty" json:"juco_experience,omitempty"`

	HasCertification string `bson:"has_certification,omitempty" json:"has_certification,omitempty"`
	VerifyNote       string `bson:"verify_note,omitempty" json:"verify_note,omitempty"`
	AcceptAccuracy   bool   `bson:"accept_accuracy" json:"accept_accuracy"`
	AcceptLegal      bool   `bson:"accept_legal" json:"accept_legal"`

	// NCAA / NAIA fields
	UniProgram string `bson:"uni_program,omitempty" json:"uni_program,omitempty"`
	Division   string `bson:"division,omitempty" json:"division,omitempty"`
	Conference string `bson:"conference,omitempty" json:"conference,omitempty"`
	UniAddress string `bson:"uni_address,omitempty" json:"uni_address,omitempty"`
	UniPhone   string `bson:"uni_phone,omitempty" json:"uni_phone,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
