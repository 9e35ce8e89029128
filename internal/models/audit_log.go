package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit actions
const (
	AuditActionVerificationApproved = "verification_approved"
	AuditActionVerificationRejected = "verification_rejected"
	AuditActionUserRoleChanged      = "user_role_changed"
	AuditActionUserDeleted          = "user_deleted"
)

// AuditLog records an administrative action for traceability
type AuditLog struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	ActorID    primitive.ObjectID     `bson:"actor_id" json:"actor_id"`
	Action     string                 `bson:"action" json:"action"`
	EntityType string                 `bson:"entity_type,omitempty" json:"entity_type,omitempty"`
	EntityID   string                 `bson:"entity_id,omitempty" json:"entity_id,omitempty"`
	Details    map[string]interface{} `bson:"details,omitempty" json:"details,omitempty"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
}
