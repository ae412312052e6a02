package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditLog records one mutating operation: who did what to which record.
type AuditLog struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	User       *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	Action     string              `bson:"action" json:"action"`
	TargetType string              `bson:"targetType" json:"targetType"`
	TargetID   string              `bson:"targetId" json:"targetId"`
	Details    string              `bson:"details,omitempty" json:"details,omitempty"`
	Date       time.Time           `bson:"date" json:"date"`
}
