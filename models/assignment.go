package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentAction is one transition in an asset's holder history.
type AssignmentAction string

const (
	ActionAssign   AssignmentAction = "Assign"
	ActionTransfer AssignmentAction = "Transfer"
	ActionReturn   AssignmentAction = "Return"
	ActionUnassign AssignmentAction = "Unassign"
)

// DuplicateWindow is how far back the assignment service looks for an
// identical (asset, holder, action) record before treating a new request as a
// double submission.
const DuplicateWindow = 5 * time.Second

// IsValidAction reports whether s names a known assignment action.
func IsValidAction(s string) bool {
	switch AssignmentAction(s) {
	case ActionAssign, ActionTransfer, ActionReturn, ActionUnassign:
		return true
	default:
		return false
	}
}

// StatusForAction derives the asset status implied by an assignment action.
// Assign and Transfer leave the asset in someone's hands; Return and Unassign
// release it.
func StatusForAction(a AssignmentAction) AssetStatus {
	switch a {
	case ActionAssign, ActionTransfer:
		return StatusAssigned
	default:
		return StatusUnassigned
	}
}

// Assignment is one entry in the assignment log. Records are written only by
// the assignment service and never updated; the offline cleanup utility is the
// only thing allowed to delete them.
type Assignment struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Asset           primitive.ObjectID  `bson:"asset" json:"asset"`
	AssignedTo      primitive.ObjectID  `bson:"assignedTo" json:"assignedTo"`
	AssignedToModel HolderKind          `bson:"assignedToModel" json:"assignedToModel"`
	AssignedBy      *primitive.ObjectID `bson:"assignedBy,omitempty" json:"assignedBy,omitempty"`
	Date            time.Time           `bson:"date" json:"date"`
	Action          AssignmentAction    `bson:"action" json:"action"`
	Remarks         string              `bson:"remarks,omitempty" json:"remarks,omitempty"`
}
