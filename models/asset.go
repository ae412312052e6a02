package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssetStatus is the current lifecycle state of an asset. Assigned/Unassigned
// are driven by the assignment service; In Repair and In AMC are set by direct
// edits and do not go through the assignment flow.
type AssetStatus string

const (
	StatusAssigned   AssetStatus = "Assigned"
	StatusUnassigned AssetStatus = "Unassigned"
	StatusInRepair   AssetStatus = "In Repair"
	StatusInAMC      AssetStatus = "In AMC"
)

// IsValidAssetStatus reports whether s names a known asset status.
func IsValidAssetStatus(s string) bool {
	switch AssetStatus(s) {
	case StatusAssigned, StatusUnassigned, StatusInRepair, StatusInAMC:
		return true
	default:
		return false
	}
}

// AssetTypes are the equipment categories the lab tracks.
var AssetTypes = []string{
	"PC", "Printer", "Switch", "NAS", "Scanner", "Workstation", "Server", "Router", "Props",
}

// IsValidAssetType reports whether t is one of the tracked equipment types.
func IsValidAssetType(t string) bool {
	for _, v := range AssetTypes {
		if v == t {
			return true
		}
	}
	return false
}

// AssignmentEvent is one entry in an asset's embedded history log. The holder
// fields are nil for Return/Unassign events.
type AssignmentEvent struct {
	AssignedTo      *primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`
	AssignedToModel HolderKind          `bson:"assignedToModel,omitempty" json:"assignedToModel,omitempty"`
	Date            time.Time           `bson:"date" json:"date"`
	Action          AssignmentAction    `bson:"action" json:"action"`
}

// Asset is a tracked physical item. Current holder and status are denormalized
// from the history tail; the assignment service keeps them in sync inside a
// single transaction.
type Asset struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Type              string              `bson:"type" json:"type"`
	Brand             string              `bson:"brand,omitempty" json:"brand,omitempty"`
	Model             string              `bson:"model,omitempty" json:"model,omitempty"`
	SerialNo          string              `bson:"serialNo" json:"serialNo"`
	PurchaseDate      *time.Time          `bson:"purchaseDate,omitempty" json:"purchaseDate,omitempty"`
	WarrantyExpiry    *time.Time          `bson:"warrantyExpiry,omitempty" json:"warrantyExpiry,omitempty"`
	AMCExpiry         *time.Time          `bson:"amcExpiry,omitempty" json:"amcExpiry,omitempty"`
	Status            AssetStatus         `bson:"status" json:"status"`
	AssignedTo        *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	AssignedToModel   HolderKind          `bson:"assignedToModel,omitempty" json:"assignedToModel,omitempty"`
	AssignmentHistory []AssignmentEvent   `bson:"assignmentHistory" json:"assignmentHistory"`
	Details           map[string]any      `bson:"details,omitempty" json:"details,omitempty"`
}

// ApplyAssignment mutates the asset's denormalized state for one assignment
// action: status follows the action, the holder reference is set for
// Assign/Transfer and cleared for Return/Unassign, and a matching history
// entry is appended with the same timestamp.
func (a *Asset) ApplyAssignment(holder *Holder, action AssignmentAction, at time.Time) {
	a.Status = StatusForAction(action)

	event := AssignmentEvent{Date: at, Action: action}
	if a.Status == StatusAssigned && holder != nil {
		id := holder.ID
		a.AssignedTo = &id
		a.AssignedToModel = holder.Kind
		event.AssignedTo = &id
		event.AssignedToModel = holder.Kind
	} else {
		a.AssignedTo = nil
		a.AssignedToModel = ""
	}
	a.AssignmentHistory = append(a.AssignmentHistory, event)
}

// LastEvent returns the most recent history entry, or nil for a fresh asset.
func (a *Asset) LastEvent() *AssignmentEvent {
	if len(a.AssignmentHistory) == 0 {
		return nil
	}
	return &a.AssignmentHistory[len(a.AssignmentHistory)-1]
}
