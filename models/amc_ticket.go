package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AMCTicketStatus tracks a maintenance ticket through its life.
type AMCTicketStatus string

const (
	TicketOpen       AMCTicketStatus = "Open"
	TicketInProgress AMCTicketStatus = "In Progress"
	TicketClosed     AMCTicketStatus = "Closed"
)

// IsValidTicketStatus reports whether s names a known ticket status.
func IsValidTicketStatus(s string) bool {
	switch AMCTicketStatus(s) {
	case TicketOpen, TicketInProgress, TicketClosed:
		return true
	default:
		return false
	}
}

// TicketEvent is one entry in a ticket's append-only status history.
type TicketEvent struct {
	Status  AMCTicketStatus `bson:"status" json:"status"`
	Date    time.Time       `bson:"date" json:"date"`
	Remarks string          `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// AMCTicket is a maintenance ticket raised against one asset. Every status or
// remarks change appends to History.
type AMCTicket struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Asset      primitive.ObjectID  `bson:"asset" json:"asset"`
	RaisedBy   primitive.ObjectID  `bson:"raisedBy" json:"raisedBy"`
	AssignedTo *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Status     AMCTicketStatus     `bson:"status" json:"status"`
	Remarks    string              `bson:"remarks,omitempty" json:"remarks,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
	History    []TicketEvent       `bson:"history" json:"history"`
}
