package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uplifts-neel/lab-inventory-managment/middleware"
	"github.com/uplifts-neel/lab-inventory-managment/models"
	"github.com/uplifts-neel/lab-inventory-managment/utils"
	"github.com/uplifts-neel/lab-inventory-managment/websocket"
)

// writeAudit records one mutating operation and pushes it to the live stream.
// Audit failures are logged, never surfaced: the mutation already happened.
func writeAudit(ctx context.Context, ident *middleware.Identity, action, targetType, targetID, details string) {
	entry := models.AuditLog{
		ID:         primitive.NewObjectID(),
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
		Date:       time.Now().UTC(),
	}
	if ident != nil {
		uid := ident.UserID
		entry.User = &uid
	}

	if _, err := auditCollection.InsertOne(ctx, entry); err != nil {
		log.Printf("audit write failed (%s %s %s): %v", action, targetType, targetID, err)
		return
	}

	websocket.BroadcastAudit(&entry)
}

// ListAuditLogs returns audit entries, newest first, filterable by action,
// user and date range.
func ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}

	if action := r.URL.Query().Get("action"); action != "" {
		filter["action"] = action
	}
	if user := r.URL.Query().Get("user"); user != "" {
		userID, err := primitive.ObjectIDFromHex(user)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID format")
			return
		}
		filter["user"] = userID
	}

	dateFilter := bson.M{}
	if s := r.URL.Query().Get("startDate"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t, err = time.Parse("2006-01-02", s)
		}
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid startDate")
			return
		}
		dateFilter["$gte"] = t
	}
	if s := r.URL.Query().Get("endDate"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t, err = time.Parse("2006-01-02", s)
		}
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid endDate")
			return
		}
		dateFilter["$lte"] = t
	}
	if len(dateFilter) > 0 {
		filter["date"] = dateFilter
	}

	ctx := r.Context()
	cursor, err := auditCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		log.Printf("audit Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching logs")
		return
	}
	defer cursor.Close(ctx)

	var logs []models.AuditLog
	if err := cursor.All(ctx, &logs); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode logs")
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	utils.RespondWithJSON(w, http.StatusOK, logs)
}

// StreamAuditLogs upgrades the connection and attaches it to the audit hub.
func StreamAuditLogs(w http.ResponseWriter, r *http.Request) {
	ident := identityOf(r)
	if ident == nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	websocket.ServeAudit(w, r, ident.UserID.Hex(), ident.Name)
}
