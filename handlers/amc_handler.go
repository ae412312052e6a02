package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uplifts-neel/lab-inventory-managment/models"
	"github.com/uplifts-neel/lab-inventory-managment/utils"
)

type createAMCRequest struct {
	Asset      string `json:"asset" validate:"required"`
	RaisedBy   string `json:"raisedBy,omitempty"`
	AssignedTo string `json:"assignedTo,omitempty"`
	Status     string `json:"status,omitempty"`
	Remarks    string `json:"remarks,omitempty"`
}

type updateAMCRequest struct {
	Status     string  `json:"status,omitempty"`
	Remarks    *string `json:"remarks,omitempty"`
	AssignedTo *string `json:"assignedTo,omitempty"`
}

// ListAMCs returns maintenance tickets, newest first.
func ListAMCs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cursor, err := amcCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Printf("amc Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching AMC tickets")
		return
	}
	defer cursor.Close(ctx)

	var tickets []models.AMCTicket
	if err := cursor.All(ctx, &tickets); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode AMC tickets")
		return
	}
	if tickets == nil {
		tickets = []models.AMCTicket{}
	}

	utils.RespondWithJSON(w, http.StatusOK, tickets)
}

// CreateAMC raises a maintenance ticket against an asset. The raiser defaults
// to the authenticated caller.
func CreateAMC(w http.ResponseWriter, r *http.Request) {
	var req createAMCRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Asset is required")
		return
	}

	assetID, err := primitive.ObjectIDFromHex(req.Asset)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid asset ID format")
		return
	}

	ctx := r.Context()

	count, err := assetCollection.CountDocuments(ctx, bson.M{"_id": assetID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Asset not found")
		return
	}

	var raisedBy primitive.ObjectID
	if req.RaisedBy != "" {
		raisedBy, err = primitive.ObjectIDFromHex(req.RaisedBy)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid raisedBy ID format")
			return
		}
		n, err := userCollection.CountDocuments(ctx, bson.M{"_id": raisedBy})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if n == 0 {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
	} else if ident := identityOf(r); ident != nil {
		raisedBy = ident.UserID
	} else {
		utils.RespondWithError(w, http.StatusBadRequest, "raisedBy is required")
		return
	}

	status := models.TicketOpen
	if req.Status != "" {
		if !models.IsValidTicketStatus(req.Status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		status = models.AMCTicketStatus(req.Status)
	}

	now := time.Now().UTC()
	ticket := models.AMCTicket{
		ID:        primitive.NewObjectID(),
		Asset:     assetID,
		RaisedBy:  raisedBy,
		Status:    status,
		Remarks:   req.Remarks,
		CreatedAt: now,
		UpdatedAt: now,
		History: []models.TicketEvent{
			{Status: status, Date: now, Remarks: req.Remarks},
		},
	}

	if req.AssignedTo != "" {
		assigneeID, err := primitive.ObjectIDFromHex(req.AssignedTo)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid assignedTo ID format")
			return
		}
		n, err := userCollection.CountDocuments(ctx, bson.M{"_id": assigneeID})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if n == 0 {
			utils.RespondWithError(w, http.StatusNotFound, "Assigned user not found")
			return
		}
		ticket.AssignedTo = &assigneeID
	}

	if _, err := amcCollection.InsertOne(ctx, ticket); err != nil {
		log.Printf("insert AMC ticket: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating AMC ticket")
		return
	}

	writeAudit(ctx, identityOf(r), "Create", "AMCTicket", ticket.ID.Hex(), req.Remarks)
	utils.RespondWithJSON(w, http.StatusCreated, ticket)
}

// UpdateAMC changes a ticket's status, remarks or assignee and appends the
// change to its history.
func UpdateAMC(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid AMC ticket ID format")
		return
	}

	var req updateAMCRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	ctx := r.Context()

	var ticket models.AMCTicket
	if err := amcCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "AMC ticket not found")
			return
		}
		log.Printf("load AMC ticket: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching AMC ticket")
		return
	}

	now := time.Now().UTC()
	update := bson.M{"updatedAt": now}

	newStatus := ticket.Status
	if req.Status != "" {
		if !models.IsValidTicketStatus(req.Status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		newStatus = models.AMCTicketStatus(req.Status)
		update["status"] = newStatus
	}

	remarks := ""
	if req.Remarks != nil {
		remarks = *req.Remarks
		update["remarks"] = remarks
	}

	if req.AssignedTo != nil {
		if *req.AssignedTo == "" {
			update["assignedTo"] = nil
		} else {
			assigneeID, err := primitive.ObjectIDFromHex(*req.AssignedTo)
			if err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, "Invalid assignedTo ID format")
				return
			}
			n, err := userCollection.CountDocuments(ctx, bson.M{"_id": assigneeID})
			if err != nil {
				utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
				return
			}
			if n == 0 {
				utils.RespondWithError(w, http.StatusNotFound, "Assigned user not found")
				return
			}
			update["assignedTo"] = assigneeID
		}
	}

	event := models.TicketEvent{Status: newStatus, Date: now, Remarks: remarks}

	res := amcCollection.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": update, "$push": bson.M{"history": event}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var updated models.AMCTicket
	if err := res.Decode(&updated); err != nil {
		log.Printf("update AMC ticket: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating AMC ticket")
		return
	}

	writeAudit(ctx, identityOf(r), "Update", "AMCTicket", id.Hex(), string(newStatus))
	utils.RespondWithJSON(w, http.StatusOK, updated)
}
