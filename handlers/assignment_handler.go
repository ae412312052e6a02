package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uplifts-neel/lab-inventory-managment/models"
	"github.com/uplifts-neel/lab-inventory-managment/utils"
)

var validate = validator.New()

type createAssignmentRequest struct {
	Asset           string `json:"asset" validate:"required"`
	AssignedTo      string `json:"assignedTo" validate:"required"`
	AssignedToModel string `json:"assignedToModel,omitempty"`
	AssignedBy      string `json:"assignedBy,omitempty"`
	Action          string `json:"action" validate:"required"`
	Remarks         string `json:"remarks,omitempty"`
}

// CreateAssignment applies one assignment action through the assignment
// service. A duplicate-window hit returns 409, which callers treat as
// already-applied rather than a failure.
func CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Asset, assignedTo, and action are required")
		return
	}

	if !models.IsValidAction(req.Action) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid action")
		return
	}
	action := models.AssignmentAction(req.Action)

	assetID, err := primitive.ObjectIDFromHex(req.Asset)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid asset ID format")
		return
	}

	holderID, err := primitive.ObjectIDFromHex(req.AssignedTo)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid assignedTo ID format")
		return
	}

	kindStr := req.AssignedToModel
	if kindStr == "" {
		kindStr = string(models.HolderKindUser)
	}
	kind, err := models.ParseHolderKind(kindStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid assignedToModel")
		return
	}

	assignedBy := assignerID(r, req.AssignedBy)

	assignment, err := recordAssignmentAction(r.Context(), assetID, models.Holder{ID: holderID, Kind: kind},
		assignedBy, action, req.Remarks)
	if err != nil {
		switch {
		case errors.Is(err, errAssetNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Asset not found")
		case errors.Is(err, errHolderNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Holder not found")
		case errors.Is(err, errDuplicateAssignment):
			utils.RespondWithError(w, http.StatusConflict, "Assignment already exists for this asset and holder")
		default:
			log.Printf("create assignment: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Error creating assignment")
		}
		return
	}

	writeAudit(r.Context(), identityOf(r), string(action), "Assignment", assignment.ID.Hex(), req.Remarks)
	utils.RespondWithJSON(w, http.StatusCreated, assignment)
}

// ReturnAssignment marks the referenced assignment's asset as returned: the
// asset goes back to Unassigned with a Return entry appended to its history.
func ReturnAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid assignment ID format")
		return
	}

	var assignment models.Assignment
	if err := assignmentCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&assignment); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Assignment not found")
			return
		}
		log.Printf("load assignment: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error returning asset")
		return
	}

	event := models.AssignmentEvent{Date: time.Now().UTC(), Action: models.ActionReturn}
	update := bson.M{
		"$set": bson.M{
			"status":          models.StatusUnassigned,
			"assignedTo":      nil,
			"assignedToModel": nil,
		},
		"$push": bson.M{"assignmentHistory": event},
	}
	if _, err := assetCollection.UpdateByID(r.Context(), assignment.Asset, update); err != nil {
		log.Printf("return asset %s: %v", assignment.Asset.Hex(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error returning asset")
		return
	}

	writeAudit(r.Context(), identityOf(r), string(models.ActionReturn), "Asset", assignment.Asset.Hex(), "")
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Asset returned"})
}

// ExpandedAssignment is an assignment with its referenced documents resolved,
// matching what the history views consume.
type ExpandedAssignment struct {
	ID              primitive.ObjectID      `json:"id"`
	Asset           *models.Asset           `json:"asset"`
	AssignedTo      interface{}             `json:"assignedTo"`
	AssignedToModel models.HolderKind       `json:"assignedToModel"`
	AssignedBy      *models.User            `json:"assignedBy,omitempty"`
	Date            time.Time               `json:"date"`
	Action          models.AssignmentAction `json:"action"`
	Remarks         string                  `json:"remarks,omitempty"`
}

// ListAssignments returns every assignment record with asset, holder and
// assigner expanded via batched lookups.
func ListAssignments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cursor, err := assignmentCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		log.Printf("assignments Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching assignments")
		return
	}
	defer cursor.Close(ctx)

	var assignments []models.Assignment
	if err := cursor.All(ctx, &assignments); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode assignments")
		return
	}

	assetIDs := make([]primitive.ObjectID, 0, len(assignments))
	userIDs := make([]primitive.ObjectID, 0, len(assignments))
	divisionIDs := make([]primitive.ObjectID, 0, len(assignments))
	for _, a := range assignments {
		assetIDs = append(assetIDs, a.Asset)
		switch a.AssignedToModel {
		case models.HolderKindDivision:
			divisionIDs = append(divisionIDs, a.AssignedTo)
		default:
			userIDs = append(userIDs, a.AssignedTo)
		}
		if a.AssignedBy != nil {
			userIDs = append(userIDs, *a.AssignedBy)
		}
	}

	assets, err := loadAssetsByID(ctx, assetIDs)
	if err != nil {
		log.Printf("expand assets: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching assignments")
		return
	}
	users, err := loadUsersByID(ctx, userIDs)
	if err != nil {
		log.Printf("expand users: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching assignments")
		return
	}
	divisions, err := loadDivisionsByID(ctx, divisionIDs)
	if err != nil {
		log.Printf("expand divisions: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching assignments")
		return
	}

	expanded := make([]ExpandedAssignment, 0, len(assignments))
	for _, a := range assignments {
		e := ExpandedAssignment{
			ID:              a.ID,
			AssignedToModel: a.AssignedToModel,
			Date:            a.Date,
			Action:          a.Action,
			Remarks:         a.Remarks,
		}
		if asset, ok := assets[a.Asset]; ok {
			e.Asset = asset
		}
		switch a.AssignedToModel {
		case models.HolderKindDivision:
			if d, ok := divisions[a.AssignedTo]; ok {
				e.AssignedTo = d
			}
		default:
			if u, ok := users[a.AssignedTo]; ok {
				e.AssignedTo = u
			}
		}
		if a.AssignedBy != nil {
			if u, ok := users[*a.AssignedBy]; ok {
				e.AssignedBy = u
			}
		}
		expanded = append(expanded, e)
	}

	utils.RespondWithJSON(w, http.StatusOK, expanded)
}
