package handlers

import (
	"encoding/csv"
	"fmt"
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

type assetRequest struct {
	Type            string         `json:"type" validate:"required"`
	Brand           string         `json:"brand,omitempty"`
	Model           string         `json:"model,omitempty"`
	SerialNo        string         `json:"serialNo" validate:"required"`
	PurchaseDate    *time.Time     `json:"purchaseDate,omitempty"`
	WarrantyExpiry  *time.Time     `json:"warrantyExpiry,omitempty"`
	AMCExpiry       *time.Time     `json:"amcExpiry,omitempty"`
	Status          string         `json:"status,omitempty"`
	AssignedTo      string         `json:"assignedTo,omitempty"`
	AssignedToModel string         `json:"assignedToModel,omitempty"`
	Details         map[string]any `json:"details,omitempty"`
}

// ListAssets returns all assets with their current holder expanded.
func ListAssets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cursor, err := assetCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "serialNo", Value: 1}}))
	if err != nil {
		log.Printf("assets Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching assets")
		return
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err := cursor.All(ctx, &assets); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode assets")
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}

	utils.RespondWithJSON(w, http.StatusOK, assets)
}

// CreateAsset records a new asset. Serial numbers are unique across the lab.
func CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Type and serialNo are required")
		return
	}
	if !models.IsValidAssetType(req.Type) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown asset type")
		return
	}

	status := models.StatusUnassigned
	if req.Status != "" {
		if !models.IsValidAssetStatus(req.Status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		status = models.AssetStatus(req.Status)
	}

	ctx := r.Context()

	count, err := assetCollection.CountDocuments(ctx, bson.M{"serialNo": req.SerialNo})
	if err != nil {
		log.Printf("serialNo check: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Serial number already exists")
		return
	}

	asset := models.Asset{
		ID:                primitive.NewObjectID(),
		Type:              req.Type,
		Brand:             req.Brand,
		Model:             req.Model,
		SerialNo:          req.SerialNo,
		PurchaseDate:      req.PurchaseDate,
		WarrantyExpiry:    req.WarrantyExpiry,
		AMCExpiry:         req.AMCExpiry,
		Status:            status,
		AssignmentHistory: []models.AssignmentEvent{},
		Details:           req.Details,
	}

	if req.AssignedTo != "" {
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
		asset.AssignedTo = &holderID
		asset.AssignedToModel = kind
	}

	if _, err := assetCollection.InsertOne(ctx, asset); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "Serial number already exists")
			return
		}
		log.Printf("insert asset: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating asset")
		return
	}

	writeAudit(ctx, identityOf(r), "Create", "Asset", asset.ID.Hex(), asset.SerialNo)
	utils.RespondWithJSON(w, http.StatusCreated, asset)
}

// GetAsset returns one asset including its assignmentHistory, with the
// current holder expanded for the detail view.
func GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid asset ID format")
		return
	}

	var asset models.Asset
	if err := assetCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&asset); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}
		log.Printf("load asset: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching asset")
		return
	}

	resp := struct {
		models.Asset
		Holder interface{} `json:"holder,omitempty"`
	}{Asset: asset}

	if asset.AssignedTo != nil {
		switch asset.AssignedToModel {
		case models.HolderKindDivision:
			if divisions, err := loadDivisionsByID(r.Context(), []primitive.ObjectID{*asset.AssignedTo}); err == nil {
				resp.Holder = divisions[*asset.AssignedTo]
			}
		case models.HolderKindUser:
			if users, err := loadUsersByID(r.Context(), []primitive.ObjectID{*asset.AssignedTo}); err == nil {
				resp.Holder = users[*asset.AssignedTo]
			}
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// UpdateAsset applies a direct edit. This is the only path that may set
// In Repair / In AMC; assignment state still belongs to the assignment
// service.
func UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid asset ID format")
		return
	}

	var req assetRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	update := bson.M{}
	if req.Type != "" {
		if !models.IsValidAssetType(req.Type) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown asset type")
			return
		}
		update["type"] = req.Type
	}
	if req.Brand != "" {
		update["brand"] = req.Brand
	}
	if req.Model != "" {
		update["model"] = req.Model
	}
	if req.SerialNo != "" {
		count, err := assetCollection.CountDocuments(r.Context(),
			bson.M{"serialNo": req.SerialNo, "_id": bson.M{"$ne": id}})
		if err != nil {
			log.Printf("serialNo check: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if count > 0 {
			utils.RespondWithError(w, http.StatusConflict, "Serial number already exists")
			return
		}
		update["serialNo"] = req.SerialNo
	}
	if req.PurchaseDate != nil {
		update["purchaseDate"] = req.PurchaseDate
	}
	if req.WarrantyExpiry != nil {
		update["warrantyExpiry"] = req.WarrantyExpiry
	}
	if req.AMCExpiry != nil {
		update["amcExpiry"] = req.AMCExpiry
	}
	if req.Status != "" {
		if !models.IsValidAssetStatus(req.Status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		update["status"] = req.Status
	}
	if req.Details != nil {
		update["details"] = req.Details
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	res := assetCollection.FindOneAndUpdate(r.Context(), bson.M{"_id": id}, bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var asset models.Asset
	if err := res.Decode(&asset); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Asset not found")
			return
		}
		log.Printf("update asset: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating asset")
		return
	}

	writeAudit(r.Context(), identityOf(r), "Update", "Asset", asset.ID.Hex(), asset.SerialNo)
	utils.RespondWithJSON(w, http.StatusOK, asset)
}

// DeleteAsset removes the asset record. Assignment records referencing it are
// left in place; the history view tolerates dangling references.
func DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid asset ID format")
		return
	}

	res, err := assetCollection.DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		log.Printf("delete asset: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting asset")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Asset not found")
		return
	}

	writeAudit(r.Context(), identityOf(r), "Delete", "Asset", id.Hex(), "")
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Asset deleted"})
}

// ExportAssets streams the full asset register as CSV.
func ExportAssets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cursor, err := assetCollection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "serialNo", Value: 1}}))
	if err != nil {
		log.Printf("assets Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching assets")
		return
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err := cursor.All(ctx, &assets); err != nil {
		log.Printf("cursor decode error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode assets")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=assets-%s.csv", time.Now().UTC().Format("2006-01-02")))

	cw := csv.NewWriter(w)
	cw.Write([]string{"serialNo", "type", "brand", "model", "status", "assignedTo", "assignedToModel", "purchaseDate", "warrantyExpiry", "amcExpiry"})
	for _, a := range assets {
		assignedTo := ""
		if a.AssignedTo != nil {
			assignedTo = a.AssignedTo.Hex()
		}
		cw.Write([]string{
			a.SerialNo, a.Type, a.Brand, a.Model, string(a.Status),
			assignedTo, string(a.AssignedToModel),
			formatDate(a.PurchaseDate), formatDate(a.WarrantyExpiry), formatDate(a.AMCExpiry),
		})
	}
	cw.Flush()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
