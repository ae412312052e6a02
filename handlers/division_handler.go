package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/uplifts-neel/lab-inventory-managment/models"
	"github.com/uplifts-neel/lab-inventory-managment/utils"
)

type divisionRequest struct {
	Name     string   `json:"name" validate:"required"`
	Parent   string   `json:"parent,omitempty"`
	Projects []string `json:"projects,omitempty"`
}

func ListDivisions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cursor, err := divisionCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("divisions Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching divisions")
		return
	}
	defer cursor.Close(ctx)

	var divisions []models.Division
	if err := cursor.All(ctx, &divisions); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode divisions")
		return
	}
	if divisions == nil {
		divisions = []models.Division{}
	}

	utils.RespondWithJSON(w, http.StatusOK, divisions)
}

func GetDivision(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid division ID format")
		return
	}

	var division models.Division
	if err := divisionCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&division); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Division not found")
			return
		}
		log.Printf("load division: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching division")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, division)
}

func CreateDivision(w http.ResponseWriter, r *http.Request) {
	var req divisionRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	division := models.Division{
		ID:       primitive.NewObjectID(),
		Name:     req.Name,
		Projects: req.Projects,
	}
	if req.Parent != "" {
		parentID, err := primitive.ObjectIDFromHex(req.Parent)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid parent ID format")
			return
		}
		division.Parent = &parentID
	}

	if _, err := divisionCollection.InsertOne(r.Context(), division); err != nil {
		log.Printf("insert division: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating division")
		return
	}

	writeAudit(r.Context(), identityOf(r), "Create", "Division", division.ID.Hex(), division.Name)
	utils.RespondWithJSON(w, http.StatusCreated, division)
}

func UpdateDivision(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid division ID format")
		return
	}

	var req divisionRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Parent != "" {
		parentID, err := primitive.ObjectIDFromHex(req.Parent)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid parent ID format")
			return
		}
		update["parent"] = parentID
	}
	if req.Projects != nil {
		update["projects"] = req.Projects
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	res, err := divisionCollection.UpdateByID(r.Context(), id, bson.M{"$set": update})
	if err != nil {
		log.Printf("update division: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating division")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Division not found")
		return
	}

	var division models.Division
	if err := divisionCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&division); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching division")
		return
	}

	writeAudit(r.Context(), identityOf(r), "Update", "Division", id.Hex(), division.Name)
	utils.RespondWithJSON(w, http.StatusOK, division)
}

func DeleteDivision(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid division ID format")
		return
	}

	res, err := divisionCollection.DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		log.Printf("delete division: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting division")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Division not found")
		return
	}

	writeAudit(r.Context(), identityOf(r), "Delete", "Division", id.Hex(), "")
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Division deleted"})
}
