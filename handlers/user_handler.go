// handlers/user_handler.go
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

func ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cursor, err := userCollection.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("users Find error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching users")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode users")
		return
	}
	for i := range users {
		users[i].Password = ""
	}
	if users == nil {
		users = []models.User{}
	}

	utils.RespondWithJSON(w, http.StatusOK, users)
}

// CreateUser is the admin-side user creation path; it shares the insert logic
// with Register but has no token in the response.
func CreateUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleTrainee
	}

	user, status, msg := insertUser(r, req, role)
	if user == nil {
		utils.RespondWithError(w, status, msg)
		return
	}

	writeAudit(r.Context(), identityOf(r), "Create", "User", user.ID.Hex(), user.Email)
	utils.RespondWithJSON(w, http.StatusCreated, user)
}

func GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var user models.User
	if err := userCollection.FindOne(r.Context(), bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("load user: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching user")
		return
	}

	user.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
	Division string `json:"division,omitempty"`
	Mentor   string `json:"mentor,omitempty"`
}

func UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req updateUserRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	ctx := r.Context()
	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Email != "" {
		count, err := userCollection.CountDocuments(ctx, bson.M{"email": req.Email, "_id": bson.M{"$ne": id}})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if count > 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Email already exists")
			return
		}
		update["email"] = req.Email
	}
	if req.Password != "" {
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Password processing failed")
			return
		}
		update["password"] = hashed
	}
	if req.Role != "" {
		switch req.Role {
		case models.RoleAdmin, models.RoleEngineer, models.RoleTrainee:
			update["role"] = req.Role
		default:
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown role")
			return
		}
	}
	if req.Division != "" {
		divID, err := primitive.ObjectIDFromHex(req.Division)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid division ID format")
			return
		}
		update["division"] = divID
	}
	if req.Mentor != "" {
		mentorID, err := primitive.ObjectIDFromHex(req.Mentor)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid mentor ID format")
			return
		}
		update["mentor"] = mentorID
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	res, err := userCollection.UpdateByID(ctx, id, bson.M{"$set": update})
	if err != nil {
		log.Printf("update user: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating user")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching user")
		return
	}
	user.Password = ""

	writeAudit(ctx, identityOf(r), "Update", "User", id.Hex(), user.Email)
	utils.RespondWithJSON(w, http.StatusOK, user)
}

func DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	res, err := userCollection.DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		log.Printf("delete user: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting user")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	writeAudit(r.Context(), identityOf(r), "Delete", "User", id.Hex(), "")
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
