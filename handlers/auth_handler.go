// handlers/auth_handler.go
package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/uplifts-neel/lab-inventory-managment/models"
	"github.com/uplifts-neel/lab-inventory-managment/utils"
)

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty"`
	Division string `json:"division,omitempty"`
	Mentor   string `json:"mentor,omitempty"`
}

func normalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin":
		return models.RoleAdmin
	case "engineer":
		return models.RoleEngineer
	default:
		return models.RoleTrainee
	}
}

// Login authenticates by email/password and issues a JWT.
func Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := utils.ParseJSON(r, &creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := validate.Struct(creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Valid email and password required")
		return
	}

	var user models.User
	err := userCollection.FindOne(r.Context(), bson.M{"email": creds.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Burn the same time as a real comparison so missing accounts
			// are indistinguishable from wrong passwords.
			_ = utils.CheckPasswordHash("dummy_password", "$2a$10$dummyhashfordummycomparison")
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		log.Printf("login lookup: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Authentication service unavailable")
		return
	}

	if !utils.CheckPasswordHash(creds.Password, user.Password) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Name, user.Role)
	if err != nil {
		log.Printf("JWT generation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	user.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Signup is the public self-registration path; new accounts default to
// Trainee.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	user, status, msg := insertUser(r, req, normalizeRole(req.Role))
	if user == nil {
		utils.RespondWithError(w, status, msg)
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Name, user.Role)
	if err != nil {
		log.Printf("JWT generation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Register creates an account on someone's behalf; admin only (enforced in
// routing).
func Register(w http.ResponseWriter, r *http.Request) {
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
	switch role {
	case models.RoleAdmin, models.RoleEngineer, models.RoleTrainee:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	user, status, msg := insertUser(r, req, role)
	if user == nil {
		utils.RespondWithError(w, status, msg)
		return
	}

	writeAudit(r.Context(), identityOf(r), "Register", "User", user.ID.Hex(), user.Email)
	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered",
		"user":    user,
	})
}

// Me returns the authenticated caller.
func Me(w http.ResponseWriter, r *http.Request) {
	ident := identityOf(r)
	if ident == nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var user models.User
	err := userCollection.FindOne(r.Context(), bson.M{"_id": ident.UserID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Mock identities have no backing document.
			utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
				"user": map[string]string{
					"id":   ident.UserID.Hex(),
					"name": ident.Name,
					"role": ident.Role,
				},
			})
			return
		}
		log.Printf("me lookup: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching user")
		return
	}

	user.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// insertUser hashes the password and writes the user document, returning a
// sanitized copy. On failure it returns nil plus the status and message the
// caller should respond with.
func insertUser(r *http.Request, req registerRequest, role string) (*models.User, int, string) {
	ctx := r.Context()

	count, err := userCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		log.Printf("email check: %v", err)
		return nil, http.StatusInternalServerError, "Database error"
	}
	if count > 0 {
		return nil, http.StatusBadRequest, "Email already exists"
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("hash password: %v", err)
		return nil, http.StatusInternalServerError, "Password processing failed"
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashed,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	if req.Division != "" {
		divID, err := primitive.ObjectIDFromHex(req.Division)
		if err != nil {
			return nil, http.StatusBadRequest, "Invalid division ID format"
		}
		user.Division = &divID
	}
	if req.Mentor != "" {
		mentorID, err := primitive.ObjectIDFromHex(req.Mentor)
		if err != nil {
			return nil, http.StatusBadRequest, "Invalid mentor ID format"
		}
		user.Mentor = &mentorID
	}

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, http.StatusBadRequest, "Email already exists"
		}
		log.Printf("insert user: %v", err)
		return nil, http.StatusInternalServerError, "Error creating user"
	}

	user.Password = ""
	return &user, 0, ""
}
