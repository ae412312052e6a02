package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/uplifts-neel/lab-inventory-managment/handlers"
	"github.com/uplifts-neel/lab-inventory-managment/middleware"
	"github.com/uplifts-neel/lab-inventory-managment/models"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPutOnly    = []string{"PUT", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

// RegisterRoutes wires every endpoint onto the router. The verifier decides
// how bearer tokens are checked; routing never knows which strategy is live.
func RegisterRoutes(r *mux.Router, verifier middleware.TokenVerifier) {
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// ====================
	// PUBLIC
	// ====================
	r.HandleFunc("/", handlers.Root).Methods(MethodsGetOnly...)
	r.HandleFunc("/health", handlers.HealthCheck).Methods(MethodsGetOnly...)
	r.HandleFunc("/api/auth/login", handlers.Login).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/auth/signup", handlers.Signup).Methods(MethodsPostOnly...)

	// ====================
	// PROTECTED API ROUTES
	// ====================
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(verifier))

	// Auth
	api.Handle("/auth/register", adminOnly(http.HandlerFunc(handlers.Register))).Methods(MethodsPostOnly...)
	api.HandleFunc("/auth/me", handlers.Me).Methods(MethodsGetOnly...)

	// Users
	api.HandleFunc("/users", handlers.ListUsers).Methods(MethodsGetOnly...)
	api.HandleFunc("/users", handlers.CreateUser).Methods(MethodsPostOnly...)
	api.HandleFunc("/users/{id}", handlers.GetUser).Methods(MethodsGetOnly...)
	api.HandleFunc("/users/{id}", handlers.UpdateUser).Methods(MethodsPutOnly...)
	api.Handle("/users/{id}", adminOnly(http.HandlerFunc(handlers.DeleteUser))).Methods(MethodsDeleteOnly...)

	// Divisions
	api.HandleFunc("/divisions", handlers.ListDivisions).Methods(MethodsGetOnly...)
	api.HandleFunc("/divisions", handlers.CreateDivision).Methods(MethodsPostOnly...)
	api.HandleFunc("/divisions/{id}", handlers.GetDivision).Methods(MethodsGetOnly...)
	api.HandleFunc("/divisions/{id}", handlers.UpdateDivision).Methods(MethodsPutOnly...)
	api.Handle("/divisions/{id}", adminOnly(http.HandlerFunc(handlers.DeleteDivision))).Methods(MethodsDeleteOnly...)

	// Assets ("/assets/export" must register before "/assets/{id}")
	api.HandleFunc("/assets", handlers.ListAssets).Methods(MethodsGetOnly...)
	api.HandleFunc("/assets", handlers.CreateAsset).Methods(MethodsPostOnly...)
	api.HandleFunc("/assets/export", handlers.ExportAssets).Methods(MethodsGetOnly...)
	api.HandleFunc("/assets/{id}", handlers.GetAsset).Methods(MethodsGetOnly...)
	api.HandleFunc("/assets/{id}", handlers.UpdateAsset).Methods(MethodsPutOnly...)
	api.HandleFunc("/assets/{id}", handlers.DeleteAsset).Methods(MethodsDeleteOnly...)

	// Assignments
	api.HandleFunc("/assignments", handlers.ListAssignments).Methods(MethodsGetOnly...)
	api.HandleFunc("/assignments", handlers.CreateAssignment).Methods(MethodsPostOnly...)
	api.HandleFunc("/assignments/{id}/return", handlers.ReturnAssignment).Methods(MethodsPutOnly...)

	// AMC tickets
	api.HandleFunc("/amc", handlers.ListAMCs).Methods(MethodsGetOnly...)
	api.HandleFunc("/amc", handlers.CreateAMC).Methods(MethodsPostOnly...)
	api.HandleFunc("/amc/{id}", handlers.UpdateAMC).Methods(MethodsPutOnly...)

	// Audit logs
	api.Handle("/logs", adminOnly(http.HandlerFunc(handlers.ListAuditLogs))).Methods(MethodsGetOnly...)
	api.HandleFunc("/ws/audit", handlers.StreamAuditLogs).Methods(MethodsGetOnly...)
}
