package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/hotelflex/handlers"
	"p9e.in/hotelflex/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication; respondents are anonymous)
	// =====================================================
	r.HandleFunc("/healthz", handlers.Health).Methods("GET")
	r.HandleFunc("/api/v1/catalog", handlers.GetCatalog).Methods("GET")

	s := r.PathPrefix("/api/v1/sessions").Subrouter()
	s.HandleFunc("", handlers.CreateSession).Methods("POST")
	s.HandleFunc("/{id}", handlers.GetSession).Methods("GET")
	s.HandleFunc("/{id}", handlers.DeleteSession).Methods("DELETE")
	s.HandleFunc("/{id}/continue", handlers.ContinueIntro).Methods("POST")
	s.HandleFunc("/{id}/metadata", handlers.PutMetadata).Methods("PUT")
	s.HandleFunc("/{id}/start", handlers.StartQuestionnaire).Methods("POST")
	s.HandleFunc("/{id}/answer", handlers.AnswerDevice).Methods("POST")
	s.HandleFunc("/{id}/skip", handlers.SkipDevice).Methods("POST")
	s.HandleFunc("/{id}/back", handlers.BackDevice).Methods("POST")
	s.HandleFunc("/{id}/responses", handlers.UpsertResponse).Methods("PUT")
	s.HandleFunc("/{id}/responses", handlers.RemoveResponse).Methods("DELETE")
	s.HandleFunc("/{id}/finish", handlers.FinishQuestionnaire).Methods("POST")
	s.HandleFunc("/{id}/edit", handlers.EditQuestionnaire).Methods("POST")
	s.HandleFunc("/{id}/submit", handlers.SubmitSession).Methods("POST")
	s.HandleFunc("/{id}/reset", handlers.ResetSession).Methods("POST")

	// =====================================================
	// Admin Routes (require JWT authentication)
	// =====================================================
	r.HandleFunc("/admin/login", handlers.AdminLogin).Methods("POST")

	admin := r.PathPrefix("/api/v1/admin").Subrouter()
	admin.Use(middleware.JWTMiddleware)
	admin.HandleFunc("/export.xlsx", handlers.ExportWorkbookXLSX).Methods("GET")
	admin.HandleFunc("/export.csv", handlers.ExportWorkbookCSV).Methods("GET")
	admin.HandleFunc("/submissions", handlers.ListSubmissions).Methods("GET")

	return r
}
