package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"factfind/internal/service"
	"factfind/internal/transport/rest/handler"
	"factfind/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	QuestionService  *service.QuestionService
	SessionService   *service.SessionService
	FactFindService  *service.FactFindService
	AssistantService *service.AssistantService
	ReportService    *service.ReportService
	SettingsService  *service.SettingsService
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	sessionHandler := handler.NewSessionHandler(c.SessionService, c.FactFindService)
	assistantHandler := handler.NewAssistantHandler(c.AssistantService, c.ReportService, c.FactFindService)
	settingsHandler := handler.NewSettingsHandler(c.SettingsService)
	reportHandler := handler.NewReportHandler(c.ReportService, c.FactFindService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questions", questionHandler.List).Methods("GET", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Respondent routes (require auth)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/auth/me", authHandler.Me).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/sessions", sessionHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/sessions/{id}", sessionHandler.Update).Methods("PATCH", "OPTIONS")
	userRoutes.HandleFunc("/sessions/{id}/current", sessionHandler.Current).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/sessions/{id}/answers", sessionHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/sessions/{id}/previous", sessionHandler.Previous).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/sessions/{id}/summary", sessionHandler.Summary).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/sessions/{id}/report/pdf", reportHandler.GeneratePDF).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/sessions/{id}/report/excel", reportHandler.GenerateExcel).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/sessions/{id}/assistant", assistantHandler.Generate).Methods("POST", "OPTIONS")

	// Admin routes
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	// Reorder is registered before the {id} routes so "reorder" never
	// parses as an id.
	adminRoutes.HandleFunc("/questions/reorder", questionHandler.Reorder).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/questions", questionHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{id}", questionHandler.Update).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/questions/{id}", questionHandler.Delete).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/settings", settingsHandler.Get).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/settings", settingsHandler.Update).Methods("PATCH", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
