package api

import (
	"context"

	"github.com/gorilla/mux"

	"github.com/mentorhub/mentorhub/internal/assignment"
	"github.com/mentorhub/mentorhub/internal/config"
	"github.com/mentorhub/mentorhub/internal/cv"
	"github.com/mentorhub/mentorhub/internal/db"
	"github.com/mentorhub/mentorhub/internal/match"
	"github.com/mentorhub/mentorhub/internal/repository/sqlite"
	"github.com/mentorhub/mentorhub/internal/verification"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(database, logger)

	// Services
	assignSvc := assignment.NewService(repo, repo, logger)
	if err := assignSvc.Refresh(context.Background()); err != nil {
		logger.Error("initial assignment index load failed", "err", err)
	}
	reconciler := verification.NewReconciler(repo, repo, logger)
	scorer := match.NewScorer(repo, logger)
	cvGen := cv.NewGenerator(repo, repo)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, repo, cfg.JWTSecret, cfg.TokenDuration)
	usersHandler := NewUsersHandler(repo, assignSvc)
	assignmentsHandler := NewAssignmentsHandler(assignSvc, repo, repo)
	verificationsHandler := NewVerificationsHandler(reconciler, repo, repo)
	messagesHandler := NewMessagesHandler(repo, repo)
	profileHandler := NewProfileHandler(repo, repo, cvGen)
	jobsHandler := NewJobsHandler(repo, scorer)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")

	// Admin endpoints
	admin := apiV1.PathPrefix("/admin").Subrouter()
	admin.Use(AdminOnlyMiddleware)

	admin.HandleFunc("/users", usersHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users", usersHandler.CreateUser).Methods("POST")
	admin.HandleFunc("/users/import", usersHandler.ImportUsers).Methods("POST")
	admin.HandleFunc("/users/{id}", usersHandler.GetUser).Methods("GET")
	admin.HandleFunc("/users/{id}", usersHandler.UpdateUser).Methods("PUT")
	admin.HandleFunc("/users/{id}", usersHandler.DeleteUser).Methods("DELETE")

	admin.HandleFunc("/mentorship", assignmentsHandler.ListAssignments).Methods("GET")
	admin.HandleFunc("/mentorship", assignmentsHandler.Assign).Methods("POST")
	admin.HandleFunc("/mentorship", assignmentsHandler.Unassign).Methods("DELETE")
	admin.HandleFunc("/mentorship/students/{mentorID}", assignmentsHandler.StudentsForMentor).Methods("GET")
	admin.HandleFunc("/mentorship/mentor/{studentID}", assignmentsHandler.MentorForStudent).Methods("GET")

	admin.HandleFunc("/verifications", verificationsHandler.ListRequests).Methods("GET")
	admin.HandleFunc("/verifications/scan", verificationsHandler.Scan).Methods("POST")
	admin.HandleFunc("/verifications/{id}/approve", verificationsHandler.Approve).Methods("POST")
	admin.HandleFunc("/verifications/{id}/reject", verificationsHandler.Reject).Methods("POST")

	admin.HandleFunc("/jobs", jobsHandler.CreateJob).Methods("POST")

	// Messaging endpoints
	apiV1.HandleFunc("/messages", messagesHandler.Inbox).Methods("GET")
	apiV1.HandleFunc("/messages", messagesHandler.Send).Methods("POST")
	apiV1.HandleFunc("/messages/conversation", messagesHandler.Conversation).Methods("GET")
	apiV1.HandleFunc("/messages/{id}/read", messagesHandler.MarkRead).Methods("POST")

	// Student endpoints
	apiV1.HandleFunc("/student/{id}/profile", profileHandler.GetProfile).Methods("GET")
	apiV1.HandleFunc("/student/{id}/profile", profileHandler.UpdateProfile).Methods("PUT")
	apiV1.HandleFunc("/student/{id}/qualifications", profileHandler.AddQualification).Methods("POST")
	apiV1.HandleFunc("/student/{id}/activities", profileHandler.AddActivity).Methods("POST")
	apiV1.HandleFunc("/student/{id}/cv", profileHandler.GetCV).Methods("GET")
	apiV1.HandleFunc("/student/{id}/verification", verificationsHandler.SubmitVerification).Methods("POST")
	apiV1.HandleFunc("/student/{id}/verification", verificationsHandler.VerificationStatus).Methods("GET")

	// Job listings
	apiV1.HandleFunc("/jobs", jobsHandler.ListJobs).Methods("GET")

	return r
}
