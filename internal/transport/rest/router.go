package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/alphios72/NewsinsightUI/internal/auth"
	"github.com/alphios72/NewsinsightUI/internal/dashboard"
	"github.com/alphios72/NewsinsightUI/internal/permission"
	"github.com/alphios72/NewsinsightUI/internal/records"
	"github.com/alphios72/NewsinsightUI/internal/transport/middleware"
	"github.com/alphios72/NewsinsightUI/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RegisterAllRoutes wires the full route surface. The session gate guards
// everything except login, health and the API docs; the admin subtree
// additionally requires the ADMIN role.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	authService auth.ServiceAPI,
	recordsHandler *records.Handler,
	permissionHandler *permission.Handler,
	dashboardHandler *dashboard.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// API docs live outside the gate, like static assets.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/logout", authHandler.Logout)
		})

		// Everything below requires a valid session cookie.
		r.Group(func(pr chi.Router) {
			pr.Use(middleware.SessionGate(authService, logger))

			pr.Get("/dashboard", dashboardHandler.GetOverview)
			pr.Get("/dashboard/sidebar", dashboardHandler.GetSidebar)

			pr.Route("/tables", func(tr chi.Router) {
				tr.Get("/", recordsHandler.GetTables)
				tr.Get("/{tableName}", recordsHandler.GetTable)
				tr.Post("/{tableName}/records", recordsHandler.CreateRecord)
				tr.Patch("/{tableName}/records/{id}", recordsHandler.UpdateRecord)
				tr.Delete("/{tableName}/records/{id}", recordsHandler.DeleteRecord)
			})

			pr.Route("/admin", func(ar chi.Router) {
				ar.Use(middleware.RequireAdmin(logger))

				ar.Get("/permissions", permissionHandler.GetPermissions)
				ar.Put("/permissions", permissionHandler.UpdatePermission)
				ar.Put("/labels", permissionHandler.UpdateLabel)
			})
		})
	})
}
