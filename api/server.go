/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/employees/*      Employee directory
  /api/requests/*       Time-off workflow
  /api/timeline         Leave timeline grid
  /api/notifications/*  Congratulation runs
  /api/invitations      Email invitations
  /api/calendar.ics     iCalendar feed
  /api/admin/reset      Database reset (dev only)
  /avatars/*            Uploaded avatar images
  /*                    Static files (frontend)

STATIC FILE SERVING:
  In production, serves the built frontend from web/dist/.
  Falls back to index.html for client-side routing.

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}", h.UpdateEmployee)
			r.Delete("/{id}", h.DeleteEmployee)
			r.Post("/{id}/avatar", h.UploadAvatar)
			r.Get("/{id}/leave-summary", h.GetLeaveSummary)
			r.Get("/{id}/requests", h.ListEmployeeRequests)
		})

		// Time-off request routes
		r.Route("/requests", func(r chi.Router) {
			r.Get("/", h.ListRequests)
			r.Post("/", h.SubmitRequest)
			r.Post("/{id}/approve", h.ApproveRequest)
			r.Post("/{id}/reject", h.RejectRequest)
			r.Delete("/{id}", h.DeleteRequest)
		})

		// Timeline routes
		r.Get("/timeline", h.GetTimeline)

		// Notification routes
		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.ListNotifications)
			r.Post("/run", h.RunNotifications)
		})

		// Invitation routes
		r.Route("/invitations", func(r chi.Router) {
			r.Get("/", h.ListInvitations)
			r.Post("/", h.CreateInvitation)
		})

		// Email + calendar routes
		r.Post("/email/test", h.SendTestEmail)
		r.Get("/calendar.ics", h.GetCalendarFeed)

		// Database reset (dev only)
		r.Post("/admin/reset", h.ResetDatabase)
	})

	// Uploaded avatar images
	if h.AvatarDir != "" {
		r.Handle("/avatars/*", http.StripPrefix("/avatars/", http.FileServer(http.Dir(h.AvatarDir))))
	}

	// Serve static files (frontend)
	// First try ./web/dist (development), then fall back to message
	staticDir := "./web/dist"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		// Try relative to executable
		exe, _ := os.Executable()
		staticDir = filepath.Join(filepath.Dir(exe), "web", "dist")
	}

	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			fullPath := filepath.Join(staticDir, path)

			// Check if file exists
			if _, err := os.Stat(fullPath); os.IsNotExist(err) {
				// SPA routing: serve index.html
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	} else {
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>PIXUP HR Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>PIXUP HR Engine API</h1>
<p>The frontend is not built yet. Run <code>cd web && npm install && npm run build</code></p>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/employees">/api/employees</a> - List employees</li>
<li><a href="/api/requests">/api/requests</a> - List time-off requests</li>
<li><a href="/api/timeline">/api/timeline</a> - Leave timeline</li>
<li><a href="/api/calendar.ics">/api/calendar.ics</a> - Calendar feed</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
