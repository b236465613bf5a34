/*
server.go - HTTP router and middleware configuration

PURPOSE:

	Configures the HTTP router (chi), middleware stack, and route definitions.
	This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
 1. RequestID:  Unique ID per request for tracing
 2. Logger:     Request logging
 3. Recoverer:  Panic recovery (500 instead of crash)
 4. CORS:       Cross-origin requests for the CRM front-end

ROUTE GROUPS:

	/api/settings/*      Hourly rate bands, conversion table, projects
	/api/recruiters/*    Roster and ranking
	/api/history/*       Shift records, day-by-day saves
	/api/reports/*       Finances tree, workbook, pay statements, stats
	/api/pipeline/*      Recruitment board
	/api/scenarios/*     Demo data
	/*                   Static files (frontend)

SECURITY NOTE:

	No authentication middleware. All endpoints are public.

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

// NewRouter creates a new router with all routes configured. An empty
// allowedOrigins list allows any origin.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.PutSettings)
		})

		r.Route("/recruiters", func(r chi.Router) {
			r.Get("/", h.ListRecruiters)
			r.Post("/", h.UpsertRecruiter)
			r.Get("/ranking", h.RankRecruiters)
			r.Put("/{id}/status", h.SetRecruiterStatus)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", h.GetHistory)
			r.Put("/days/{date}", h.SaveDay)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/finances", h.FinanceReport)
			r.Get("/finances.xlsx", h.FinanceWorkbook)
			r.Get("/pay", h.PayReport)
			r.Get("/recruiters/{id}/stats", h.RecruiterStats)
		})

		r.Route("/pipeline", func(r chi.Router) {
			r.Get("/", h.GetPipeline)
			r.Post("/leads", h.AddLead)
			r.Post("/import", h.ImportLeads)
			r.Post("/move", h.MoveEntity)
			r.Post("/hire", h.HireEntity)
			r.Patch("/{stage}/{id}", h.AnnotateEntity)
			r.Delete("/{stage}/{id}", h.RemoveEntity)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetData)
		})
	})

	// Serve the built front-end from ./web/dist, or next to the executable.
	staticDir := "./web/dist"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		exe, _ := os.Executable()
		staticDir = filepath.Join(filepath.Dir(exe), "web", "dist")
	}

	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			if _, err := os.Stat(filepath.Join(staticDir, r.URL.Path)); os.IsNotExist(err) {
				// SPA routing: serve index.html
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	} else {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Proago CRM Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Proago CRM Engine API</h1>
<p>The frontend is not built. The API is available under /api.</p>
<ul>
<li><a href="/api/recruiters">/api/recruiters</a> - Roster</li>
<li><a href="/api/reports/finances">/api/reports/finances</a> - Finances for the current year</li>
<li><a href="/api/pipeline">/api/pipeline</a> - Recruitment board</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Demo scenarios</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
