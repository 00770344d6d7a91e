// Package api Brisinga REST API
//
// @title           Brisinga REST API
// @version         1.0.0
// @description     REST API for Brisinga, a fixed-capacity packed vector store.
// @host            localhost:8090
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
)

// Router assembles the chi router for a server. Split from StartServer
// so tests can drive the routes without binding a port.
func Router(server *Server, metrics *Metrics, apiKey string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	instrument := func(method, endpoint string, h http.HandlerFunc) http.HandlerFunc {
		if metrics == nil {
			return h
		}
		return metrics.InstrumentHandler(method, endpoint, h)
	}

	r.Route("/api/v1", func(r chi.Router) {
		auth := apiKeyMiddleware(apiKey)
		if metrics != nil {
			r.Use(metrics.InstrumentAuthMiddleware(auth))
		} else {
			r.Use(auth)
		}

		r.Get("/health", instrument("GET", "/api/v1/health", server.handleHealth))

		// Vector operations
		r.Post("/vectors", instrument("POST", "/api/v1/vectors", server.handleCreateVector))
		r.Get("/vectors", instrument("GET", "/api/v1/vectors", server.handleListVectors))
		r.Get("/vectors/{id}", instrument("GET", "/api/v1/vectors/{id}", server.handleGetVector))
		r.Delete("/vectors/{id}", instrument("DELETE", "/api/v1/vectors/{id}", server.handleDeleteVector))
		r.Post("/vectors/{id}/elements", instrument("POST", "/api/v1/vectors/{id}/elements", server.handleInsertElement))
		r.Get("/vectors/{id}/elements/{value}", instrument("GET", "/api/v1/vectors/{id}/elements/{value}", server.handleFindElement))
		r.Post("/vectors/{id}/retain", instrument("POST", "/api/v1/vectors/{id}/retain", server.handleRetain))
		r.Post("/vectors/{id}/grow", instrument("POST", "/api/v1/vectors/{id}/grow", server.handleGrow))

		// Fee operations
		r.Post("/fees/apply", instrument("POST", "/api/v1/fees/apply", server.handleFeeApply))
		r.Post("/fees/compose", instrument("POST", "/api/v1/fees/compose", server.handleFeeCompose))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", serveSwagger)

	return r
}

// StartServer starts the HTTP server with all routes configured.
func StartServer(buffers Buffers, config ServerConfig) error {
	if SwaggerInfo != nil {
		SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)
	}

	metrics := NewMetrics()
	server := NewServer(buffers, config, metrics)
	r := Router(server, metrics, config.APIKey)

	addr := fmt.Sprintf(":%d", config.Port)
	fmt.Printf("Starting Brisinga REST API server on %s\n", addr)
	fmt.Printf("Metrics available at: http://localhost:%d/metrics\n", config.Port)
	log.Fatal(http.ListenAndServe(addr, r))

	return nil
}

func serveSwagger(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/swagger/" || path == "/swagger/index.html" {
		w.Header().Set("Content-Type", "text/html")
		html := `<!DOCTYPE html>
<html>
<head>
	 <title>Brisinga API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`
		_, _ = w.Write([]byte(html))
		return
	}

	if path == "/swagger/swagger.json" {
		doc, err := swag.ReadDoc(swaggerInstanceName)
		if err != nil {
			fmt.Printf("Error generating swagger doc: %v\n", err)
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
		return
	}

	http.NotFound(w, r)
}
