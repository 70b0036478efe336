package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every handler to its path
func setupRoutes(r chi.Router, handlers *routeHandlers, uploadDir string) {
	r.Route("/funds", func(r chi.Router) {
		r.Get("/", handlers.fundHandler.listFunds())
		r.Post("/", handlers.fundHandler.createFund())
		r.Get("/categories/{categoryID}", handlers.fundHandler.listFundsByCategory())
		r.Get("/{fundID}", handlers.fundHandler.getFund())
		r.Patch("/{fundID}", handlers.fundHandler.updateFund())
		r.Delete("/{fundID}", handlers.fundHandler.deleteFund())
		r.Post("/{fundID}/donate", handlers.fundHandler.donate())
		r.Post("/{fundID}/upload-photo", handlers.uploadHandler.uploadFundPhoto())
	})

	r.Get("/categories", handlers.categoryHandler.listCategories())
	r.Post("/categories", handlers.categoryHandler.createCategory())

	// Uploaded photos are served from a fixed mount, matching the
	// /uploads/{fund_id}.jpg convention recorded in photo_url.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir)))
	r.Get("/uploads/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})
}
