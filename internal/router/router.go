package router

import (
	"net/http"
	"strings"

	"dropshop/internal/handler"
	"dropshop/internal/middleware"
	"dropshop/internal/model"

	"github.com/rs/zerolog"
)

// Handlers bundles the HTTP handlers the router dispatches to.
type Handlers struct {
	Orders       *handler.OrderHandler
	Products     *handler.ProductHandler
	Categories   *handler.CatalogHandler[model.CategoryRequest, model.CategoryDTO]
	Brands       *handler.CatalogHandler[model.BrandRequest, model.BrandDTO]
	Dropshippers *handler.DropshipperHandler
	Health       http.Handler
	// Files serves locally stored attachments under /files/. Optional.
	Files http.Handler
}

// Options configures the middleware chain.
type Options struct {
	APIKey      string
	ServiceName string
}

// crud is the handler set of one collection resource.
type crud interface {
	List(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	GetByID(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.Handle("GET /health", h.Health)

	if h.Files != nil {
		mux.Handle("GET /files/", http.StripPrefix("/files/", withoutListings(h.Files)))
	}

	resource(mux, "/api/orders", "{id}", h.Orders)
	resource(mux, "/api/products", "{id}", h.Products)
	resource(mux, "/api/categories", "{id}", h.Categories)
	resource(mux, "/api/brands", "{id}", h.Brands)

	// Dropshippers are keyed by the account id, which the caller supplies on create.
	mux.HandleFunc("GET /api/dropshippers", h.Dropshippers.List)
	mux.HandleFunc("POST /api/dropshippers/{userId}", h.Dropshippers.Create)
	mux.HandleFunc("GET /api/dropshippers/{userId}", h.Dropshippers.GetByID)
	mux.HandleFunc("PUT /api/dropshippers/{userId}", h.Dropshippers.Update)
	mux.HandleFunc("DELETE /api/dropshippers/{userId}", h.Dropshippers.Delete)

	// Apply middleware in order: Recovery -> Tracing -> Correlation -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(opts.APIKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Correlation(handler)
	handler = middleware.Tracing(opts.ServiceName)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}

// withoutListings answers 404 for directory paths so stored files can only be
// fetched by their exact reference.
func withoutListings(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func resource(mux *http.ServeMux, base, id string, h crud) {
	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("GET "+base+"/"+id, h.GetByID)
	mux.HandleFunc("PUT "+base+"/"+id, h.Update)
	mux.HandleFunc("DELETE "+base+"/"+id, h.Delete)
}
