package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Joao-ahah/centro-artesanato-api/internal/auth"
	"github.com/Joao-ahah/centro-artesanato-api/internal/middleware"
)

type Deps struct {
	Cart    *CartHandler
	Catalog *CatalogHandler
	Auth    *AuthHandler
	Admin   *AdminHandler
	Blog    *BlogHandler
	Order   *OrderHandler
	Upload  *UploadHandler

	Tokens           *auth.Tokens
	CORSAllowOrigins []string

	// Serve stored uploads when both are set.
	UploadDir        string
	UploadPublicPath string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(middleware.CORS(d.CORSAllowOrigins))
	r.Use(middleware.CorrelationID)

	admin := middleware.RequireAdmin(d.Tokens)

	r.Get("/health", health)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", d.Catalog.List)
		r.Get("/{id}", d.Catalog.Get)
		r.With(admin).Post("/", d.Catalog.Create)
		r.With(admin).Put("/{id}", d.Catalog.Update)
		r.With(admin).Delete("/{id}", d.Catalog.Delete)
	})

	r.Route("/api/cart/{ownerId}", func(r chi.Router) {
		r.Get("/", d.Cart.Get)
		r.Delete("/", d.Cart.Clear)
		r.Post("/items", d.Cart.AddItem)
		r.Patch("/items/{productId}", d.Cart.UpdateQuantity)
		r.Delete("/items/{productId}", d.Cart.RemoveItem)
		r.Post("/giftwrap", d.Cart.ToggleGiftWrap)
		r.Post("/coupon", d.Cart.ApplyCoupon)
		r.Post("/checkout", d.Cart.Checkout)
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", d.Order.ListByOwner)
		r.Get("/{orderId}", d.Order.Get)
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", d.Auth.Register)
		r.Post("/login", d.Auth.Login)
	})

	r.With(admin).Get("/api/admin/dashboard", d.Admin.Dashboard)

	r.Route("/api/blog", func(r chi.Router) {
		r.Get("/", d.Blog.List)
		r.Get("/{slug}", d.Blog.GetBySlug)
	})

	r.With(admin).Post("/api/upload", d.Upload.Upload)

	if d.UploadDir != "" && d.UploadPublicPath != "" {
		fs := http.StripPrefix(d.UploadPublicPath+"/", http.FileServer(http.Dir(d.UploadDir)))
		r.Get(d.UploadPublicPath+"/*", fs.ServeHTTP)
	}

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "centro-artesanato-api"})
}
