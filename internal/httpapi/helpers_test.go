package httpapi_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Joao-ahah/centro-artesanato-api/internal/admin"
	"github.com/Joao-ahah/centro-artesanato-api/internal/auth"
	"github.com/Joao-ahah/centro-artesanato-api/internal/blog"
	"github.com/Joao-ahah/centro-artesanato-api/internal/cart"
	"github.com/Joao-ahah/centro-artesanato-api/internal/catalog"
	"github.com/Joao-ahah/centro-artesanato-api/internal/events"
	"github.com/Joao-ahah/centro-artesanato-api/internal/httpapi"
	"github.com/Joao-ahah/centro-artesanato-api/internal/order"
)

var errForTest = errors.New("boom")

type fixture struct {
	router    http.Handler
	tokens    *auth.Tokens
	catalog   *fakeCatalog
	orders    *fakeOrders
	users     *fakeUsers
	publisher *recordingPublisher
	store     *cart.MemoryStore
}

func newFixture() *fixture {
	f := &fixture{
		tokens:    auth.NewTokens("test-secret"),
		catalog:   &fakeCatalog{products: map[string]catalog.Product{}},
		orders:    &fakeOrders{},
		users:     &fakeUsers{byEmail: map[string]auth.User{}},
		publisher: &recordingPublisher{},
		store:     cart.NewMemoryStore(),
	}

	sessions := cart.NewSessions(f.store, cart.DefaultPricing())
	authService := auth.NewService(f.users, f.tokens)
	dashboard := admin.NewDashboard(f.catalog, f.orders, f.users)

	f.router = httpapi.NewRouter(httpapi.Deps{
		Cart:    httpapi.NewCartHandler(sessions, f.catalog, f.orders, f.publisher),
		Catalog: httpapi.NewCatalogHandler(f.catalog),
		Auth:    httpapi.NewAuthHandler(authService),
		Admin:   httpapi.NewAdminHandler(dashboard),
		Blog:    httpapi.NewBlogHandler(&fakeBlog{}),
		Order:   httpapi.NewOrderHandler(f.orders),
		Upload:  httpapi.NewUploadHandler(nil),

		Tokens:           f.tokens,
		CORSAllowOrigins: []string{"*"},
	})
	return f
}

func (f *fixture) adminToken() string {
	tok, _ := f.tokens.Issue(auth.User{ID: "admin", Name: "Admin", Email: "admin@example.com", Admin: true}, time.Now())
	return tok
}

func (f *fixture) addProduct(id, name, price string) {
	f.catalog.products[id] = catalog.Product{
		ID:          id,
		Name:        name,
		Description: "handmade",
		Price:       decimal.RequireFromString(price),
		Category:    "ceramica",
		Quantity:    5,
		Available:   true,
		Images:      []string{"/uploads/" + id + ".jpg"},
		Artisan:     "Maria",
	}
}

type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]catalog.Product
	listErr  error
}

func (f *fakeCatalog) List(ctx context.Context, _ catalog.Filter) ([]catalog.Product, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var out []catalog.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeCatalog) Get(ctx context.Context, id string) (catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalog) Create(ctx context.Context, p *catalog.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		p.ID = "generated"
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeCatalog) Update(ctx context.Context, p *catalog.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return catalog.ErrNotFound
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeCatalog) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeCatalog) CountAll(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.products), nil
}

func (f *fakeCatalog) CountFeatured(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.products {
		if p.Featured {
			n++
		}
	}
	return n, nil
}

func (f *fakeCatalog) CountOutOfStock(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.products {
		if p.Quantity == 0 {
			n++
		}
	}
	return n, nil
}

type fakeOrders struct {
	mu        sync.Mutex
	created   []*order.Order
	createErr error
}

func (f *fakeOrders) Create(ctx context.Context, o *order.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOrders) GetByID(ctx context.Context, id string) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.created {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, order.ErrNotFound
}

func (f *fakeOrders) ListByOwner(ctx context.Context, ownerID string) ([]order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []order.Order
	for _, o := range f.created {
		if o.OwnerID == ownerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) CountAll(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created), nil
}

func (f *fakeOrders) CountByStatus(ctx context.Context, status order.Status) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, o := range f.created {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]auth.User
}

func (f *fakeUsers) Create(ctx context.Context, u *auth.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[u.Email]; ok {
		return auth.ErrEmailTaken
	}
	f.byEmail[u.Email] = *u
	return nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) CountAll(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byEmail), nil
}

func (f *fakeUsers) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, u := range f.byEmail {
		if u.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

type fakeBlog struct{}

func (fakeBlog) List(ctx context.Context) ([]blog.Post, error) {
	return []blog.Post{{ID: "1", Slug: "feira-de-outono", Title: "Feira de Outono"}}, nil
}

func (fakeBlog) GetBySlug(ctx context.Context, slug string) (blog.Post, error) {
	if slug != "feira-de-outono" {
		return blog.Post{}, blog.ErrNotFound
	}
	return blog.Post{ID: "1", Slug: slug, Title: "Feira de Outono"}, nil
}

type recordingPublisher struct {
	mu         sync.Mutex
	published  []*order.Order
	metas      []events.PublishMetadata
	publishErr error
}

func (p *recordingPublisher) PublishOrderPlaced(ctx context.Context, meta events.PublishMetadata, o *order.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.publishErr != nil {
		return p.publishErr
	}
	p.published = append(p.published, o)
	p.metas = append(p.metas, meta)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
