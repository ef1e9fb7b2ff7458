package repository

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Tesseract-Nexus/go-shared/cache"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"nutrition-catalog-service/internal/catalog"
	"nutrition-catalog-service/internal/models"
	"nutrition-catalog-service/internal/notifications"
)

// Cache TTL constants
const (
	ViewCacheTTL = 2 * time.Minute // list views change on every import/reload
)

// InteropFetcher is the slice of the interoperability client the repository
// needs to repopulate itself.
type InteropFetcher interface {
	FetchCatalog(ctx context.Context) ([]models.Record, error)
	FetchManufacturers(ctx context.Context) ([]models.Manufacturer, error)
	FetchFormFactorTypes(ctx context.Context) ([]models.FormFactorType, error)
}

// CatalogRepository owns the canonical in-memory catalog plus the reference
// tables. State changes only through SetProducts (the import transaction) or
// Reload (full repopulation from the interoperability service); there is no
// partial edit API. The surrounding system drives it from a single logical
// thread, but gin serves requests concurrently, so access is guarded by a
// read/write mutex anyway.
type CatalogRepository struct {
	mu              sync.RWMutex
	products        []models.Product
	manufacturers   []models.Manufacturer
	formFactorTypes []models.FormFactorType

	// Presentation view state. Changing the search term resets the page.
	searchTerm string
	page       int
	pageSize   int

	cache    *cache.CacheLayer
	notifier *notifications.Notifier
	logger   *logrus.Entry
}

// View is a filtered-then-paginated slice of the catalog.
type View struct {
	Data       []models.Product      `json:"data"`
	Pagination models.PaginationInfo `json:"pagination"`
}

func NewCatalogRepository(redisClient *redis.Client, pageSize int, notifier *notifications.Notifier, logger *logrus.Logger) *CatalogRepository {
	repo := &CatalogRepository{
		page:     1,
		pageSize: pageSize,
		notifier: notifier,
		logger:   logger.WithField("component", "catalog_repository"),
	}

	// Layered view cache on top of the shared Redis client; the repository
	// works without it when Redis is unavailable.
	if redisClient != nil {
		repo.cache = cache.NewCacheLayerFromClient(redisClient, cache.CacheConfig{
			L1Enabled:  true,
			L1MaxItems: 1000,
			L1TTL:      30 * time.Second,
			DefaultTTL: ViewCacheTTL,
			KeyPrefix:  "nutrition:catalog:",
		})
	}

	return repo
}

// viewCacheKey creates a deterministic cache key for one view slice.
func viewCacheKey(search string, page, pageSize int) string {
	data, _ := json.Marshal(map[string]any{"search": search, "page": page, "limit": pageSize})
	hash := md5.Sum(data)
	return fmt.Sprintf("view:%s", hex.EncodeToString(hash[:]))
}

// invalidateViews drops every cached view slice after a catalog mutation.
func (r *CatalogRepository) invalidateViews(ctx context.Context) {
	if r.cache == nil {
		return
	}
	_ = r.cache.DeletePattern(ctx, "view:*")
}

// Products returns a copy of the catalog in insertion order.
func (r *CatalogRepository) Products() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out
}

// Manufacturers returns the manufacturer reference table.
func (r *CatalogRepository) Manufacturers() []models.Manufacturer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Manufacturer, len(r.manufacturers))
	copy(out, r.manufacturers)
	return out
}

// FormFactorTypes returns the form factor reference table.
func (r *CatalogRepository) FormFactorTypes() []models.FormFactorType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.FormFactorType, len(r.formFactorTypes))
	copy(out, r.formFactorTypes)
	return out
}

// SetProducts is the import transaction, the only bulk mutator of the
// catalog. Overwrite replaces the catalog unconditionally and always
// succeeds. Merge first checks every identifier space against the current
// catalog: any collision rejects the whole batch (the catalog is left
// untouched and one error notification is emitted per colliding space);
// otherwise the batch is appended.
func (r *CatalogRepository) SetProducts(items []models.Product, mode models.ImportMode) (catalog.Collisions, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch mode {
	case models.ImportModeOverwrite:
		r.products = items
		r.page = 1
		r.invalidateViews(context.Background())
		r.notifier.Success(fmt.Sprintf("Catalog replaced with %d products", len(items)))
		return nil, true

	case models.ImportModeMerge:
		collisions := catalog.FindDuplicates(r.products, items)
		if collisions.Any() {
			for _, msg := range collisions.Messages() {
				r.notifier.Error(msg)
			}
			r.logger.WithField("spaces", len(collisions)).Warn("Merge rejected due to identifier collisions")
			return collisions, false
		}
		r.products = append(r.products, items...)
		r.invalidateViews(context.Background())
		r.notifier.Success(fmt.Sprintf("Merged %d products into the catalog", len(items)))
		return nil, true

	default:
		r.notifier.Error(fmt.Sprintf("Unknown import mode %q", mode))
		return nil, false
	}
}

// Reload repopulates the catalog and both reference tables from the
// interoperability service. The three fetches run sequentially and the whole
// population is all-or-nothing: any failure leaves every collection in its
// prior state and emits a single error notification.
func (r *CatalogRepository) Reload(ctx context.Context, fetcher InteropFetcher) error {
	records, err := fetcher.FetchCatalog(ctx)
	if err != nil {
		r.notifier.Error("Error fetching catalog data")
		return err
	}
	manufacturers, err := fetcher.FetchManufacturers(ctx)
	if err != nil {
		r.notifier.Error("Error fetching catalog data")
		return err
	}
	formFactorTypes, err := fetcher.FetchFormFactorTypes(ctx)
	if err != nil {
		r.notifier.Error("Error fetching catalog data")
		return err
	}

	products, err := catalog.Restructure(records)
	if err != nil {
		r.notifier.Error("Error fetching catalog data")
		return fmt.Errorf("restructure fetched catalog: %w", err)
	}

	r.mu.Lock()
	r.products = products
	r.manufacturers = manufacturers
	r.formFactorTypes = formFactorTypes
	r.page = 1
	r.invalidateViews(ctx)
	r.mu.Unlock()

	r.logger.WithFields(logrus.Fields{
		"products":        len(products),
		"manufacturers":   len(manufacturers),
		"formFactorTypes": len(formFactorTypes),
	}).Info("Catalog reloaded")
	r.notifier.Success(fmt.Sprintf("Catalog loaded: %d products", len(products)))
	return nil
}

// SetSearchTerm updates the view filter. Changing the term resets the
// current page to 1.
func (r *CatalogRepository) SetSearchTerm(term string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if term != r.searchTerm {
		r.searchTerm = term
		r.page = 1
	}
}

// SetPage moves the view to the given 1-based page.
func (r *CatalogRepository) SetPage(page int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if page < 1 {
		page = 1
	}
	r.page = page
}

// SetPageSize overrides the view page size.
func (r *CatalogRepository) SetPageSize(size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if size > 0 {
		r.pageSize = size
	}
}

// View returns the current filtered-then-paginated slice: case-insensitive
// substring match on the product description, then the page window. The
// result is deterministic for a given catalog and view state, and cached
// briefly when Redis is available.
func (r *CatalogRepository) View(ctx context.Context) View {
	r.mu.RLock()
	search := r.searchTerm
	page := r.page
	pageSize := r.pageSize
	r.mu.RUnlock()

	if r.cache != nil {
		var cached View
		err := r.cache.GetOrSetJSON(ctx, viewCacheKey(search, page, pageSize), &cached, ViewCacheTTL, func() (any, error) {
			v := r.computeView(search, page, pageSize)
			return &v, nil
		})
		if err == nil {
			return cached
		}
		// Fall through to a direct computation on cache errors.
	}
	return r.computeView(search, page, pageSize)
}

func (r *CatalogRepository) computeView(search string, page, pageSize int) View {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := r.products
	if search != "" {
		needle := strings.ToLower(search)
		filtered = make([]models.Product, 0, len(r.products))
		for _, p := range r.products {
			if strings.Contains(strings.ToLower(p.Description), needle) {
				filtered = append(filtered, p)
			}
		}
	}

	total := int64(len(filtered))
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	data := make([]models.Product, end-start)
	copy(data, filtered[start:end])

	return View{
		Data: data,
		Pagination: models.PaginationInfo{
			Page:        page,
			Limit:       pageSize,
			Total:       total,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		},
	}
}
