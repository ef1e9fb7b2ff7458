package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"nutrition-catalog-service/internal/catalog"
	"nutrition-catalog-service/internal/models"
	"nutrition-catalog-service/internal/notifications"
)

// MockInteropFetcher is a mock implementation of InteropFetcher
type MockInteropFetcher struct {
	mock.Mock
}

func (m *MockInteropFetcher) FetchCatalog(ctx context.Context) ([]models.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Record), args.Error(1)
}

func (m *MockInteropFetcher) FetchManufacturers(ctx context.Context) ([]models.Manufacturer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Manufacturer), args.Error(1)
}

func (m *MockInteropFetcher) FetchFormFactorTypes(ctx context.Context) ([]models.FormFactorType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FormFactorType), args.Error(1)
}

func newTestRepo() (*CatalogRepository, *notifications.Notifier) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	notifier := notifications.NewNotifier(logger)
	return NewCatalogRepository(nil, 15, notifier, logger), notifier
}

func makeProducts(count int) []models.Product {
	products := make([]models.Product, count)
	for i := range products {
		products[i] = models.Product{
			DID:         i + 1,
			Description: fmt.Sprintf("Formula %d", i+1),
			Items: []models.Item{
				{ProductID: fmt.Sprintf("P%d", i+1)},
			},
		}
	}
	return products
}

func TestSetProductsOverwriteReplacesCatalog(t *testing.T) {
	repo, _ := newTestRepo()
	repo.SetProducts(makeProducts(3), models.ImportModeOverwrite)

	collisions, ok := repo.SetProducts(makeProducts(2), models.ImportModeOverwrite)
	assert.True(t, ok)
	assert.Nil(t, collisions)
	assert.Len(t, repo.Products(), 2)
}

func TestSetProductsOverwriteIgnoresCollisions(t *testing.T) {
	repo, _ := newTestRepo()
	repo.SetProducts(makeProducts(3), models.ImportModeOverwrite)

	// Same DIDs again: overwrite never checks, it replaces.
	_, ok := repo.SetProducts(makeProducts(3), models.ImportModeOverwrite)
	assert.True(t, ok)
	assert.Len(t, repo.Products(), 3)
}

func TestSetProductsMergeAppendsWhenDisjoint(t *testing.T) {
	repo, _ := newTestRepo()
	repo.SetProducts(makeProducts(2), models.ImportModeOverwrite)

	batch := []models.Product{
		{DID: 10, Description: "New Formula", Items: []models.Item{{ProductID: "N1"}}},
	}
	collisions, ok := repo.SetProducts(batch, models.ImportModeMerge)
	assert.True(t, ok)
	assert.Nil(t, collisions)

	products := repo.Products()
	assert.Len(t, products, 3)
	assert.Equal(t, 10, products[2].DID)
}

func TestSetProductsMergeRejectsWholeBatchOnCollision(t *testing.T) {
	repo, notifier := newTestRepo()
	repo.SetProducts(makeProducts(2), models.ImportModeOverwrite)
	before := repo.Products()

	batch := []models.Product{
		{DID: 100, Description: "Clean", Items: []models.Item{{ProductID: "C1"}}},
		{DID: 1, Description: "Collides", Items: []models.Item{{ProductID: "C2"}}},
	}
	collisions, ok := repo.SetProducts(batch, models.ImportModeMerge)
	assert.False(t, ok)
	assert.Equal(t, []string{"1"}, collisions[catalog.SpaceDID])

	// Rejection leaves the catalog untouched, including the clean rows.
	assert.Equal(t, before, repo.Products())

	// One error notification per colliding space.
	recent := notifier.Recent()
	var errorMessages []string
	for _, n := range recent {
		if n.Type == models.NotificationError {
			errorMessages = append(errorMessages, n.Message)
		}
	}
	assert.Equal(t, []string{"duplicate DID values: 1"}, errorMessages)
}

func TestReloadPopulatesAllCollections(t *testing.T) {
	repo, _ := newTestRepo()

	fetcher := new(MockInteropFetcher)
	fetcher.On("FetchCatalog", mock.Anything).Return([]models.Record{
		{DID: 1, Description: "Formula A"},
		{ProductID: "A1"},
	}, nil)
	fetcher.On("FetchManufacturers", mock.Anything).Return([]models.Manufacturer{
		{ManufacturerID: 1, ManufacturerName: "Acme"},
	}, nil)
	fetcher.On("FetchFormFactorTypes", mock.Anything).Return([]models.FormFactorType{
		{ID: 1, Name: "Bottle"},
	}, nil)

	err := repo.Reload(context.Background(), fetcher)
	assert.NoError(t, err)

	products := repo.Products()
	assert.Len(t, products, 1)
	assert.Len(t, products[0].Items, 1)
	assert.Len(t, repo.Manufacturers(), 1)
	assert.Len(t, repo.FormFactorTypes(), 1)
	fetcher.AssertExpectations(t)
}

func TestReloadFailureLeavesStateUntouched(t *testing.T) {
	repo, notifier := newTestRepo()
	repo.SetProducts(makeProducts(2), models.ImportModeOverwrite)

	fetcher := new(MockInteropFetcher)
	fetcher.On("FetchCatalog", mock.Anything).Return([]models.Record{{DID: 9}}, nil)
	fetcher.On("FetchManufacturers", mock.Anything).Return(nil, errors.New("connection refused"))

	err := repo.Reload(context.Background(), fetcher)
	assert.Error(t, err)
	assert.Len(t, repo.Products(), 2)
	assert.Empty(t, repo.Manufacturers())

	recent := notifier.Recent()
	last := recent[len(recent)-1]
	assert.Equal(t, models.NotificationError, last.Type)
	assert.Equal(t, "Error fetching catalog data", last.Message)
}

func TestReloadRejectsMalformedCatalog(t *testing.T) {
	repo, _ := newTestRepo()

	fetcher := new(MockInteropFetcher)
	fetcher.On("FetchCatalog", mock.Anything).Return([]models.Record{
		{ProductID: "orphan"},
	}, nil)
	fetcher.On("FetchManufacturers", mock.Anything).Return([]models.Manufacturer{}, nil)
	fetcher.On("FetchFormFactorTypes", mock.Anything).Return([]models.FormFactorType{}, nil)

	err := repo.Reload(context.Background(), fetcher)
	assert.Error(t, err)
	assert.Empty(t, repo.Products())
}

func TestViewPaginatesTrailingPage(t *testing.T) {
	repo, _ := newTestRepo()
	repo.SetProducts(makeProducts(32), models.ImportModeOverwrite)
	repo.SetPage(3)

	view := repo.View(context.Background())
	assert.Len(t, view.Data, 2)
	assert.Equal(t, 31, view.Data[0].DID)
	assert.Equal(t, 3, view.Pagination.Page)
	assert.Equal(t, int64(32), view.Pagination.Total)
	assert.Equal(t, 3, view.Pagination.TotalPages)
	assert.False(t, view.Pagination.HasNext)
	assert.True(t, view.Pagination.HasPrevious)
}

func TestViewPageBeyondRangeIsEmpty(t *testing.T) {
	repo, _ := newTestRepo()
	repo.SetProducts(makeProducts(5), models.ImportModeOverwrite)
	repo.SetPage(4)

	view := repo.View(context.Background())
	assert.Empty(t, view.Data)
	assert.Equal(t, int64(5), view.Pagination.Total)
}

func TestViewFiltersCaseInsensitively(t *testing.T) {
	repo, _ := newTestRepo()
	repo.SetProducts([]models.Product{
		{DID: 1, Description: "Preterm Formula 24kcal"},
		{DID: 2, Description: "Donor Milk"},
		{DID: 3, Description: "Term FORMULA"},
	}, models.ImportModeOverwrite)

	repo.SetSearchTerm("formula")
	view := repo.View(context.Background())
	assert.Len(t, view.Data, 2)
	assert.Equal(t, 1, view.Data[0].DID)
	assert.Equal(t, 3, view.Data[1].DID)
}

func TestChangingSearchTermResetsPage(t *testing.T) {
	repo, _ := newTestRepo()
	repo.SetProducts(makeProducts(32), models.ImportModeOverwrite)

	repo.SetPage(3)
	repo.SetSearchTerm("Formula 1")
	view := repo.View(context.Background())
	assert.Equal(t, 1, view.Pagination.Page)

	// Re-applying the same term keeps the page.
	repo.SetPage(2)
	repo.SetSearchTerm("Formula 1")
	view = repo.View(context.Background())
	assert.Equal(t, 2, view.Pagination.Page)
}
