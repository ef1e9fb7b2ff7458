package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"nutrition-catalog-service/internal/models"
	"nutrition-catalog-service/internal/notifications"
	"nutrition-catalog-service/internal/repository"
)

func setupCatalogRouter() (*gin.Engine, *repository.CatalogRepository, *notifications.Notifier) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	notifier := notifications.NewNotifier(logger)
	repo := repository.NewCatalogRepository(nil, 15, notifier, logger)

	handler := NewCatalogHandler(repo, nil, notifier, nil, 100, "test-tenant")
	router := gin.New()
	router.GET("/api/v1/catalog/products", handler.GetProducts)
	router.GET("/api/v1/catalog/manufacturers", handler.GetManufacturers)
	router.GET("/api/v1/catalog/formfactor-types", handler.GetFormFactorTypes)
	router.GET("/api/v1/catalog/notifications", handler.GetNotifications)
	router.DELETE("/api/v1/catalog/notifications/:id", handler.DeleteNotification)
	return router, repo, notifier
}

func seedProducts(repo *repository.CatalogRepository, count int) {
	products := make([]models.Product, count)
	for i := range products {
		products[i] = models.Product{
			DID:         i + 1,
			Description: fmt.Sprintf("Formula %d", i+1),
		}
	}
	repo.SetProducts(products, models.ImportModeOverwrite)
}

func TestGetProductsDefaultView(t *testing.T) {
	router, repo, _ := setupCatalogRouter()
	seedProducts(repo, 20)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ProductListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 15)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, int64(20), resp.Pagination.Total)
	assert.True(t, resp.Pagination.HasNext)
}

func TestGetProductsSearchAndPage(t *testing.T) {
	router, repo, _ := setupCatalogRouter()
	seedProducts(repo, 32)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?page=3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp models.ProductListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 31, resp.Data[0].DID)

	// A new search term snaps the view back to page 1.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?search=Formula+3", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Pagination.Page)
	// Formula 3, Formula 30, Formula 31, Formula 32
	assert.Equal(t, int64(4), resp.Pagination.Total)
}

func TestGetProductsClampsLimit(t *testing.T) {
	router, repo, _ := setupCatalogRouter()
	seedProducts(repo, 150)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?limit=500", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp models.ProductListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 100)
	assert.Equal(t, 100, resp.Pagination.Limit)
}

func TestGetManufacturersEmpty(t *testing.T) {
	router, _, _ := setupCatalogRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/manufacturers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ManufacturerListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
}

func TestNotificationLifecycle(t *testing.T) {
	router, _, notifier := setupCatalogRouter()

	entry := notifier.Success("Catalog loaded: 3 products")
	notifier.Error("duplicate DID values: 5")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/notifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.NotificationListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, models.NotificationSuccess, resp.Data[0].Type)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/catalog/notifications/"+strconv.FormatInt(entry.ID, 10), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/catalog/notifications", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, models.NotificationError, resp.Data[0].Type)
}

func TestDeleteNotificationNotFound(t *testing.T) {
	router, _, _ := setupCatalogRouter()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/catalog/notifications/12345", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/catalog/notifications/abc", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
