package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"nutrition-catalog-service/internal/catalog"
	"nutrition-catalog-service/internal/clients"
	"nutrition-catalog-service/internal/events"
	"nutrition-catalog-service/internal/models"
	"nutrition-catalog-service/internal/notifications"
	"nutrition-catalog-service/internal/repository"
)

type CatalogHandler struct {
	repo          *repository.CatalogRepository
	interopClient *clients.InteropClient
	notifier      *notifications.Notifier
	publisher     *events.Publisher
	maxPageSize   int
	tenantID      string
}

func NewCatalogHandler(repo *repository.CatalogRepository, interopClient *clients.InteropClient, notifier *notifications.Notifier, publisher *events.Publisher, maxPageSize int, tenantID string) *CatalogHandler {
	return &CatalogHandler{
		repo:          repo,
		interopClient: interopClient,
		notifier:      notifier,
		publisher:     publisher,
		maxPageSize:   maxPageSize,
		tenantID:      tenantID,
	}
}

// GetProducts returns the current catalog view, filtered and paginated.
// GET /api/v1/catalog/products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	if search, ok := c.GetQuery("search"); ok {
		h.repo.SetSearchTerm(search)
	}
	if pageStr, ok := c.GetQuery("page"); ok {
		if page, err := strconv.Atoi(pageStr); err == nil {
			h.repo.SetPage(page)
		}
	}
	if limitStr, ok := c.GetQuery("limit"); ok {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			if limit > h.maxPageSize {
				limit = h.maxPageSize
			}
			h.repo.SetPageSize(limit)
		}
	}

	view := h.repo.View(c.Request.Context())
	c.JSON(http.StatusOK, models.ProductListResponse{
		Success:    true,
		Data:       view.Data,
		Pagination: &view.Pagination,
	})
}

// ReloadCatalog repopulates the catalog and the reference tables from the
// interoperability service, all-or-nothing.
// POST /api/v1/catalog/reload
func (h *CatalogHandler) ReloadCatalog(c *gin.Context) {
	if err := h.repo.Reload(c.Request.Context(), h.interopClient); err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "RELOAD_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	products := h.repo.Products()
	if h.publisher != nil {
		h.publisher.PublishCatalogReloaded(context.Background(), len(products), h.tenantID)
	}

	message := "Catalog reloaded"
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    gin.H{"productCount": len(products)},
		Message: &message,
	})
}

// PushCatalog flattens the catalog back into human-labeled rows and saves it
// to the interoperability service.
// POST /api/v1/catalog/push
func (h *CatalogHandler) PushCatalog(c *gin.Context) {
	records := catalog.Flatten(h.repo.Products())
	rows := make([]map[string]any, len(records))
	for i, rec := range records {
		rows[i] = catalog.ToRow(rec)
	}

	if err := h.interopClient.SaveProducts(c.Request.Context(), rows); err != nil {
		h.notifier.Error("Error saving catalog data")
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "PUSH_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	h.notifier.Success("Catalog saved")
	if h.publisher != nil {
		h.publisher.PublishCatalogPushed(context.Background(), len(rows), h.tenantID)
	}

	message := "Catalog saved"
	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    gin.H{"rowCount": len(rows)},
		Message: &message,
	})
}

// GetManufacturers returns the manufacturer reference table.
// GET /api/v1/catalog/manufacturers
func (h *CatalogHandler) GetManufacturers(c *gin.Context) {
	c.JSON(http.StatusOK, models.ManufacturerListResponse{
		Success: true,
		Data:    h.repo.Manufacturers(),
	})
}

// GetFormFactorTypes returns the form factor type reference table.
// GET /api/v1/catalog/formfactor-types
func (h *CatalogHandler) GetFormFactorTypes(c *gin.Context) {
	c.JSON(http.StatusOK, models.FormFactorTypeListResponse{
		Success: true,
		Data:    h.repo.FormFactorTypes(),
	})
}

// GetNotifications returns the retained operator notifications, oldest first.
// GET /api/v1/catalog/notifications
func (h *CatalogHandler) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, models.NotificationListResponse{
		Success: true,
		Data:    h.notifier.Recent(),
	})
}

// DeleteNotification removes one notification after it has been displayed.
// DELETE /api/v1/catalog/notifications/:id
func (h *CatalogHandler) DeleteNotification(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_ID",
				Message: "Notification ID must be numeric",
			},
		})
		return
	}

	if !h.notifier.Remove(id) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "NOT_FOUND",
				Message: "Notification not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
