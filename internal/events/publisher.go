package events

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Tesseract-Nexus/go-shared/events"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"nutrition-catalog-service/internal/models"
)

// Event types emitted by the catalog lifecycle.
const (
	EventImportCompleted = "product.import_completed"
	EventImportRejected  = "product.import_rejected"
	EventCatalogReloaded = "product.catalog_reloaded"
	EventCatalogPushed   = "product.catalog_pushed"
)

// Publisher wraps the go-shared events publisher for catalog lifecycle events
type Publisher struct {
	publisher *events.Publisher
	logger    *logrus.Entry
}

// NewPublisher creates a new catalog events publisher
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		// Default to GKE internal NATS service URL
		natsURL = "nats://nats.nats.svc.cluster.local:4222"
	}

	config := events.DefaultPublisherConfig(natsURL)
	config.Name = "nutrition-catalog-service"

	publisher, err := events.NewPublisher(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create events publisher: %w", err)
	}

	// Ensure the products stream exists
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := publisher.EnsureStream(ctx, events.StreamProducts, []string{"product.>"}); err != nil {
		logger.WithError(err).Warn("Failed to ensure products stream (may already exist)")
	}

	return &Publisher{
		publisher: publisher,
		logger:    logger.WithField("component", "catalog-events"),
	}, nil
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p.publisher != nil {
		p.publisher.Close()
	}
}

// PublishImportCompleted publishes a product.import_completed event with the
// import transaction summary.
func (p *Publisher) PublishImportCompleted(ctx context.Context, result *models.ImportResult, tenantID string) error {
	event := p.buildEvent(EventImportCompleted, tenantID)
	event.ChangeType = "imported"
	event.NewValue = map[string]interface{}{
		"mode":         string(result.Mode),
		"totalRows":    result.TotalRows,
		"productCount": result.ProductCount,
		"itemCount":    result.ItemCount,
	}
	return p.publish(ctx, event)
}

// PublishImportRejected publishes a product.import_rejected event carrying
// the identifier collisions that blocked a merge.
func (p *Publisher) PublishImportRejected(ctx context.Context, result *models.ImportResult, tenantID string) error {
	event := p.buildEvent(EventImportRejected, tenantID)
	event.ChangeType = "rejected"
	event.NewValue = map[string]interface{}{
		"mode":       string(result.Mode),
		"collisions": result.Collisions,
	}
	return p.publish(ctx, event)
}

// PublishCatalogReloaded publishes a product.catalog_reloaded event after the
// in-memory catalog is repopulated from the interoperability service.
func (p *Publisher) PublishCatalogReloaded(ctx context.Context, productCount int, tenantID string) error {
	event := p.buildEvent(EventCatalogReloaded, tenantID)
	event.ChangeType = "reloaded"
	event.NewValue = map[string]interface{}{
		"productCount": productCount,
	}
	return p.publish(ctx, event)
}

// PublishCatalogPushed publishes a product.catalog_pushed event after the
// catalog is written back to the interoperability service.
func (p *Publisher) PublishCatalogPushed(ctx context.Context, rowCount int, tenantID string) error {
	event := p.buildEvent(EventCatalogPushed, tenantID)
	event.ChangeType = "pushed"
	event.NewValue = map[string]interface{}{
		"rowCount": rowCount,
	}
	return p.publish(ctx, event)
}

func (p *Publisher) buildEvent(eventType, tenantID string) *events.ProductEvent {
	event := events.NewProductEvent(eventType, tenantID)
	event.SourceID = uuid.New().String()
	return event
}

// publish is a helper that logs and publishes events asynchronously
func (p *Publisher) publish(ctx context.Context, event *events.ProductEvent) error {
	// Publish asynchronously to not block the main flow
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := p.publisher.PublishProduct(pubCtx, event); err != nil {
			p.logger.WithFields(logrus.Fields{
				"eventType": event.EventType,
				"tenantID":  event.TenantID,
			}).WithError(err).Error("Failed to publish catalog event")
		} else {
			p.logger.WithFields(logrus.Fields{
				"eventType": event.EventType,
				"tenantID":  event.TenantID,
			}).Info("Catalog event published successfully")
		}
	}()

	return nil
}
