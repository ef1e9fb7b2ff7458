package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"nutrition-catalog-service/internal/models"
)

// InteropClient talks to the customer interoperability backend, which owns
// the persisted catalog and the reference tables. All catalog state in this
// service is an in-memory projection of what this client fetches.
type InteropClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewInteropClient creates a client against INTEROP_SERVICE_URL (default
// local interoperability backend).
func NewInteropClient() *InteropClient {
	baseURL := os.Getenv("INTEROP_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	return &InteropClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// catalogResponse is the fetch-products envelope.
type catalogResponse struct {
	Success bool            `json:"success"`
	Data    []models.Record `json:"data"`
}

type manufacturersResponse struct {
	Success bool                  `json:"success"`
	Data    []models.Manufacturer `json:"data"`
}

type formFactorTypesResponse struct {
	Success bool                    `json:"success"`
	Data    []models.FormFactorType `json:"data"`
}

type saveResponse struct {
	Success bool `json:"success"`
}

func (c *InteropClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("interoperability service returned status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchCatalog retrieves the persisted catalog as flat domain records. A
// success=false envelope is an error; callers must not mutate state on it.
func (c *InteropClient) FetchCatalog(ctx context.Context) ([]models.Record, error) {
	var result catalogResponse
	if err := c.get(ctx, "/api/customer/interoperability/fetch-products", &result); err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("fetch catalog: interoperability service reported failure")
	}
	return result.Data, nil
}

// FetchManufacturers retrieves the manufacturer reference table.
func (c *InteropClient) FetchManufacturers(ctx context.Context) ([]models.Manufacturer, error) {
	var result manufacturersResponse
	if err := c.get(ctx, "/api/customer/interoperability/get-manufacturers", &result); err != nil {
		return nil, fmt.Errorf("fetch manufacturers: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("fetch manufacturers: interoperability service reported failure")
	}
	return result.Data, nil
}

// FetchFormFactorTypes retrieves the form factor type reference table.
func (c *InteropClient) FetchFormFactorTypes(ctx context.Context) ([]models.FormFactorType, error) {
	var result formFactorTypesResponse
	if err := c.get(ctx, "/api/customer/interoperability/get-formfactortypes", &result); err != nil {
		return nil, fmt.Errorf("fetch form factor types: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("fetch form factor types: interoperability service reported failure")
	}
	return result.Data, nil
}

// SaveProducts pushes the catalog back to the interoperability service as
// human-labeled rows (the load-products payload shape).
func (c *InteropClient) SaveProducts(ctx context.Context, rows []map[string]any) error {
	body, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/customer/interoperability/load-products", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("save products: interoperability service returned status %d", resp.StatusCode)
	}

	var result saveResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("save products: interoperability service reported failure")
	}
	return nil
}
