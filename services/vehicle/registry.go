package vehicle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"detailify/models"
)

// RegistryClient looks up a registration with the external vehicle registry.
// A missing record is (nil, nil); errors are reserved for transport and
// auth failures.
type RegistryClient interface {
	Lookup(ctx context.Context, registration string) (*models.RegistryVehicle, error)
}

// RegistryError wraps a registry transport or auth failure with the
// provider name so callers can surface who failed.
type RegistryError struct {
	Provider string
	Message  string
	Err      error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}

// DVLAClient talks to the DVLA Vehicle Enquiry Service style API: a POST
// with the registration number, authenticated by API key header.
type DVLAClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewDVLAClient(baseURL, apiKey string) *DVLAClient {
	return &DVLAClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type registryRequest struct {
	RegistrationNumber string `json:"registrationNumber"`
}

func (c *DVLAClient) Lookup(ctx context.Context, registration string) (*models.RegistryVehicle, error) {
	body, err := json.Marshal(registryRequest{RegistrationNumber: registration})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RegistryError{Provider: "dvla", Message: "registry request failed", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var vehicle models.RegistryVehicle
		if err := json.NewDecoder(resp.Body).Decode(&vehicle); err != nil {
			return nil, &RegistryError{Provider: "dvla", Message: "failed to decode registry response", Err: err}
		}
		return &vehicle, nil
	case http.StatusNotFound:
		// The registry has no record for this plate.
		return nil, nil
	default:
		return nil, &RegistryError{
			Provider: "dvla",
			Message:  fmt.Sprintf("registry returned status %d", resp.StatusCode),
		}
	}
}
