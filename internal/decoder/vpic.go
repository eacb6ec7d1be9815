package decoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"segurauto-backend/internal/cache"
	"segurauto-backend/internal/domain"
	"segurauto-backend/internal/logger"
)

// VehicleDecoder resolves a VIN to decoded vehicle attributes.
type VehicleDecoder interface {
	Decode(ctx context.Context, vin string) (*domain.VehicleAttributes, error)
}

// vpicDecoder calls the NHTSA vPIC DecodeVinValues endpoint. Responses are
// memoized in redis: decoded attributes for a VIN never change.
type vpicDecoder struct {
	baseURL  string
	client   *http.Client
	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewVPICDecoder(baseURL string, timeout time.Duration, c *cache.Cache, cacheTTL time.Duration) VehicleDecoder {
	return &vpicDecoder{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

type vpicResponse struct {
	Results []vpicResult `json:"Results"`
}

type vpicResult struct {
	ModelYear         string `json:"ModelYear"`
	Make              string `json:"Make"`
	Model             string `json:"Model"`
	Trim              string `json:"Trim"`
	TransmissionStyle string `json:"TransmissionStyle"`
}

func (d *vpicDecoder) Decode(ctx context.Context, vin string) (*domain.VehicleAttributes, error) {
	if !domain.ValidVIN(vin) {
		return nil, domain.ErrInvalidVIN
	}

	if d.cache != nil {
		if attrs, err := d.cache.GetDecodedVehicle(ctx, vin); err == nil {
			return attrs, nil
		}
	}

	url := fmt.Sprintf("%s/vehicles/DecodeVinValues/%s?format=json", d.baseURL, vin)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	logger.ExternalServiceCall("vpic", "DecodeVinValues", "vin", vin)
	resp, err := d.client.Do(req)
	logger.ExternalServiceResult("vpic", "DecodeVinValues", err)
	if err != nil {
		return nil, fmt.Errorf("vin decoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vin decoder returned status %d", resp.StatusCode)
	}

	var decoded vpicResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("vin decoder response malformed: %w", err)
	}
	if len(decoded.Results) == 0 {
		return nil, domain.ErrInvalidVehicleData
	}

	result := decoded.Results[0]
	if result.ModelYear == "" || result.Make == "" || result.Model == "" {
		return nil, domain.ErrInvalidVehicleData
	}

	year, err := domain.ParseModelYear(result.ModelYear)
	if err != nil {
		return nil, err
	}

	attrs := &domain.VehicleAttributes{
		ModelYear:         year,
		Make:              result.Make,
		Model:             result.Model,
		Trim:              result.Trim,
		TransmissionStyle: result.TransmissionStyle,
		VIN:               vin,
	}

	if d.cache != nil {
		if err := d.cache.SetDecodedVehicle(ctx, vin, attrs, d.cacheTTL); err != nil {
			logger.Warn("Failed to cache decoded vehicle", "vin", vin, "error", err)
		}
	}

	return attrs, nil
}
