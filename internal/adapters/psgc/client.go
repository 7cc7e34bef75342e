package psgc

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"barangay-pet-registry/internal/platform/httpclient"
)

const DefaultBaseURL = "https://psgc.gitlab.io/api"

// Item es una unidad administrativa del Philippine Standard Geographic
// Code: región, provincia, ciudad/municipio o barangay.
type Item struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Client consulta la API pública del PSGC para el selector de dirección
// del flujo de setup.
type Client struct {
	http *httpclient.Client
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

// NewClientWithHTTP permite inyectar el httpclient (tests).
func NewClientWithHTTP(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

func (c *Client) Regions(ctx context.Context) ([]Item, error) {
	return c.list(ctx, "/regions/")
}

func (c *Client) Provinces(ctx context.Context, regionCode string) ([]Item, error) {
	code, err := cleanCode(regionCode)
	if err != nil {
		return nil, err
	}
	return c.list(ctx, "/regions/"+code+"/provinces/")
}

func (c *Client) Cities(ctx context.Context, provinceCode string) ([]Item, error) {
	code, err := cleanCode(provinceCode)
	if err != nil {
		return nil, err
	}
	return c.list(ctx, "/provinces/"+code+"/cities-municipalities/")
}

func (c *Client) Barangays(ctx context.Context, cityCode string) ([]Item, error) {
	code, err := cleanCode(cityCode)
	if err != nil {
		return nil, err
	}
	return c.list(ctx, "/cities-municipalities/"+code+"/barangays/")
}

func (c *Client) list(ctx context.Context, path string) ([]Item, error) {
	var out []Item
	if err := c.http.DoJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("psgc: %w", err)
	}
	return out, nil
}

func cleanCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("psgc: empty code")
	}
	return url.PathEscape(code), nil
}
