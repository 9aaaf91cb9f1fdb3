package distance

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultORSBaseURL = "https://api.openrouteservice.org"
	DefaultORSProfile = "driving-car"
)

// ORSClient implements ports.DistanceMatrixProvider and ports.RouteProvider
// using OpenRouteService.
//
// It coordinates:
//   - Client-side rate limiting (ORS free tier quotas are per minute)
//   - External API calls with retry/backoff
//   - Decoding of matrix and GeoJSON directions responses
//
// The client is safe for concurrent use. Caching is layered on top by the
// cache adapters.
type ORSClient struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	limiter *rate.Limiter
}

type ORSOptions struct {
	BaseURL string
	Profile string
	// RequestsPerMinute <= 0 disables client-side limiting.
	RequestsPerMinute int
	HTTPClient        *http.Client
}

func NewORSClient(apiKey string, opts ORSOptions) (*ORSClient, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	client := &ORSClient{
		session: opts.HTTPClient,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		profile: opts.Profile,
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	if client.session == nil {
		client.session = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = DefaultORSBaseURL
	}
	if client.profile == "" {
		client.profile = DefaultORSProfile
	}
	if opts.RequestsPerMinute > 0 {
		client.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}

	return client, nil
}
