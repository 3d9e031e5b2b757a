package routing

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/truckershub-backend/internal/config"
	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	ProviderGraphHopper = "graphhopper"
	ProviderORS         = "ors"

	maxErrorBody = 4 << 10
)

// NewProvider builds the provider named in the config
func NewProvider(cfg *config.RoutingConfig, logger *zap.Logger) (repository.RouteProvider, error) {
	base := newBaseClient(cfg, logger)

	switch strings.ToLower(cfg.Provider) {
	case ProviderGraphHopper, "":
		return &graphHopperClient{
			baseClient: base,
			baseURL:    strings.TrimRight(cfg.GraphHopper.BaseURL, "/"),
			apiKey:     cfg.GraphHopper.APIKey,
		}, nil
	case ProviderORS:
		return &orsClient{
			baseClient: base,
			baseURL:    strings.TrimRight(cfg.ORS.BaseURL, "/"),
			apiKey:     cfg.ORS.APIKey,
		}, nil
	default:
		return nil, eris.Errorf("unknown routing provider %q", cfg.Provider)
	}
}

// baseClient holds what both providers share: the HTTP client, request
// defaults and the outbound token bucket.
type baseClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	profile    string
	locale     string
	logger     *zap.Logger
}

func newBaseClient(cfg *config.RoutingConfig, logger *zap.Logger) baseClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return baseClient{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
		profile:    cfg.Profile,
		locale:     cfg.Locale,
		logger:     logger,
	}
}

func (b *baseClient) profileFor(req domain.RouteRequest) string {
	if req.Profile != "" {
		return req.Profile
	}
	return b.profile
}

func (b *baseClient) localeFor(req domain.RouteRequest) string {
	if req.Locale != "" {
		return req.Locale
	}
	return b.locale
}

// do waits for a token, sends the request and decodes a 2xx JSON body into out.
// Non-2xx bodies are handed to onError first so providers can recognise
// their own "no route" answers.
func (b *baseClient) do(req *http.Request, provider string, out interface{}, onError func(status int, body []byte) error) error {
	if err := b.limiter.Wait(req.Context()); err != nil {
		return eris.Wrapf(domain.ErrProviderUnavailable, "%s: rate limiter: %v", provider, err)
	}

	started := time.Now()
	resp, err := b.httpClient.Do(req)
	if err != nil {
		b.logger.Error("Routing request failed",
			zap.String("provider", provider),
			zap.Error(err))
		return eris.Wrapf(domain.ErrProviderUnavailable, "%s: %v", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		b.logger.Warn("Routing provider returned error",
			zap.String("provider", provider),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		if onError != nil {
			if err := onError(resp.StatusCode, body); err != nil {
				return err
			}
		}
		return eris.Wrapf(domain.ErrProviderUnavailable, "%s: status %d", provider, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		b.logger.Error("Failed to decode routing response",
			zap.String("provider", provider),
			zap.Error(err))
		return eris.Wrapf(domain.ErrProviderUnavailable, "%s: decode: %v", provider, err)
	}

	b.logger.Debug("Routing request done",
		zap.String("provider", provider),
		zap.Duration("took", time.Since(started)))
	return nil
}

func checkRequest(req domain.RouteRequest) error {
	if len(req.Points) < 2 {
		return eris.New("route request needs at least start and end")
	}
	return nil
}
