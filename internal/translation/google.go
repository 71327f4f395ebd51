package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// GoogleProvider translates text through the Google Cloud Translate v2 REST API.
// All upstream failure modes (transport errors, non-2xx statuses, unexpected
// payload shapes) come back as ordinary errors; callers decide how to surface
// them. A circuit breaker fails calls fast once the upstream has been down for
// several consecutive requests.
type GoogleProvider struct {
	apiKey      string
	endpointURL string
	client      *http.Client
	breaker     *gobreaker.CircuitBreaker
	logger      zerolog.Logger
}

// GoogleOptions configures a GoogleProvider.
type GoogleOptions struct {
	Endpoint string
	Timeout  time.Duration
	Logger   zerolog.Logger
}

func NewGoogleProvider(apiKey string, opts GoogleOptions) *GoogleProvider {
	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = "https://translation.googleapis.com/language/translate/v2"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	logger := opts.Logger
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "google-translate",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("translation breaker state changed")
		},
	})

	return &GoogleProvider{
		apiKey:      apiKey,
		endpointURL: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
		breaker: breaker,
		logger:  logger,
	}
}

func (p *GoogleProvider) Name() string {
	return "google"
}

func (p *GoogleProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	if p == nil {
		return nil, fmt.Errorf("google provider is nil")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}
	if strings.TrimSpace(req.SourceLang) == "" || strings.TrimSpace(req.TargetLang) == "" {
		return nil, fmt.Errorf("source and target languages are required")
	}

	result, err := p.breaker.Execute(func() (any, error) {
		return p.doTranslate(ctx, text, req.SourceLang, req.TargetLang)
	})
	if err != nil {
		return nil, err
	}

	resp, ok := result.(*TranslateResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected breaker result type %T", result)
	}
	return resp, nil
}

func (p *GoogleProvider) doTranslate(ctx context.Context, text, sourceLang, targetLang string) (*TranslateResponse, error) {
	params := url.Values{}
	params.Set("q", text)
	params.Set("source", sourceLang)
	params.Set("target", targetLang)
	params.Set("key", p.apiKey)
	params.Set("format", "text")

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpointURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build translation request: %w", err)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.logger.Error().Err(err).Str("source", sourceLang).Str("target", targetLang).Msg("translation request failed")
		return nil, fmt.Errorf("send translation request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read translation response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", strings.TrimSpace(string(respBody))).
			Msg("translation endpoint returned an error")
		return nil, fmt.Errorf("translation endpoint status %d", resp.StatusCode)
	}

	var parsed googleTranslateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		p.logger.Error().
			Str("body", strings.TrimSpace(string(respBody))).
			Msg("translation response was not valid JSON")
		return nil, fmt.Errorf("decode translation response: %w", err)
	}
	if len(parsed.Data.Translations) == 0 {
		p.logger.Error().
			Str("body", strings.TrimSpace(string(respBody))).
			Msg("translation response had unexpected shape")
		return nil, fmt.Errorf("translation response missing translations")
	}

	translated := strings.TrimSpace(parsed.Data.Translations[0].TranslatedText)
	if translated == "" {
		return nil, fmt.Errorf("translation response was empty")
	}

	return &TranslateResponse{
		Text:         translated,
		SourceLang:   sourceLang,
		TargetLang:   targetLang,
		ProviderName: p.Name(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

type googleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}
