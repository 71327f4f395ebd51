package dictionary

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lushai-labs/mizodict/internal/translation"
)

type fakeProvider struct {
	mu        sync.Mutex
	calls     int32
	failAll   bool
	responses map[string]string
	block     chan struct{}
}

func (p *fakeProvider) Name() string {
	return "fake"
}

func (p *fakeProvider) Translate(_ context.Context, req translation.TranslateRequest) (*translation.TranslateResponse, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.block != nil {
		<-p.block
	}
	if p.failAll {
		return nil, fmt.Errorf("upstream unavailable")
	}

	p.mu.Lock()
	translated, exists := p.responses[strings.ToLower(req.Text)]
	p.mu.Unlock()
	if !exists {
		return nil, fmt.Errorf("no translation for %q", req.Text)
	}

	return &translation.TranslateResponse{
		Text:         translated,
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		ProviderName: "fake",
	}, nil
}

func (p *fakeProvider) callCount() int {
	return int(atomic.LoadInt32(&p.calls))
}

func newTestService(provider *fakeProvider) *Service {
	return NewService(provider, NewCache(), zerolog.Nop(), time.Second)
}

func TestTranslateMissThenHit(t *testing.T) {
	provider := &fakeProvider{responses: map[string]string{"hello": "chibai"}}
	svc := newTestService(provider)

	first, err := svc.Translate(context.Background(), "hello", EnglishToMizo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Output != "chibai" || first.Cached {
		t.Fatalf("first call: output=%q cached=%t, want chibai/false", first.Output, first.Cached)
	}

	second, err := svc.Translate(context.Background(), "hello", EnglishToMizo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Output != first.Output || !second.Cached {
		t.Fatalf("second call: output=%q cached=%t, want chibai/true", second.Output, second.Cached)
	}

	if provider.callCount() != 1 {
		t.Fatalf("provider called %d times, want 1", provider.callCount())
	}
}

func TestTranslateKeysAreCaseInsensitive(t *testing.T) {
	provider := &fakeProvider{responses: map[string]string{"tlawm": "humble"}}
	svc := newTestService(provider)

	if _, err := svc.Translate(context.Background(), "Tlawm", MizoToEnglish); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Translate(context.Background(), "  tlawm ", MizoToEnglish)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Cached {
		t.Fatal("case-folded repeat should hit the cache")
	}
	if result.Input != "tlawm" {
		t.Fatalf("input should be echoed trimmed, got %q", result.Input)
	}
	if provider.callCount() != 1 {
		t.Fatalf("provider called %d times, want 1", provider.callCount())
	}
}

func TestTranslateDirectionsHaveIndependentCaches(t *testing.T) {
	provider := &fakeProvider{responses: map[string]string{"thil": "thing"}}
	svc := newTestService(provider)

	if _, err := svc.Translate(context.Background(), "thil", MizoToEnglish); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Translate(context.Background(), "thil", EnglishToMizo); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.callCount() != 2 {
		t.Fatalf("provider called %d times, want 2 (one per direction)", provider.callCount())
	}
}

func TestTranslateFailureCachesNothing(t *testing.T) {
	provider := &fakeProvider{failAll: true}
	svc := newTestService(provider)

	if _, err := svc.Translate(context.Background(), "hello", EnglishToMizo); err == nil {
		t.Fatal("expected error from failing provider")
	}
	if got := svc.Cache().Size(EnglishToMizo); got != 0 {
		t.Fatalf("cache size after failure = %d, want 0", got)
	}

	// A later attempt goes upstream again; failures are never memoized.
	provider.failAll = false
	provider.responses = map[string]string{"hello": "chibai"}
	result, err := svc.Translate(context.Background(), "hello", EnglishToMizo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Cached {
		t.Fatal("recovered attempt should be a cache miss")
	}
	if provider.callCount() != 2 {
		t.Fatalf("provider called %d times, want 2", provider.callCount())
	}
}

func TestTranslateAfterClearGoesUpstreamAgain(t *testing.T) {
	provider := &fakeProvider{responses: map[string]string{"hello": "chibai"}}
	svc := newTestService(provider)

	if _, err := svc.Translate(context.Background(), "hello", EnglishToMizo); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.Cache().Clear()

	result, err := svc.Translate(context.Background(), "hello", EnglishToMizo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Cached {
		t.Fatal("post-clear call should miss the cache")
	}
	if provider.callCount() != 2 {
		t.Fatalf("provider called %d times, want 2", provider.callCount())
	}
}

func TestTranslateRejectsBlankInput(t *testing.T) {
	svc := newTestService(&fakeProvider{})
	if _, err := svc.Translate(context.Background(), "   ", EnglishToMizo); err == nil {
		t.Fatal("expected error for blank input")
	}
}

func TestConcurrentMissesShareOneUpstreamCall(t *testing.T) {
	provider := &fakeProvider{
		responses: map[string]string{"hello": "chibai"},
		block:     make(chan struct{}),
	}
	svc := newTestService(provider)

	const workers = 10
	var wg sync.WaitGroup
	results := make([]Result, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Translate(context.Background(), "hello", EnglishToMizo)
		}(i)
	}

	// Give every worker a chance to join the flight before releasing the
	// provider. Not strictly deterministic, but with the provider blocked no
	// worker can complete early, so at most one upstream call is possible.
	time.Sleep(50 * time.Millisecond)
	close(provider.block)
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: unexpected error: %v", i, errs[i])
		}
		if results[i].Output != "chibai" {
			t.Fatalf("worker %d: unexpected output %q", i, results[i].Output)
		}
	}
	if provider.callCount() != 1 {
		t.Fatalf("provider called %d times, want 1", provider.callCount())
	}
}
