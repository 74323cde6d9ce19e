package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/surejsai/GenericProductFluxer/models"
)

const (
	challengePage = "<html><body><h1>Access Denied</h1></body></html>"
	cleanPage     = "<html><head><title>Wireless Mouse</title></head><body><h1>Wireless Mouse</h1></body></html>"
)

// scriptedEngine returns one canned reply per call and records requests.
type scriptedEngine struct {
	replies []reply
	calls   []FetchRequest
	learned []string
}

type reply struct {
	resp *Response
	err  error
}

func (e *scriptedEngine) Name() string { return "scripted" }

func (e *scriptedEngine) Fetch(_ context.Context, req *FetchRequest) (*Response, error) {
	e.calls = append(e.calls, *req)
	r := e.replies[len(e.calls)-1]
	return r.resp, r.err
}

func (e *scriptedEngine) LearnRender(rawURL string) {
	e.learned = append(e.learned, rawURL)
}

func ok(body string, rendered bool) reply {
	return reply{resp: &Response{Body: body, StatusCode: 200, Rendered: rendered}}
}

func testConfig(retry bool) models.ExtractionConfig {
	cfg := models.DefaultExtractionConfig()
	cfg.AutoRetryWithRender = retry
	cfg.Timeout = time.Second
	return cfg
}

func TestFetcher_Clean(t *testing.T) {
	eng := &scriptedEngine{replies: []reply{ok(cleanPage, false)}}
	res, err := NewFetcher(eng, testConfig(true)).Fetch(context.Background(), "https://shop.example/p")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if res.IsChallenge || res.Attempts != 1 || res.HTML != cleanPage {
		t.Errorf("unexpected result: %+v", res)
	}
	if eng.calls[0].Render {
		t.Error("first attempt should not render by default")
	}
	if eng.calls[0].DeviceType != "desktop" || eng.calls[0].MaxCost != "10" {
		t.Errorf("request not built from config: %+v", eng.calls[0])
	}
}

func TestFetcher_ChallengeWithoutRetry(t *testing.T) {
	eng := &scriptedEngine{replies: []reply{ok(challengePage, false)}}
	res, err := NewFetcher(eng, testConfig(false)).Fetch(context.Background(), "https://shop.example/p")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if !res.IsChallenge {
		t.Error("challenge should be reported as blocked")
	}
	if len(eng.calls) != 1 {
		t.Errorf("calls = %d, want 1", len(eng.calls))
	}
}

func TestFetcher_ChallengeRetrySucceeds(t *testing.T) {
	eng := &scriptedEngine{replies: []reply{ok(challengePage, false), ok(cleanPage, true)}}
	res, err := NewFetcher(eng, testConfig(true)).Fetch(context.Background(), "https://shop.example/p")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if res.IsChallenge || res.HTML != cleanPage || res.Attempts != 2 {
		t.Errorf("unexpected result: %+v", res)
	}
	if !eng.calls[1].Render {
		t.Error("retry must force rendering")
	}
	if len(eng.learned) != 1 {
		t.Errorf("host should be remembered after a successful render retry, learned %v", eng.learned)
	}
}

func TestFetcher_ChallengePersists(t *testing.T) {
	eng := &scriptedEngine{replies: []reply{ok(challengePage, false), ok(challengePage, true)}}
	res, err := NewFetcher(eng, testConfig(true)).Fetch(context.Background(), "https://shop.example/p")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if !res.IsChallenge || len(eng.calls) != 2 {
		t.Errorf("want blocked after exactly two calls, got %+v after %d", res, len(eng.calls))
	}
	if len(eng.learned) != 0 {
		t.Error("nothing should be learned from a failed retry")
	}
}

func TestFetcher_RetryFetchFails(t *testing.T) {
	eng := &scriptedEngine{replies: []reply{ok(challengePage, false), {err: errors.New("timeout")}}}
	res, err := NewFetcher(eng, testConfig(true)).Fetch(context.Background(), "https://shop.example/p")
	if err != nil {
		t.Fatalf("a failed retry should report blocked, got error %v", err)
	}
	if !res.IsChallenge || res.Attempts != 2 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestFetcher_NoRetryWhenAlreadyRendered(t *testing.T) {
	cfg := testConfig(true)
	cfg.RenderJS = true
	eng := &scriptedEngine{replies: []reply{ok(challengePage, true)}}
	res, err := NewFetcher(eng, cfg).Fetch(context.Background(), "https://shop.example/p")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if !res.IsChallenge || len(eng.calls) != 1 {
		t.Errorf("rendered first attempt must not retry: %+v, calls %d", res, len(eng.calls))
	}
}

func TestFetcher_Failures(t *testing.T) {
	tests := []struct {
		name  string
		reply reply
	}{
		{"engine error", reply{err: errors.New("dial tcp: refused")}},
		{"non-200", reply{resp: &Response{Body: "<html>gone</html>", StatusCode: 404}}},
		{"empty body", reply{resp: &Response{Body: "", StatusCode: 200}}},
		{"whitespace body", reply{resp: &Response{Body: "  \n ", StatusCode: 200}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := &scriptedEngine{replies: []reply{tt.reply}}
			_, err := NewFetcher(eng, testConfig(true)).Fetch(context.Background(), "https://shop.example/p")
			var ee *models.ExtractError
			if !errors.As(err, &ee) || ee.Code != models.ErrCodeFetchFailed {
				t.Fatalf("want FETCH_FAILED, got %v", err)
			}
			if len(eng.calls) != 1 {
				t.Errorf("fetch failures must not retry, calls = %d", len(eng.calls))
			}
		})
	}
}
