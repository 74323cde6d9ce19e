package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProxyEngine_Params(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{}
		for k := range q {
			got[k] = q.Get(k)
		}
		w.Header().Set("x-scraper-cost", "5")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	e := NewProxyEngine(srv.URL+"/", "secret", srv.Client())
	resp, err := e.Fetch(context.Background(), &FetchRequest{
		URL:        "https://shop.example/p?id=1",
		DeviceType: "mobile",
		Render:     true,
		MaxCost:    "10",
	})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if !resp.OK() || !resp.Rendered || resp.Body != "<html>ok</html>" {
		t.Errorf("unexpected response: %+v", resp)
	}

	want := map[string]string{
		"api_key":     "secret",
		"url":         "https://shop.example/p?id=1",
		"device_type": "mobile",
		"render":      "true",
		"max_cost":    "10",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("param %s = %q, want %q", k, got[k], v)
		}
	}
}

func TestProxyEngine_UnlimitedCostOmitted(t *testing.T) {
	for _, cost := range []string{"", "0", "unlimited", "None"} {
		var present bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, present = r.URL.Query()["max_cost"]
			w.Write([]byte("<html></html>"))
		}))
		e := NewProxyEngine(srv.URL, "k", srv.Client())
		if _, err := e.Fetch(context.Background(), &FetchRequest{URL: "https://a.example", MaxCost: cost}); err != nil {
			t.Fatalf("Fetch error: %v", err)
		}
		srv.Close()
		if present {
			t.Errorf("max_cost %q should be omitted", cost)
		}
	}
}

func TestProxyEngine_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	resp, err := NewProxyEngine(srv.URL, "k", srv.Client()).Fetch(context.Background(), &FetchRequest{URL: "https://a.example"})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if resp.OK() {
		t.Error("403 response should not be OK")
	}
}
