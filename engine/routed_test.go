package engine

import (
	"context"
	"testing"
	"time"
)

type namedEngine struct {
	name  string
	calls int
}

func (e *namedEngine) Name() string { return e.name }

func (e *namedEngine) Fetch(_ context.Context, _ *FetchRequest) (*Response, error) {
	e.calls++
	return &Response{Body: "<html></html>", StatusCode: 200, EngineName: e.name}, nil
}

func TestRoutedEngine(t *testing.T) {
	plain := &namedEngine{name: "http"}
	render := &namedEngine{name: "browser"}
	mem := NewRenderMemory(time.Hour)
	defer mem.Stop()
	e := NewRoutedEngine(plain, render, mem)

	ctx := context.Background()
	e.Fetch(ctx, &FetchRequest{URL: "https://a.example/1"})
	e.Fetch(ctx, &FetchRequest{URL: "https://a.example/1", Render: true})
	if plain.calls != 1 || render.calls != 1 {
		t.Fatalf("routing by render flag: plain=%d render=%d", plain.calls, render.calls)
	}

	e.LearnRender("https://A.example/other")
	e.Fetch(ctx, &FetchRequest{URL: "https://a.example/2"})
	if render.calls != 2 {
		t.Error("remembered host should be routed to the rendering engine")
	}
	e.Fetch(ctx, &FetchRequest{URL: "https://b.example/2"})
	if plain.calls != 2 {
		t.Error("other hosts should stay on the plain engine")
	}
}

func TestRenderMemory_Expiry(t *testing.T) {
	mem := NewRenderMemory(-time.Second)
	defer mem.Stop()
	mem.Remember("https://a.example/x")
	if mem.NeedsRender("https://a.example/y") {
		t.Error("expired entry should not be reported")
	}
}
