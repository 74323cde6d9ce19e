package engine

import "context"

// RoutedEngine sends plain requests to one engine and rendering requests to
// another. Hosts remembered as needing rendering always take the rendering
// path.
type RoutedEngine struct {
	plain  Engine
	render Engine
	memory *RenderMemory
}

// NewRoutedEngine creates a RoutedEngine. memory may be nil.
func NewRoutedEngine(plain, render Engine, memory *RenderMemory) *RoutedEngine {
	return &RoutedEngine{plain: plain, render: render, memory: memory}
}

func (e *RoutedEngine) Name() string { return e.plain.Name() + "+" + e.render.Name() }

func (e *RoutedEngine) Fetch(ctx context.Context, req *FetchRequest) (*Response, error) {
	if req.Render || (e.memory != nil && e.memory.NeedsRender(req.URL)) {
		return e.render.Fetch(ctx, req)
	}
	return e.plain.Fetch(ctx, req)
}

// LearnRender records that rawURL's host served a challenge to the plain
// engine but not to the rendering one.
func (e *RoutedEngine) LearnRender(rawURL string) {
	if e.memory != nil {
		e.memory.Remember(rawURL)
	}
}
