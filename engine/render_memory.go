package engine

import (
	"net/url"
	"strings"
	"sync"
	"time"
)

// RenderMemory remembers hosts whose plain responses were challenge pages,
// so later requests to them go straight to a rendering engine. Entries
// expire after the configured TTL and are swept periodically.
type RenderMemory struct {
	hosts    sync.Map // host (string) -> expiry (time.Time)
	ttl      time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// NewRenderMemory creates a RenderMemory and starts its sweeper.
func NewRenderMemory(ttl time.Duration) *RenderMemory {
	m := &RenderMemory{ttl: ttl, done: make(chan struct{})}
	go m.sweepLoop()
	return m
}

// NeedsRender reports whether rawURL's host was recently seen behind a
// challenge.
func (m *RenderMemory) NeedsRender(rawURL string) bool {
	host := hostOf(rawURL)
	val, ok := m.hosts.Load(host)
	if !ok {
		return false
	}
	if time.Now().After(val.(time.Time)) {
		m.hosts.Delete(host)
		return false
	}
	return true
}

// Remember marks rawURL's host as needing rendering.
func (m *RenderMemory) Remember(rawURL string) {
	if host := hostOf(rawURL); host != "" {
		m.hosts.Store(host, time.Now().Add(m.ttl))
	}
}

// Stop terminates the sweeper.
func (m *RenderMemory) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
}

func (m *RenderMemory) sweepLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			now := time.Now()
			m.hosts.Range(func(key, value any) bool {
				if now.After(value.(time.Time)) {
					m.hosts.Delete(key)
				}
				return true
			})
		}
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
