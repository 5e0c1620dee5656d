// Package metrics provides observability for the simulation server.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers performance and gameplay counters.
type Collector struct {
	// Tick metrics
	TickCount      int64
	TickLatencySum int64 // nanoseconds
	TickLatencyMax int64
	LastTickTime   time.Time

	// Simulation metrics
	WorldEventsFired int64
	PassersbySpawned int64
	Interactions     int64

	// Journal metrics
	JournalWrites int64
	JournalErrors int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64
	WSErrors            int64

	// System
	StartTime time.Time
	mu        sync.RWMutex
}

// Global collector instance
var collector = New()

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// New returns an empty collector; tests use their own.
func New() *Collector {
	return &Collector{StartTime: time.Now()}
}

// RecordTick records a tick cycle completion.
func (c *Collector) RecordTick(latency time.Duration) {
	atomic.AddInt64(&c.TickCount, 1)
	atomic.AddInt64(&c.TickLatencySum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.TickLatencyMax) {
		atomic.StoreInt64(&c.TickLatencyMax, int64(latency))
	}

	c.mu.Lock()
	c.LastTickTime = time.Now()
	c.mu.Unlock()
}

// RecordWorldEvent counts a fired road event.
func (c *Collector) RecordWorldEvent() {
	atomic.AddInt64(&c.WorldEventsFired, 1)
}

// RecordPasserbySpawn counts a new passerby.
func (c *Collector) RecordPasserbySpawn() {
	atomic.AddInt64(&c.PassersbySpawned, 1)
}

// RecordInteraction counts a talk, attack or invite.
func (c *Collector) RecordInteraction() {
	atomic.AddInt64(&c.Interactions, 1)
}

// RecordJournalWrite records a journal append outcome.
func (c *Collector) RecordJournalWrite(err error) {
	atomic.AddInt64(&c.JournalWrites, 1)
	if err != nil {
		atomic.AddInt64(&c.JournalErrors, 1)
	}
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records WebSocket messages.
func (c *Collector) RecordWSMessage(incoming bool) {
	if incoming {
		atomic.AddInt64(&c.WSMessagesIn, 1)
	} else {
		atomic.AddInt64(&c.WSMessagesOut, 1)
	}
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tickCount := atomic.LoadInt64(&c.TickCount)

	var tickAvg float64
	if tickCount > 0 {
		tickAvg = float64(atomic.LoadInt64(&c.TickLatencySum)) / float64(tickCount) / 1e6 // ms
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"tick": map[string]interface{}{
			"count":          tickCount,
			"avg_latency_ms": tickAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.TickLatencyMax)) / 1e6,
			"last_tick":      c.LastTickTime.Format(time.RFC3339),
		},

		"simulation": map[string]interface{}{
			"world_events_fired": atomic.LoadInt64(&c.WorldEventsFired),
			"passersby_spawned":  atomic.LoadInt64(&c.PassersbySpawned),
			"interactions":       atomic.LoadInt64(&c.Interactions),
		},

		"journal": map[string]interface{}{
			"writes": atomic.LoadInt64(&c.JournalWrites),
			"errors": atomic.LoadInt64(&c.JournalErrors),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_in":        atomic.LoadInt64(&c.WSMessagesIn),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (c *Collector) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		json.NewEncoder(w).Encode(c.Snapshot())
	}
}

// PrometheusHandler returns metrics in Prometheus format.
func (c *Collector) PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		counter := func(name, help string, v int64) {
			fmt.Fprintf(w, "# HELP %s %s\n", name, help)
			fmt.Fprintf(w, "# TYPE %s counter\n", name)
			fmt.Fprintf(w, "%s %d\n\n", name, v)
		}

		counter("drift_tick_count", "Total tick cycles", atomic.LoadInt64(&c.TickCount))

		fmt.Fprintf(w, "# HELP drift_tick_latency_max_ms Maximum tick latency\n")
		fmt.Fprintf(w, "# TYPE drift_tick_latency_max_ms gauge\n")
		fmt.Fprintf(w, "drift_tick_latency_max_ms %.2f\n\n", float64(atomic.LoadInt64(&c.TickLatencyMax))/1e6)

		counter("drift_world_events_fired", "Road events fired", atomic.LoadInt64(&c.WorldEventsFired))
		counter("drift_passersby_spawned", "Passersby spawned", atomic.LoadInt64(&c.PassersbySpawned))
		counter("drift_interactions", "Passerby interactions", atomic.LoadInt64(&c.Interactions))
		counter("drift_journal_writes", "Journal appends", atomic.LoadInt64(&c.JournalWrites))
		counter("drift_journal_errors", "Failed journal appends", atomic.LoadInt64(&c.JournalErrors))

		fmt.Fprintf(w, "# HELP drift_ws_connections Active WebSocket connections\n")
		fmt.Fprintf(w, "# TYPE drift_ws_connections gauge\n")
		fmt.Fprintf(w, "drift_ws_connections %d\n\n", atomic.LoadInt64(&c.WSConnectionsActive))

		fmt.Fprintf(w, "# HELP drift_ws_messages_total Total WebSocket messages\n")
		fmt.Fprintf(w, "# TYPE drift_ws_messages_total counter\n")
		fmt.Fprintf(w, "drift_ws_messages_total{direction=\"in\"} %d\n", atomic.LoadInt64(&c.WSMessagesIn))
		fmt.Fprintf(w, "drift_ws_messages_total{direction=\"out\"} %d\n\n", atomic.LoadInt64(&c.WSMessagesOut))
	}
}
