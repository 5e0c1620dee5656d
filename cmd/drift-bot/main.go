// Package main - drift-bot
// Load generator: concurrent WebSocket clients that read the broadcast
// state and answer it with plausible commands.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/websocket"

	"github.com/MRamiBalles/Drifting/server/internal/engine"
	"github.com/MRamiBalles/Drifting/server/internal/network"
	"github.com/MRamiBalles/Drifting/server/internal/platform/random"
)

// Config for the bot run
type Config struct {
	ServerURL      string
	NumClients     int
	ActionInterval time.Duration
	TestDuration   time.Duration
	Seed           int64
}

// Stats tracks performance metrics
type Stats struct {
	MessagesSent     int64
	MessagesReceived int64
	Errors           int64
	Latencies        []time.Duration
	mu               sync.Mutex
}

func main() {
	// Parse flags
	serverURL := flag.String("url", "ws://localhost:8080/ws", "WebSocket server URL")
	numClients := flag.Int("clients", 5, "Number of concurrent clients")
	interval := flag.Duration("interval", 500*time.Millisecond, "Action interval per client")
	duration := flag.Duration("duration", 30*time.Second, "Run duration")
	seed := flag.Int64("seed", 0, "Random seed (0 picks one)")
	flag.Parse()

	config := Config{
		ServerURL:      *serverURL,
		NumClients:     *numClients,
		ActionInterval: *interval,
		TestDuration:   *duration,
		Seed:           *seed,
	}
	if config.Seed == 0 {
		s, err := random.NewSeed()
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		config.Seed = s
	}

	fmt.Println("=========================================")
	fmt.Println("DRIFT-BOT")
	fmt.Println("=========================================")
	fmt.Printf("Server:   %s\n", config.ServerURL)
	fmt.Printf("Clients:  %d\n", config.NumClients)
	fmt.Printf("Interval: %v\n", config.ActionInterval)
	fmt.Printf("Duration: %v\n", config.TestDuration)
	fmt.Println("=========================================")

	// Setup graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), config.TestDuration)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupt received, stopping...")
		cancel()
	}()

	stats := runBots(ctx, config)
	printResults(stats, config)
}

func runBots(ctx context.Context, config Config) *Stats {
	stats := &Stats{
		Latencies: make([]time.Duration, 0, 10000),
	}

	var wg sync.WaitGroup
	for i := 0; i < config.NumClients; i++ {
		wg.Add(1)
		go func(clientID int) {
			defer wg.Done()
			runClient(ctx, clientID, config, stats)
		}(i)

		// Stagger client starts to avoid thundering herd
		time.Sleep(10 * time.Millisecond)
	}

	wg.Wait()
	return stats
}

// latest holds the last state a client saw.
type latest struct {
	mu   sync.Mutex
	snap engine.Snapshot
	ok   bool
}

func (l *latest) set(s engine.Snapshot) {
	l.mu.Lock()
	l.snap, l.ok = s, true
	l.mu.Unlock()
}

func (l *latest) get() (engine.Snapshot, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap, l.ok
}

func runClient(ctx context.Context, clientID int, config Config, stats *Stats) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, config.ServerURL, nil)
	if err != nil {
		log.Printf("Client %d: Connection failed: %v", clientID, err)
		atomic.AddInt64(&stats.Errors, 1)
		return
	}
	defer conn.Close()

	state := &latest{}

	// Start receiver goroutine
	go func() {
		for {
			var msg struct {
				Type    network.MessageType `json:"type"`
				Payload json.RawMessage     `json:"payload"`
			}
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			atomic.AddInt64(&stats.MessagesReceived, 1)
			if msg.Type != network.MsgTypeState {
				continue
			}
			var snap engine.Snapshot
			if err := json.Unmarshal(msg.Payload, &snap); err == nil {
				state.set(snap)
			}
		}
	}()

	rng := random.New(config.Seed + int64(clientID))
	ticker := time.NewTicker(config.ActionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap, ok := state.get()
			if !ok {
				continue
			}
			action := chooseAction(snap, rng)
			start := time.Now()

			if err := conn.WriteJSON(action); err != nil {
				atomic.AddInt64(&stats.Errors, 1)
				return
			}

			latency := time.Since(start)
			atomic.AddInt64(&stats.MessagesSent, 1)

			stats.mu.Lock()
			stats.Latencies = append(stats.Latencies, latency)
			stats.mu.Unlock()
		}
	}
}

// chooseAction answers the last seen state: deal with a passerby if one
// is around, otherwise travel, rest or pick someone.
func chooseAction(snap engine.Snapshot, rng random.Source) network.PlayerAction {
	if len(snap.Passersby) > 0 {
		p := random.Pick(rng, snap.Passersby)
		verb := random.Pick(rng, []string{"TALK", "ATTACK", "INVITE"})
		return network.PlayerAction{Type: verb, TargetID: p.Character.ID}
	}
	switch {
	case snap.Destination == "" && len(snap.Neighbors) > 0 && rng.Float64() < 0.5:
		return network.PlayerAction{Type: "TRAVEL_TO", City: random.Pick(rng, snap.Neighbors)}
	case len(snap.Team) > 0 && rng.Float64() < 0.3:
		return network.PlayerAction{Type: "SELECT", TargetID: random.Pick(rng, snap.Team).ID}
	default:
		return network.PlayerAction{Type: "TOGGLE_TRAVEL"}
	}
}

func printResults(stats *Stats, config Config) {
	fmt.Println("\n=========================================")
	fmt.Println("RESULTS")
	fmt.Println("=========================================")

	sent := atomic.LoadInt64(&stats.MessagesSent)
	recv := atomic.LoadInt64(&stats.MessagesReceived)
	errs := atomic.LoadInt64(&stats.Errors)

	fmt.Printf("Messages Sent:     %s\n", humanize.Comma(sent))
	fmt.Printf("Messages Received: %s\n", humanize.Comma(recv))
	fmt.Printf("Errors:            %d\n", errs)
	fmt.Printf("Error Rate:        %.2f%%\n", float64(errs)/float64(sent+1)*100)
	fmt.Printf("Throughput:        %.2f msg/sec\n", float64(sent)/config.TestDuration.Seconds())

	// Latency stats
	if len(stats.Latencies) > 0 {
		var total time.Duration
		min, max := stats.Latencies[0], stats.Latencies[0]
		for _, l := range stats.Latencies {
			total += l
			if l < min {
				min = l
			}
			if l > max {
				max = l
			}
		}

		fmt.Printf("\nWrite latency:\n")
		fmt.Printf("  Min: %v\n", min)
		fmt.Printf("  Avg: %v\n", total/time.Duration(len(stats.Latencies)))
		fmt.Printf("  Max: %v\n", max)
	}
	fmt.Println("=========================================")
}
