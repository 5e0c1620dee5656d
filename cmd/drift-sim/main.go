// Package main - drift-sim
// Headless runner: plays a seeded game on a simulated clock and prints the
// narration, so tuning changes can be compared run against run.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MRamiBalles/Drifting/server/internal/engine"
	"github.com/MRamiBalles/Drifting/server/internal/infra/storage"
	"github.com/MRamiBalles/Drifting/server/internal/platform/clock"
	"github.com/MRamiBalles/Drifting/server/internal/platform/config"
	"github.com/MRamiBalles/Drifting/server/internal/platform/logger"
	"github.com/MRamiBalles/Drifting/server/internal/platform/metrics"
	"github.com/MRamiBalles/Drifting/server/internal/platform/random"
)

func main() {
	ticks := flag.Int("ticks", 200, "Number of ticks to simulate")
	seed := flag.Int64("seed", 42, "Random seed")
	journal := flag.String("journal", "", "Optional SQLite journal path")
	quiet := flag.Bool("quiet", false, "Only print the summary")
	flag.Parse()

	if err := run(*ticks, *seed, *journal, *quiet); err != nil {
		fmt.Fprintln(os.Stderr, "drift-sim:", err)
		os.Exit(1)
	}
}

func run(ticks int, seed int64, journalPath string, quiet bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Seed = seed

	start := time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC)
	clk := clock.NewManual(start)
	rng := random.New(seed)
	collector := metrics.New()

	deps := engine.Deps{
		Clock:   clk,
		Random:  rng,
		Logger:  logger.NewDiscard(),
		Metrics: collector,
	}
	if journalPath != "" {
		db, err := storage.InitSQLite(journalPath)
		if err != nil {
			return err
		}
		defer db.Close()
		deps.Persister = storage.NewJournalPersister(storage.NewSQLiteJournalRepository(db), cfg.GameID, collector)
	}

	eng, err := engine.NewEngine(cfg, deps)
	if err != nil {
		return err
	}
	st := eng.NewState(cfg.PlayerName)

	printed := 0
	flush := func() {
		for _, ev := range st.Log.Since(printed) {
			if !quiet {
				fmt.Printf("[day %d %02d:00] %s\n", st.Day(), st.Hour(), ev.Message)
			}
		}
		printed = st.Log.Len()
	}

	for i := 0; i < ticks; i++ {
		autopilot(eng, st, rng)
		clk.Advance(cfg.TickInterval)
		eng.Tick(st)
		flush()
	}

	snap := eng.Snapshot(st)
	fmt.Println("=========================================")
	fmt.Printf("Ticks:        %s (%s simulated)\n", humanize.Comma(int64(ticks)), clk.Now().Sub(start))
	fmt.Printf("Game time:    day %d, %02d:00\n", snap.Day, snap.Hour)
	fmt.Printf("Location:     %s\n", snap.Location)
	fmt.Printf("Distance:     %s units\n", humanize.Commaf(float64(int64(snap.Distance))))
	fmt.Printf("Party:        %d/%d\n", len(snap.Team), cfg.TeamCapacity)
	fmt.Printf("Road events:  %d\n", collector.WorldEventsFired)
	fmt.Printf("Passersby:    %d met\n", collector.PassersbySpawned)
	fmt.Printf("Avg vitals:   satiety %.1f, hydration %.1f, stamina %.1f, mood %.1f\n",
		snap.Stats.AverageSatiety, snap.Stats.AverageHydration, snap.Stats.AverageStamina, snap.Stats.AverageMood)
	for _, it := range snap.Items {
		fmt.Printf("  %-8s %d\n", it.Type, it.Quantity)
	}
	return nil
}

// autopilot recruits passersby while there is room, rests when the party is
// exhausted and otherwise keeps moving to a random neighbor.
func autopilot(eng *engine.Engine, st *engine.State, rng random.Source) {
	ids := make([]string, len(st.Passersby))
	for i, p := range st.Passersby {
		ids[i] = p.Character.ID
	}
	for _, id := range ids {
		if st.Team.IsFull() {
			break
		}
		eng.Interact(st, engine.ActionInvite, id)
	}

	stats := st.Team.Stats()
	switch {
	case st.Team.Traveling && stats.AverageStamina < 30:
		eng.ToggleTravel(st)
	case !st.Team.Traveling && stats.AverageStamina < 90:
		// keep resting
	case st.Team.Destination != "":
		if !st.Team.Traveling {
			eng.ToggleTravel(st)
		}
	default:
		neighbors := eng.Map().NeighborsOf(st.Team.Location)
		if len(neighbors) > 0 {
			eng.TravelTo(st, random.Pick(rng, neighbors))
		}
	}
}
