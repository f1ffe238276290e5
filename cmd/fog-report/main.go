package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/darjr/tablefog/internal/tabletop"
)

type runStats struct {
	runIndex int
	seed     int64

	gestures int
	commits  int
	skips    int
	cancels  int
	misses   int
	autoPans int

	firstCommitSeq int
	coverage       map[string]float64
	mapOrder       []string
	editedMaps     map[string]struct{}
}

func main() {
	var runs int
	var edits int
	var seedBase int64
	var seedStep int64
	var showMaps bool

	flag.IntVar(&runs, "runs", 5, "number of headless editing sessions")
	flag.IntVar(&edits, "edits", 40, "fog gestures per session")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.BoolVar(&showMaps, "show-maps", false, "print the full coverage report after each run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if edits <= 0 {
		fmt.Println("error: -edits must be > 0")
		return
	}

	fmt.Printf("=== Tablefog Session Report ===\n")
	fmt.Printf("runs=%d edits=%d seed_base=%d seed_step=%d\n\n", runs, edits, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runSession(i+1, seed, edits, showMaps)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runSession(runIndex int, seed int64, edits int, showMaps bool) runStats {
	demo := tabletop.DemoTable(seed)
	maps := demo.Maps()

	opts := []tabletop.SimOption{
		tabletop.WithViewport(1280, 720),
	}
	for _, m := range maps {
		opts = append(opts, tabletop.WithMap(m))
	}
	sim := tabletop.NewEditorSim(opts...)

	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic session replay

	_, minZ, maxX, maxZ := sim.Table.Bounds()
	for i := 0; i < edits; i++ {
		m := maps[rng.Intn(len(maps))]

		// Frame the target map the way a GM would before editing it.
		sim.Camera.X = m.Position.X + (rng.Float64()-0.5)*2
		sim.Camera.Z = m.Position.Z + (rng.Float64()-0.5)*2
		sim.Camera.Zoom = 0.75 + rng.Float64()*0.5

		op := rollOp(rng)
		roll := rng.Float64()
		switch {
		case roll < 0.08:
			// Press on empty felt beyond the table bounds.
			sx, sy := sim.Camera.WorldToScreen(maxX+8+rng.Float64()*4, minZ+(maxZ-minZ)*rng.Float64())
			sim.PressAt(sx, sy)

		case roll < 0.16:
			// Zero-area click: snaps to the single cell under the pointer.
			sx, sy := screenPointOn(sim, m, rng)
			sim.PressAt(sx, sy)
			sim.Release()
			sim.Confirm(op)

		case roll < 0.26:
			// Change of heart after releasing.
			dragAcross(sim, m, rng)
			sim.CancelPending()

		case roll < 0.32 && strings.HasPrefix(m.ID, "side-"):
			// Map leaves the table while the confirm buttons are up.
			dragAcross(sim, m, rng)
			sim.RemoveMap(m.ID)
			sim.Confirm(op)

		case roll < 0.45:
			// Drag that hugs the viewport edge long enough to auto-pan.
			sx, sy := screenPointOn(sim, m, rng)
			sim.PressAt(sx, sy)
			sim.MoveTo(1280-8, sy)
			sim.Advance(time.Duration(200+rng.Intn(400)) * time.Millisecond)
			ex, ey := screenPointOn(sim, m, rng)
			sim.MoveTo(ex, ey)
			sim.Release()
			sim.Confirm(op)

		default:
			dragAcross(sim, m, rng)
			sim.Confirm(op)
		}
	}

	entries := sim.Log.Entries()
	rs := runStats{
		runIndex:       runIndex,
		seed:           seed,
		gestures:       sim.Log.CountCategory("gesture", "begin"),
		commits:        sim.Log.CountCategory("fog", "commit"),
		skips:          sim.Log.CountCategory("fog", "skipped"),
		cancels:        sim.Log.CountCategory("gesture", "cancel"),
		misses:         sim.Log.CountCategory("gesture", "miss"),
		autoPans:       sim.Log.CountCategory("pan", "auto"),
		firstCommitSeq: firstSeq(entries, "fog", "commit", ""),
		coverage:       map[string]float64{},
		editedMaps:     map[string]struct{}{},
	}
	for _, m := range maps {
		rs.mapOrder = append(rs.mapOrder, m.ID)
		rs.coverage[m.ID] = sim.CoverageOf(m.ID)
	}
	for _, e := range entries {
		if e.Category == "fog" && e.Key == "commit" {
			rs.editedMaps[e.Map] = struct{}{}
		}
	}

	if showMaps {
		fmt.Print(tabletop.FogReport(sim.Table))
	}
	return rs
}

// dragAcross runs press-move-release over a random sub-rectangle of m.
func dragAcross(sim *tabletop.EditorSim, m *tabletop.TableMap, rng *rand.Rand) {
	sx, sy := screenPointOn(sim, m, rng)
	ex, ey := screenPointOn(sim, m, rng)
	sim.PressAt(sx, sy)
	sim.MoveTo((sx+ex)/2, (sy+ey)/2)
	sim.MoveTo(ex, ey)
	sim.Release()
}

// screenPointOn projects a random interior point of m to screen coordinates.
func screenPointOn(sim *tabletop.EditorSim, m *tabletop.TableMap, rng *rand.Rand) (float64, float64) {
	hw := m.Grid.CellsWide() / 2
	hh := m.Grid.CellsHigh() / 2
	local := tabletop.Vec3{
		X: (rng.Float64()*2 - 1) * hw * 0.9,
		Z: (rng.Float64()*2 - 1) * hh * 0.9,
	}
	w := local.RotateY(m.Rotation.Y).Add(m.Position)
	return sim.Camera.WorldToScreen(w.X, w.Z)
}

func rollOp(rng *rand.Rand) tabletop.FogOp {
	r := rng.Float64()
	switch {
	case r < 0.45:
		return tabletop.FogCover
	case r < 0.90:
		return tabletop.FogReveal
	default:
		return tabletop.FogToggle
	}
}

func firstSeq(entries []tabletop.EditLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Seq
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("gesture_totals: begun=%d committed=%d skipped=%d cancelled=%d missed=%d auto_pans=%d\n",
		rs.gestures, rs.commits, rs.skips, rs.cancels, rs.misses, rs.autoPans)
	fmt.Printf("first_commit_seq=%d\n", rs.firstCommitSeq)

	parts := make([]string, 0, len(rs.mapOrder))
	for _, id := range rs.mapOrder {
		parts = append(parts, fmt.Sprintf("%s=%.0f%%", id, rs.coverage[id]*100))
	}
	fmt.Printf("coverage: %s\n", strings.Join(parts, " "))
	fmt.Printf("edited_maps: %s\n", joinSet(rs.editedMaps))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalGestures := 0
	totalCommits := 0
	totalSkips := 0
	totalCancels := 0
	totalMisses := 0
	totalPans := 0
	editedGlobal := map[string]struct{}{}
	covSums := map[string]float64{}
	covCounts := map[string]int{}

	for _, rs := range all {
		totalGestures += rs.gestures
		totalCommits += rs.commits
		totalSkips += rs.skips
		totalCancels += rs.cancels
		totalMisses += rs.misses
		totalPans += rs.autoPans
		for id := range rs.editedMaps {
			editedGlobal[id] = struct{}{}
		}
		for id, c := range rs.coverage {
			covSums[id] += c
			covCounts[id]++
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("avg_per_run: begun=%.1f committed=%.1f skipped=%.1f cancelled=%.1f missed=%.1f auto_pans=%.1f\n",
		avg(totalGestures, len(all)), avg(totalCommits, len(all)), avg(totalSkips, len(all)),
		avg(totalCancels, len(all)), avg(totalMisses, len(all)), avg(totalPans, len(all)))
	fmt.Printf("unique_edited_maps=%d [%s]\n", len(editedGlobal), joinSet(editedGlobal))

	ids := make([]string, 0, len(covSums))
	for id := range covSums {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s=%.0f%%", id, covSums[id]/float64(covCounts[id])*100))
	}
	fmt.Printf("avg_coverage: %s\n", strings.Join(parts, " "))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	ids := make([]string, 0, len(s))
	for k := range s {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}
