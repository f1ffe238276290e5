package tabletop

import (
	"fmt"
	"strings"
)

// EditLogEntry is one recorded event in an editing session journal.
type EditLogEntry struct {
	Seq      int
	Map      string  // map ID, or "--" for table-level events
	Category string  // gesture, fog, pan, table
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width journal line.
//
//	[#042] dungeon    fog      commit        cover 9 cells
func (e EditLogEntry) String() string {
	return fmt.Sprintf("[#%03d] %-10s %-8s %-13s %s",
		e.Seq, e.Map, e.Category, e.Key, e.Value)
}

// EditLog collects structured events during an editing session. Nothing on
// screen reads it; it exists for tests and the fog-report tool, and is
// unbounded and machine-readable.
type EditLog struct {
	entries []EditLogEntry
	verbose bool
	nextSeq int
}

// NewEditLog creates an EditLog. If verbose is true, per-move pointer
// entries are also recorded (useful for replaying a gesture in detail).
func NewEditLog(verbose bool) *EditLog {
	return &EditLog{verbose: verbose}
}

// Add records a new entry and returns its sequence number.
func (el *EditLog) Add(mapID, category, key, value string, numVal float64) int {
	el.nextSeq++
	el.entries = append(el.entries, EditLogEntry{
		Seq:      el.nextSeq,
		Map:      mapID,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
	return el.nextSeq
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EditLog) AddVerbose(mapID, category, key, value string, numVal float64) {
	if !el.verbose {
		return
	}
	el.Add(mapID, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (el *EditLog) Entries() []EditLogEntry {
	return el.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EditLog) Filter(category, key string) []EditLogEntry {
	var out []EditLogEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterMap returns entries for a specific map ID.
func (el *EditLog) FilterMap(id string) []EditLogEntry {
	var out []EditLogEntry
	for _, e := range el.entries {
		if e.Map == id {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EditLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EditLog) LastOf(category, key string) (EditLogEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EditLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring. Empty fields match anything.
func (el *EditLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full journal as a single string for t.Log output.
func (el *EditLog) Format() string {
	var sb strings.Builder
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable digest of a table's fog state.
func (el *EditLog) Summary(t *Table) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary after %d events ---\n", el.nextSeq)
	for _, m := range t.Maps() {
		total := m.Grid.FogWidth * m.Grid.FogHeight
		revealed := m.Fog.CountRevealed(m.Grid.FogWidth, m.Grid.FogHeight)
		state := "untouched"
		if m.Fog != nil {
			state = fmt.Sprintf("v%d", m.FogVersion)
		}
		fmt.Fprintf(&sb, "%-10s %3dx%-3d revealed %d/%d  %s\n",
			m.ID, m.Grid.FogWidth, m.Grid.FogHeight, revealed, total, state)
	}
	commits := el.CountCategory("fog", "commit")
	cancels := el.CountCategory("gesture", "cancel")
	fmt.Fprintf(&sb, "Edits: %d committed  %d cancelled\n", commits, cancels)
	return sb.String()
}
