// Package projector turns a full in-memory snapshot of domain records into
// what a list view needs: the filtered, sorted subset to display plus
// aggregate statistics over the whole snapshot. It performs no I/O and holds
// no state; callers pass the snapshot, the current query, and the evaluation
// instant on every call.
package projector

import (
	"sort"
	"strings"
	"time"
)

// All is the wildcard value for the status and type filters.
const All = "all"

type SortMode int

const (
	// SortCreatedDesc orders newest first. Used for combined views.
	SortCreatedDesc SortMode = iota
	// SortDueDateAsc orders by due date, soonest first. Used for payment
	// views; records without a due date sink to the end.
	SortDueDateAsc
)

// Record is what the projector needs from a domain entity. Amounts returns
// the record's monetary contributions to the stats map, keyed by stat name.
type Record interface {
	Kind() string
	EffectiveStatus(now time.Time) string
	SearchFields() []string
	CreatedTime() time.Time
	DueTime() (time.Time, bool)
	Amounts() map[string]float64
}

type Query struct {
	Text   string
	Status string
	Type   string
	Sort   SortMode
}

type Result struct {
	Visible []Record
	Stats   map[string]float64
}

// Project filters and sorts records for display and aggregates statistics.
//
// The type filter narrows both the visible set and the stats; the text and
// status filters narrow only the visible set, so statistics always reflect
// the full sub-collection rather than whatever happens to be on screen.
// Effective statuses are derived against now on every call.
func Project(records []Record, q Query, now time.Time) Result {
	base := records
	if q.Type != "" && q.Type != All {
		base = make([]Record, 0, len(records))
		for _, r := range records {
			if r.Kind() == q.Type {
				base = append(base, r)
			}
		}
	}

	stats := aggregate(base, now)

	visible := make([]Record, 0, len(base))
	for _, r := range base {
		if !matchesText(r, q.Text) {
			continue
		}
		if q.Status != "" && q.Status != All && r.EffectiveStatus(now) != q.Status {
			continue
		}
		visible = append(visible, r)
	}

	sortRecords(visible, q.Sort)

	return Result{Visible: visible, Stats: stats}
}

func matchesText(r Record, text string) bool {
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	for _, field := range r.SearchFields() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// aggregate makes a single pass over the records, counting per effective
// status bucket and summing each record's monetary fields.
func aggregate(records []Record, now time.Time) map[string]float64 {
	stats := make(map[string]float64)
	for _, r := range records {
		stats[r.EffectiveStatus(now)]++
		for key, amount := range r.Amounts() {
			stats[key] += amount
		}
	}
	return stats
}

func sortRecords(records []Record, mode SortMode) {
	switch mode {
	case SortDueDateAsc:
		sort.SliceStable(records, func(i, j int) bool {
			di, iOK := records[i].DueTime()
			dj, jOK := records[j].DueTime()
			if iOK != jOK {
				return iOK
			}
			if !iOK {
				return false
			}
			return di.Before(dj)
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].CreatedTime().After(records[j].CreatedTime())
		})
	}
}
