package scoring

import (
	"sort"
	"time"

	"github.com/rama-judicial/escalafon/internal/calendar"
	"github.com/rama-judicial/escalafon/internal/records"
)

// ConsolidatedCategory labels rows produced by consolidation.
const ConsolidatedCategory = "Consolidated"

// ConsolidatedRecord is the merge of every statistics row sharing a
// reporting window start, with the window's business days attached.
type ConsolidatedRecord struct {
	Category         string    `json:"category"`
	From             time.Time `json:"from"`
	To               time.Time `json:"to"`
	LaborDays        int       `json:"labor_days"`
	InitialInventory int       `json:"initial_inventory"`
	Income           int       `json:"income"`
	EffectiveLoad    int       `json:"effective_load"`
	Outflow          int       `json:"outflow"`
	Settlements      int       `json:"settlements"`
	FinalInventory   int       `json:"final_inventory"`
	Remaining        int       `json:"remaining"`
}

// Consolidate merges statistics rows by window start. Each group's window
// extends to the latest To among its rows, numeric fields are summed, and
// business days are counted against the office calendar. Results are
// ordered by window start.
func Consolidate(set calendar.NonWorkingSet, recs []records.Record) ([]ConsolidatedRecord, error) {
	groups := make(map[time.Time]*ConsolidatedRecord)

	for _, r := range recs {
		from := dateOnly(r.From)

		g, ok := groups[from]
		if !ok {
			g = &ConsolidatedRecord{
				Category: ConsolidatedCategory,
				From:     from,
				To:       dateOnly(r.To),
			}
			groups[from] = g
		}

		if to := dateOnly(r.To); to.After(g.To) {
			g.To = to
		}

		g.InitialInventory += r.InitialInventory
		g.Income += r.Income
		g.EffectiveLoad += r.EffectiveLoad
		g.Outflow += r.Outflow
		g.Settlements += r.Settlements
		g.FinalInventory += r.FinalInventory
		g.Remaining += r.Remaining
	}

	out := make([]ConsolidatedRecord, 0, len(groups))
	for _, g := range groups {
		days, err := calendar.CountBusinessDays(set, g.From, g.To)
		if err != nil {
			return nil, err
		}
		g.LaborDays = days
		out = append(out, *g)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].From.Before(out[j].From)
	})

	return out, nil
}

func dateOnly(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
