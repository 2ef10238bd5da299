// Package report renders the end-of-cycle status table.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"PoolSentinel/internal/model"
)

// Latest keeps the most recent reading per pair for status output.
type Latest struct {
	byKey map[string]model.Reading
}

func NewLatest() *Latest {
	return &Latest{byKey: make(map[string]model.Reading)}
}

func (l *Latest) Put(r model.Reading) {
	l.byKey[r.Pair.Key()] = r
}

// Readings returns the stored readings ordered by pair.
func (l *Latest) Readings() []model.Reading {
	out := lo.Values(l.byKey)
	sort.Slice(out, func(i, j int) bool { return out[i].Pair.Key() < out[j].Pair.Key() })
	return out
}

// RenderTable writes one row per reading.
func RenderTable(w io.Writer, readings []model.Reading) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pair", "Price (USD)", "RSI", "State"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	for _, r := range readings {
		state := "ok"
		if r.Oversold {
			state = "OVERSOLD"
		}
		table.Append([]string{
			r.Pair.Short(),
			fmt.Sprintf("%.8g", r.Price),
			fmt.Sprintf("%.2f", r.RSI),
			state,
		})
	}

	oversold := lo.CountBy(readings, func(r model.Reading) bool { return r.Oversold })
	table.SetFooter([]string{"TOTAL", fmt.Sprintf("%d", len(readings)), "", fmt.Sprintf("%d oversold", oversold)})
	table.Render()
}
