package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/kailas-cloud/partpilot/internal/domain/part"
	domsearch "github.com/kailas-cloud/partpilot/internal/domain/search"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	oemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
)

func renderOutcome(w io.Writer, res domsearch.Outcome) error {
	var b strings.Builder
	if res.FromCache {
		b.WriteString(noticeStyle.Render("Offline: showing cached results") + "\n\n")
	}
	if len(res.Results) == 0 {
		fmt.Fprintf(&b, "No parts found for %q.\n", res.Query)
		_, err := io.WriteString(w, b.String())
		return err
	}

	for i := range res.Results {
		writePart(&b, &res.Results[i])
	}
	fmt.Fprintf(&b, "%d parts, %s total MSRP\n", len(res.Results), money(part.SumPrices(res.Results)))

	_, err := io.WriteString(w, b.String())
	return err
}

func writePart(b *strings.Builder, p *part.Part) {
	b.WriteString(titleStyle.Render(p.Name))
	if p.OEMPartNumber != "" {
		b.WriteString("  " + oemStyle.Render(p.OEMPartNumber))
	}
	if price, ok := p.MSRPPrice.Get(); ok {
		b.WriteString("  " + money(price))
	}
	b.WriteString("\n")

	var meta []string
	if p.Manufacturer != "" {
		meta = append(meta, p.Manufacturer)
	}
	if p.IsGenuineOEM {
		meta = append(meta, "genuine OEM")
	}
	if p.Difficulty != "" {
		meta = append(meta, "difficulty: "+p.Difficulty)
	}
	if p.EstimatedTime != "" {
		meta = append(meta, p.EstimatedTime)
	}
	if len(meta) > 0 {
		b.WriteString("  " + mutedStyle.Render(strings.Join(meta, " · ")) + "\n")
	}
	if p.Description != "" {
		b.WriteString("  " + p.Description + "\n")
	}
	if note, ok := p.FitmentNote.Get(); ok && note != "" {
		b.WriteString("  Fitment: " + note + "\n")
	}
	if s, ok := p.Supersession.Get(); ok {
		b.WriteString("  Superseded by " + s.NewPartNumber)
		if s.Reason != "" {
			b.WriteString(" (" + s.Reason + ")")
		}
		b.WriteString("\n")
	}
	for _, l := range p.PurchaseLinks {
		fmt.Fprintf(b, "  %s: %s\n", l.Store, l.URL)
	}
	b.WriteString("\n")
}

func renderCache(w io.Writer, entries []domsearch.CachedEntry, now time.Time) error {
	if len(entries) == 0 {
		_, err := io.WriteString(w, "No cached searches.\n")
		return err
	}

	var b strings.Builder
	for _, e := range entries {
		at := time.UnixMilli(e.Timestamp)
		fmt.Fprintf(&b, "%s  %s  %s\n",
			titleStyle.Render(e.Query),
			mutedStyle.Render(fmt.Sprintf("%d parts", len(e.Results))),
			mutedStyle.Render(humanize.RelTime(at, now, "ago", "from now")),
		)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}
