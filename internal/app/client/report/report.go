// Package report renders log summaries and exports for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"weightloss/internal/domain/logbook"
)

const barWidth = 24

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Width(10)
	valueStyle  = lipgloss.NewStyle().Width(18).Align(lipgloss.Right)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle = map[logbook.Status]lipgloss.Style{
		logbook.StatusBelow:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		logbook.StatusWithin: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		logbook.StatusAbove:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// Bar draws v on a scale where the target maximum fills the bar.
func Bar(p logbook.Progress) string {
	filled := 0
	if p.Target.Max > 0 {
		filled = int(math.Round(p.Value / p.Target.Max * barWidth))
	}
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	return statusStyle[p.Status].Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

// Day renders one day's totals against targets.
func Day(d logbook.DaySummary, t logbook.Targets) string {
	rows := []string{titleStyle.Render(fmt.Sprintf("%s · записей: %d", d.Date, d.Entries))}

	for _, p := range d.Against(t) {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(p.Nutrient),
			Bar(p),
			valueStyle.Render(fmt.Sprintf("%.0f / %.0f-%.0f", p.Value, p.Target.Min, p.Target.Max)),
			" "+statusStyle[p.Status].Render(string(p.Status)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Week renders the daily calories of w and its averages.
func Week(w logbook.WeekSummary, t logbook.Targets) string {
	rows := []string{titleStyle.Render(fmt.Sprintf("%s .. %s", w.Start, w.End))}

	for _, d := range w.Days {
		p := d.Against(t)[0]
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(d.Date[5:]),
			Bar(p),
			valueStyle.Render(fmt.Sprintf("%.0f kcal", p.Value)),
		))
	}

	rows = append(rows, "", fmt.Sprintf("В среднем: %.0f kcal, белки %.0f г, углеводы %.0f г, жиры %.0f г",
		w.Average.Calories, w.Average.Protein, w.Average.Carbs, w.Average.Fat))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// exportedLog is the stable export shape; owner uid is left out.
type exportedLog struct {
	ID       string          `json:"id" yaml:"id"`
	Date     string          `json:"date" yaml:"date"`
	Meal     string          `json:"meal,omitempty" yaml:"meal,omitempty"`
	Exercise string          `json:"exercise,omitempty" yaml:"exercise,omitempty"`
	Totals   *logbook.Totals `json:"totals,omitempty" yaml:"totals,omitempty"`
}

// Export writes logs in the requested format.
func Export(w io.Writer, logs []logbook.Log, format Format) error {
	out := make([]exportedLog, 0, len(logs))
	for _, l := range logs {
		e := exportedLog{ID: l.ID, Date: l.Date, Meal: l.Meal, Exercise: l.Exercise}
		if l.Nutrition != nil {
			totals := l.Nutrition.Total
			e.Totals = &totals
		}
		out = append(out, e)
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(out)
	default:
		return fmt.Errorf("неизвестный формат: %q", format)
	}
}
