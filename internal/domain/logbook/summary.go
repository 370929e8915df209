package logbook

import (
	"fmt"
	"sort"
	"time"
)

type Status string

const (
	StatusBelow  Status = "below"
	StatusWithin Status = "within"
	StatusAbove  Status = "above"
)

// Range is an inclusive daily target.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) Status(v float64) Status {
	switch {
	case v < r.Min:
		return StatusBelow
	case v > r.Max:
		return StatusAbove
	default:
		return StatusWithin
	}
}

type Targets struct {
	Calories Range `json:"calories"`
	Protein  Range `json:"protein"`
	Carbs    Range `json:"carbs"`
	Fat      Range `json:"fat"`
}

var DefaultTargets = Targets{
	Calories: Range{Min: 1000, Max: 1500},
	Protein:  Range{Min: 120, Max: 200},
	Carbs:    Range{Min: 120, Max: 250},
	Fat:      Range{Min: 30, Max: 70},
}

// Progress is one nutrient of a day measured against its target.
type Progress struct {
	Nutrient string  `json:"nutrient"`
	Value    float64 `json:"value"`
	Target   Range   `json:"target"`
	Status   Status  `json:"status"`
}

type DaySummary struct {
	Date    string `json:"date"`
	Entries int    `json:"entries"`
	Totals  Totals `json:"totals"`
}

// Against lists the day's nutrients in display order with their target status.
func (d DaySummary) Against(t Targets) []Progress {
	return []Progress{
		{Nutrient: "calories", Value: d.Totals.Calories, Target: t.Calories, Status: t.Calories.Status(d.Totals.Calories)},
		{Nutrient: "protein", Value: d.Totals.Protein, Target: t.Protein, Status: t.Protein.Status(d.Totals.Protein)},
		{Nutrient: "carbs", Value: d.Totals.Carbs, Target: t.Carbs, Status: t.Carbs.Status(d.Totals.Carbs)},
		{Nutrient: "fat", Value: d.Totals.Fat, Target: t.Fat, Status: t.Fat.Status(d.Totals.Fat)},
	}
}

// Summarize totals the entries logged on date.
func Summarize(logs []Log, date string) DaySummary {
	s := DaySummary{Date: date}
	for _, l := range logs {
		if l.Date != date {
			continue
		}
		s.Entries++
		s.Totals = s.Totals.Add(l.Totals())
	}
	return s
}

type WeekSummary struct {
	Start   string       `json:"start"`
	End     string       `json:"end"`
	Days    []DaySummary `json:"days"`
	Totals  Totals       `json:"totals"`
	Average Totals       `json:"average"`
}

// Week summarizes the seven days ending on end (inclusive).
// Average is taken over the days that have at least one entry.
func Week(logs []Log, end string) (WeekSummary, error) {
	last, err := time.Parse(DateLayout, end)
	if err != nil {
		return WeekSummary{}, fmt.Errorf("%w: date %q is not %s", ErrInvalidData, end, DateLayout)
	}

	first := last.AddDate(0, 0, -6)
	w := WeekSummary{
		Start: first.Format(DateLayout),
		End:   end,
		Days:  make([]DaySummary, 0, 7),
	}

	active := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		day := Summarize(logs, d.Format(DateLayout))
		if day.Entries > 0 {
			active++
		}
		w.Totals = w.Totals.Add(day.Totals)
		w.Days = append(w.Days, day)
	}

	if active > 0 {
		w.Average = w.Totals.Scale(1 / float64(active))
	}

	return w, nil
}

// OnDate returns the entries of logs logged on date.
func OnDate(logs []Log, date string) []Log {
	day := make([]Log, 0, len(logs))
	for _, l := range logs {
		if l.Date == date {
			day = append(day, l)
		}
	}
	return day
}

// SortByDate orders logs by date, keeping insertion order within a day.
func SortByDate(logs []Log) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date < logs[j].Date
	})
}
