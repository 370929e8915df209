package logbook

import "time"

// DateLayout is the calendar date format of Log.Date.
const DateLayout = "2006-01-02"

// Totals holds the macro nutrients of a meal or a day.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

func (t Totals) Add(o Totals) Totals {
	return Totals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fat:      t.Fat + o.Fat,
		Fiber:    t.Fiber + o.Fiber,
	}
}

func (t Totals) Scale(f float64) Totals {
	return Totals{
		Calories: t.Calories * f,
		Protein:  t.Protein * f,
		Carbs:    t.Carbs * f,
		Fat:      t.Fat * f,
		Fiber:    t.Fiber * f,
	}
}

type Nutrition struct {
	Total Totals `json:"total"`
}

// Log is a single meal or exercise entry on a calendar date.
type Log struct {
	ID        string     `json:"id"`
	UID       string     `json:"uid,omitempty"`
	Date      string     `json:"date"`
	Meal      string     `json:"meal,omitempty"`
	Exercise  string     `json:"exercise,omitempty"`
	Nutrition *Nutrition `json:"nutrition,omitempty"`
}

func (l Log) DocID() string    { return l.ID }
func (l Log) OwnerUID() string { return l.UID }

// WithOwner returns a copy of l stamped with uid.
func (l Log) WithOwner(uid string) Log {
	l.UID = uid
	return l
}

// Totals returns the nutrition totals of the entry, zero when none were recorded.
func (l Log) Totals() Totals {
	if l.Nutrition == nil {
		return Totals{}
	}
	return l.Nutrition.Total
}

// Day parses Date.
func (l Log) Day() (time.Time, error) {
	return time.Parse(DateLayout, l.Date)
}
