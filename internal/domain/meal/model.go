package meal

import (
	"strconv"

	"weightloss/internal/domain/logbook"
)

// CustomMeal is a reusable nutrition template owned by one user.
type CustomMeal struct {
	ID       string  `json:"id"`
	UID      string  `json:"uid,omitempty"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

func (m CustomMeal) DocID() string    { return m.ID }
func (m CustomMeal) OwnerUID() string { return m.UID }

func (m CustomMeal) WithOwner(uid string) CustomMeal {
	m.UID = uid
	return m
}

func (m CustomMeal) Totals() logbook.Totals {
	return logbook.Totals{
		Calories: m.Calories,
		Protein:  m.Protein,
		Carbs:    m.Carbs,
		Fat:      m.Fat,
		Fiber:    m.Fiber,
	}
}

// Portion is qty servings of a custom meal, ready to be logged.
type Portion struct {
	Name   string
	Qty    float64
	Totals logbook.Totals
}

// Portion scales the template by qty. A single serving keeps the plain name.
func (m CustomMeal) Portion(qty float64) (Portion, error) {
	if qty <= 0 {
		return Portion{}, ErrInvalidQuantity
	}

	name := m.Name
	if qty != 1 {
		name = m.Name + " x" + strconv.FormatFloat(qty, 'f', -1, 64)
	}

	return Portion{
		Name:   name,
		Qty:    qty,
		Totals: m.Totals().Scale(qty),
	}, nil
}

// ToLog turns the portion into a log entry for date.
func (p Portion) ToLog(id, date string) logbook.Log {
	return logbook.Log{
		ID:        id,
		Date:      date,
		Meal:      p.Name,
		Nutrition: &logbook.Nutrition{Total: p.Totals},
	}
}
