package logbook

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks the fields every persisted Log must carry.
func (l Log) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidData)
	}
	if _, err := l.Day(); err != nil {
		return fmt.Errorf("%w: date %q is not %s", ErrInvalidData, l.Date, DateLayout)
	}
	if l.Nutrition != nil {
		if err := l.Nutrition.Total.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (t Totals) Validate() error {
	for name, v := range map[string]float64{
		"calories": t.Calories,
		"protein":  t.Protein,
		"carbs":    t.Carbs,
		"fat":      t.Fat,
		"fiber":    t.Fiber,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidData, name)
		}
	}
	return nil
}
