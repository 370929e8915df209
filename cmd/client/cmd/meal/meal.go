package meal

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"weightloss/internal/domain/meal"
)

// MealCmd - родительская команда для собственных блюд
var MealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Собственные блюда",
	Long:  `Шаблоны блюд с БЖУ, которые можно быстро добавить в дневник.`,
}

func printTable(meals []meal.CustomMeal) {
	if len(meals) == 0 {
		fmt.Println("Блюда не найдены")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tНазвание\tКкал\tБ\tУ\tЖ\tКлетч.\t\n")
	for _, m := range meals {
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%.1f\t\n",
			m.ID, m.Name, m.Calories, m.Protein, m.Carbs, m.Fat, m.Fiber)
	}
	w.Flush()
}
