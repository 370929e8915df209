package logs

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"weightloss/internal/domain/logbook"
)

// LogCmd - родительская команда для записей дневника
var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "Записи дневника",
	Long:  `Добавление, просмотр, удаление и экспорт записей о еде и тренировках.`,
}

func today() string {
	return time.Now().Format(logbook.DateLayout)
}

func printTable(logs []logbook.Log) {
	if len(logs) == 0 {
		fmt.Println("Записи не найдены")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tДата\tЕда\tТренировка\tКкал\tБ\tУ\tЖ\t\n")
	for _, l := range logs {
		t := l.Totals()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f\t%.0f\t%.0f\t%.0f\t\n",
			shortID(l.ID), l.Date, l.Meal, l.Exercise, t.Calories, t.Protein, t.Carbs, t.Fat)
	}
	w.Flush()
	fmt.Printf("\nВсего записей: %d\n", len(logs))
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
