package summary

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"weightloss/cmd/client/cmd/types"
	"weightloss/internal/app/client/report"
	"weightloss/internal/domain/logbook"
)

var date string

// SummaryCmd - итоги по дням и неделям
var SummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Итоги питания относительно дневных целей",
}

var DayCmd = &cobra.Command{
	Use:   "day",
	Short: "Итоги за день",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		entries, err := app.Logs.FetchDate(cmd.Context(), date)
		if err != nil {
			return fmt.Errorf("ошибка получения записей: %w", err)
		}

		fmt.Println(report.Day(logbook.Summarize(entries, date), logbook.DefaultTargets))
		return nil
	},
}

var WeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Итоги за 7 дней, заканчивая --date",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		entries, err := app.Logs.FetchAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения записей: %w", err)
		}

		week, err := logbook.Week(entries, date)
		if err != nil {
			return err
		}

		fmt.Println(report.Week(week, logbook.DefaultTargets))
		return nil
	},
}

func init() {
	SummaryCmd.PersistentFlags().StringVarP(&date, "date", "d", time.Now().Format(logbook.DateLayout), "дата (YYYY-MM-DD)")
}
