package logs

import (
	"fmt"

	"github.com/spf13/cobra"

	"weightloss/cmd/client/cmd/types"
	"weightloss/internal/domain/logbook"
)

var (
	listDate string
	listAll  bool
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список записей",
	Long:  `Записи за день (по умолчанию сегодня) или все записи с --all.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		var entries []logbook.Log
		if listAll {
			entries, err = app.Logs.FetchAll(cmd.Context())
		} else {
			entries, err = app.Logs.FetchDate(cmd.Context(), listDate)
		}
		if err != nil {
			return fmt.Errorf("ошибка получения записей: %w", err)
		}

		logbook.SortByDate(entries)
		printTable(entries)
		return nil
	},
}

func init() {
	ListCmd.Flags().StringVarP(&listDate, "date", "d", today(), "дата (YYYY-MM-DD)")
	ListCmd.Flags().BoolVarP(&listAll, "all", "a", false, "все записи")
}
