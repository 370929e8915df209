package logs

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"weightloss/cmd/client/cmd/types"
	"weightloss/internal/domain/logbook"
)

var watchDate string

var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Следить за записями дня в реальном времени",
	Long: `Выводит записи дня и обновляет их при изменениях на других устройствах.
Требует подключения к серверу. Завершение - Ctrl+C.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		unsubscribe := app.Logs.Subscribe(cmd.Context(), func(all []logbook.Log) {
			fmt.Printf("\n[%s] %s\n", time.Now().Format("15:04:05"), watchDate)
			printTable(logbook.OnDate(all, watchDate))
		})
		defer unsubscribe()

		return app.Run()
	},
}

func init() {
	WatchCmd.Flags().StringVarP(&watchDate, "date", "d", today(), "дата (YYYY-MM-DD)")
}
