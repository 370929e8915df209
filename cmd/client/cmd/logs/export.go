package logs

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"weightloss/cmd/client/cmd/types"
	"weightloss/internal/app/client/report"
	"weightloss/internal/domain/logbook"
)

var (
	exportFormat string
	exportOutput string
)

var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Экспортировать все записи",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		entries, err := app.Logs.FetchAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения записей: %w", err)
		}
		logbook.SortByDate(entries)

		var w io.Writer = os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("ошибка создания файла: %w", err)
			}
			defer f.Close()
			w = f
		}

		return report.Export(w, entries, report.Format(exportFormat))
	},
}

func init() {
	ExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "формат (yaml, json)")
	ExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "файл (по умолчанию stdout)")
}
