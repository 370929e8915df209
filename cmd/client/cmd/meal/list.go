package meal

import (
	"fmt"

	"github.com/spf13/cobra"

	"weightloss/cmd/client/cmd/types"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список блюд",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		meals, err := app.Meals.FetchAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения блюд: %w", err)
		}

		printTable(meals)
		return nil
	},
}
