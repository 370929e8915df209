package meal

import (
	"fmt"

	"github.com/spf13/cobra"

	"weightloss/cmd/client/cmd/types"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить блюдо",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if err := app.Meals.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("ошибка удаления блюда: %w", err)
		}

		fmt.Printf("Блюдо %s удалено\n", args[0])
		return nil
	},
}
