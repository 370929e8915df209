package meal

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"weightloss/cmd/client/cmd/types"
	"weightloss/internal/domain/meal"
)

var added meal.CustomMeal

var AddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Сохранить блюдо",
	Long:  `Сохраняет блюдо. С --id заменяет существующее блюдо.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		m := added
		m.Name = args[0]
		if m.ID == "" {
			m.ID = uuid.NewString()
		}

		saved, err := app.Meals.Save(cmd.Context(), m)
		if err != nil {
			return fmt.Errorf("ошибка сохранения блюда: %w", err)
		}

		fmt.Printf("✅ Блюдо %q сохранено (%s)\n", saved.Name, saved.ID)
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVar(&added.ID, "id", "", "id блюда для замены")
	AddCmd.Flags().Float64Var(&added.Calories, "calories", 0, "калории на порцию")
	AddCmd.Flags().Float64Var(&added.Protein, "protein", 0, "белки, г")
	AddCmd.Flags().Float64Var(&added.Carbs, "carbs", 0, "углеводы, г")
	AddCmd.Flags().Float64Var(&added.Fat, "fat", 0, "жиры, г")
	AddCmd.Flags().Float64Var(&added.Fiber, "fiber", 0, "клетчатка, г")
}
