package meal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"weightloss/cmd/client/cmd/types"
	"weightloss/internal/domain/logbook"
)

var (
	useQty  float64
	useDate string
)

var UseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Добавить порцию блюда в дневник",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		m, err := app.Meals.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("ошибка получения блюда: %w", err)
		}

		p, err := m.Portion(useQty)
		if err != nil {
			return err
		}

		saved, err := app.Logs.Save(cmd.Context(), p.ToLog(uuid.NewString(), useDate))
		if err != nil {
			return fmt.Errorf("ошибка сохранения записи: %w", err)
		}

		fmt.Printf("✅ %s (%.0f ккал) добавлено на %s\n", saved.Meal, saved.Totals().Calories, saved.Date)
		return nil
	},
}

func init() {
	UseCmd.Flags().Float64VarP(&useQty, "qty", "q", 1, "количество порций")
	UseCmd.Flags().StringVarP(&useDate, "date", "d", time.Now().Format(logbook.DateLayout), "дата (YYYY-MM-DD)")
}
