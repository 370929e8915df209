package logs

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"weightloss/cmd/client/cmd/types"
	"weightloss/internal/domain/logbook"
)

var (
	addDate     string
	addMeal     string
	addExercise string
	addID       string
	addTotals   logbook.Totals
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Добавить или заменить запись",
	Long: `Добавляет запись за день. С --id заменяет существующую запись с тем же id.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if addMeal == "" && addExercise == "" {
			return fmt.Errorf("укажите --meal или --exercise")
		}

		id := addID
		if id == "" {
			id = uuid.NewString()
		}

		entry := logbook.Log{
			ID:       id,
			Date:     addDate,
			Meal:     addMeal,
			Exercise: addExercise,
		}
		if addTotals != (logbook.Totals{}) {
			entry.Nutrition = &logbook.Nutrition{Total: addTotals}
		}

		saved, err := app.Logs.Save(cmd.Context(), entry)
		if err != nil {
			return fmt.Errorf("ошибка сохранения записи: %w", err)
		}

		fmt.Printf("✅ Запись %s сохранена на %s\n", saved.ID, saved.Date)
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVarP(&addDate, "date", "d", today(), "дата (YYYY-MM-DD)")
	AddCmd.Flags().StringVarP(&addMeal, "meal", "m", "", "название блюда")
	AddCmd.Flags().StringVarP(&addExercise, "exercise", "x", "", "тренировка")
	AddCmd.Flags().StringVar(&addID, "id", "", "id записи для замены")
	AddCmd.Flags().Float64Var(&addTotals.Calories, "calories", 0, "калории")
	AddCmd.Flags().Float64Var(&addTotals.Protein, "protein", 0, "белки, г")
	AddCmd.Flags().Float64Var(&addTotals.Carbs, "carbs", 0, "углеводы, г")
	AddCmd.Flags().Float64Var(&addTotals.Fat, "fat", 0, "жиры, г")
	AddCmd.Flags().Float64Var(&addTotals.Fiber, "fiber", 0, "клетчатка, г")
}
