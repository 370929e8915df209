package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"weightloss/cmd/client/cmd/auth"
	"weightloss/cmd/client/cmd/logs"
	"weightloss/cmd/client/cmd/meal"
	"weightloss/cmd/client/cmd/summary"
	"weightloss/cmd/client/cmd/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Показать состояние подключения и текущего пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Println(app.Status(cmd.Context()))

		if s := app.Auth.CurrentSession(); s != nil {
			fmt.Printf("Пользователь: %s (%s)\n", s.Email, s.UID)
		} else {
			fmt.Println("Пользователь: не выполнен вход")
		}
		fmt.Printf("Кэш: %s\n", app.Config().DataPath)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.ProfileCmd)

	rootCmd.AddCommand(logs.LogCmd)
	logs.LogCmd.AddCommand(logs.AddCmd)
	logs.LogCmd.AddCommand(logs.ListCmd)
	logs.LogCmd.AddCommand(logs.DeleteCmd)
	logs.LogCmd.AddCommand(logs.WatchCmd)
	logs.LogCmd.AddCommand(logs.ExportCmd)

	rootCmd.AddCommand(meal.MealCmd)
	meal.MealCmd.AddCommand(meal.AddCmd)
	meal.MealCmd.AddCommand(meal.ListCmd)
	meal.MealCmd.AddCommand(meal.DeleteCmd)
	meal.MealCmd.AddCommand(meal.UseCmd)

	rootCmd.AddCommand(summary.SummaryCmd)
	summary.SummaryCmd.AddCommand(summary.DayCmd)
	summary.SummaryCmd.AddCommand(summary.WeekCmd)
}
