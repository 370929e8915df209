package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"weightloss/cmd/client/cmd/types"
)

var loginEmail string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему",
	Long: `Вход по email и паролю. Сессия сохраняется локально и восстанавливается
при следующем запуске.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		email, password, err := readCredentials(loginEmail, false)
		if err != nil {
			return err
		}

		s, err := app.Auth.SignIn(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		fmt.Printf("✅ Вход выполнен: %s\n", s.Email)
		fmt.Println(app.Status(cmd.Context()))
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "email аккаунта")
}
