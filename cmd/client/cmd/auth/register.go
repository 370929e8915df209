package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"weightloss/cmd/client/cmd/types"
)

var registerEmail string

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long: `Создает аккаунт на сервере, а если сервер недоступен - локальный аккаунт
на этом устройстве.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		email, password, err := readCredentials(registerEmail, true)
		if err != nil {
			return err
		}

		s, err := app.Auth.SignUp(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		fmt.Printf("✅ Аккаунт создан: %s\n", s.Email)
		fmt.Println(app.Status(cmd.Context()))
		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "email аккаунта")
}
