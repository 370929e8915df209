package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"weightloss/cmd/client/cmd/types"
	"weightloss/internal/domain/user"
)

var profileName string

var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Показать или изменить профиль",
	Long:  `Без флагов выводит профиль; --name меняет отображаемое имя.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		var p user.Profile
		if cmd.Flags().Changed("name") {
			p, err = app.Auth.SaveProfile(cmd.Context(), user.Profile{Name: profileName})
		} else {
			p, err = app.Auth.FetchProfile(cmd.Context(), "")
		}
		if err != nil {
			return fmt.Errorf("ошибка профиля: %w", err)
		}

		fmt.Printf("UID:   %s\n", p.UID)
		fmt.Printf("Email: %s\n", p.Email)
		fmt.Printf("Имя:   %s\n", p.Name)
		return nil
	},
}

func init() {
	ProfileCmd.Flags().StringVar(&profileName, "name", "", "новое отображаемое имя")
}
