package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"smartmoney/cmd/client/cmd/types"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	Long:  `Очищает сессию. Локальные данные пользователя остаются на диске.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		if err := app.Logout(); err != nil {
			return err
		}
		fmt.Println("Вы вышли из системы")
		return nil
	},
}
