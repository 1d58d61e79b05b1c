package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"smartmoney/cmd/client/cmd/types"
)

var (
	registerEmail    string
	registerUsername string
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрировать нового пользователя",
	Long: `Регистрация нового пользователя.

Имя пользователя: от 3 до 15 символов, латинские буквы, цифры и "_".
Пароль: не короче 8 символов.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Println("=== Регистрация нового пользователя ===")
		fmt.Println()

		email := registerEmail
		if email == "" {
			if email, err = prompt("Email: "); err != nil {
				return err
			}
		}
		username := registerUsername
		if username == "" {
			if username, err = prompt("Имя пользователя: "); err != nil {
				return err
			}
		}

		password, err := readPassword("Пароль: ")
		if err != nil {
			return err
		}
		passwordConfirm, err := readPassword("Повторите пароль: ")
		if err != nil {
			return err
		}
		if password != passwordConfirm {
			return fmt.Errorf("пароли не совпадают")
		}

		if _, err := app.Register(cmd.Context(), email, username, password); err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		fmt.Println()
		fmt.Println("✅ Регистрация успешно завершена!")
		fmt.Println("Теперь вы можете войти в систему: smartmoney auth login")
		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "email")
	RegisterCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "имя пользователя")
}
