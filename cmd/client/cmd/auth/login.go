package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"smartmoney/cmd/client/cmd/types"
	"smartmoney/internal/domain/ledger"
)

var (
	loginEmail string
	loginSync  bool
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему",
	Long: `Проверка пароля и сохранение сессии в state.json.

С флагом --sync после входа локальная копия обновляется с сервера.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		email := loginEmail
		if email == "" {
			if email, err = prompt("Email: "); err != nil {
				return err
			}
		}
		password, err := readPassword("Пароль: ")
		if err != nil {
			return err
		}

		u, err := app.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}
		fmt.Printf("✅ Вход выполнен: %s\n", u.Username)

		if !loginSync {
			return nil
		}
		fmt.Println("Синхронизация данных...")
		n, err := app.Sync(cmd.Context())
		switch {
		case errors.Is(err, ledger.ErrNoRemote):
			fmt.Println("Сервер не настроен, работаем только локально")
		case err != nil:
			fmt.Printf("⚠️  Предупреждение: ошибка синхронизации: %v\n", err)
			fmt.Println("Локальные данные не изменены")
		default:
			fmt.Printf("✓ Получено строк: %d\n", n)
		}
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "email")
	LoginCmd.Flags().BoolVarP(&loginSync, "sync", "s", false, "обновить данные с сервера после входа")
}
