package sync

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"smartmoney/cmd/client/cmd/types"
	"smartmoney/internal/app/client"
	"smartmoney/internal/domain/ledger"
)

var syncStatus bool

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Обновить локальные данные с сервера",
	Long: `Загружает все строки пользователя с сервера и заменяет ими локальную
копию одной транзакцией. При конфликте побеждает версия сервера.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if syncStatus {
			showSyncStatus(app.State(), app.RemoteEnabled())
			return nil
		}

		fmt.Println("=== Синхронизация данных ===")
		n, err := app.Sync(cmd.Context())
		if errors.Is(err, ledger.ErrNoRemote) {
			return fmt.Errorf("сервер не настроен: задайте DATABASE_URI")
		}
		if err != nil {
			return fmt.Errorf("ошибка синхронизации: %w", err)
		}

		fmt.Printf("✅ Получено строк: %d\n", n)
		return nil
	},
}

func showSyncStatus(state client.AppState, remote bool) {
	if remote {
		fmt.Println("Сервер: подключен")
	} else {
		fmt.Println("Сервер: не настроен")
	}
	if state.LastSync.IsZero() {
		fmt.Println("Последняя синхронизация: никогда")
		return
	}
	fmt.Printf("Последняя синхронизация: %s\n", state.LastSync.Local().Format("2006-01-02 15:04:05"))
}

func init() {
	SyncCmd.Flags().BoolVar(&syncStatus, "status", false, "показать статус синхронизации")
}
