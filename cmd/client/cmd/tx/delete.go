package tx

import (
	"fmt"

	"github.com/spf13/cobra"

	"smartmoney/cmd/client/cmd/types"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить транзакцию",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		scope, err := app.Scope()
		if err != nil {
			return err
		}

		if err := app.Ledger().DeleteTransaction(cmd.Context(), scope, args[0]); err != nil {
			return fmt.Errorf("ошибка удаления транзакции: %w", err)
		}
		fmt.Println("✅ Транзакция удалена")
		return nil
	},
}
