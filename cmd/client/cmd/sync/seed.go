package sync

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"smartmoney/cmd/client/cmd/types"
)

var (
	seedConfirm bool
	seedValue   uint64
)

var SeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Заполнить демонстрационными данными",
	Long: `Заменяет все транзакции, счета и бюджет текущего пользователя
демонстрационными данными за последние месяцы. Профиль сохраняется.
Если настроен сервер, данные заменяются и там.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		scope, err := app.Scope()
		if err != nil {
			return err
		}

		if !seedConfirm {
			return fmt.Errorf("все данные пользователя %s будут заменены; повторите с флагом --yes", scope.Tenant)
		}

		seed := seedValue
		if !cmd.Flags().Changed("seed") {
			seed = rand.Uint64()
		}

		n, err := app.Ledger().Seed(cmd.Context(), scope, seed)
		if err != nil {
			return fmt.Errorf("ошибка заполнения: %w", err)
		}
		fmt.Printf("✅ Записано строк: %d\n", n)
		return nil
	},
}

func init() {
	SeedCmd.Flags().BoolVarP(&seedConfirm, "yes", "y", false, "подтвердить замену данных")
	SeedCmd.Flags().Uint64Var(&seedValue, "seed", 0, "зерно генератора (для воспроизводимых данных)")
}
