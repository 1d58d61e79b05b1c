package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"smartmoney/cmd/client/cmd/types"
	"smartmoney/internal/domain/tenant"
)

var RenameCmd = &cobra.Command{
	Use:   "rename <новое_имя>",
	Short: "Сменить имя пользователя",
	Long: `Переносит все локальные данные под новое имя пользователя.

Если под новым именем уже есть данные, смена отклоняется и ничего не меняется.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		u, err := app.Rename(cmd.Context(), args[0])
		if err != nil {
			var re *tenant.RenameError
			if errors.As(err, &re) && re.Residual {
				fmt.Printf("⚠️  В хранилище %q могли остаться частичные данные\n", re.NewID)
			}
			return fmt.Errorf("ошибка смены имени: %w", err)
		}

		fmt.Printf("✅ Имя пользователя изменено: %s\n", u.Username)
		return nil
	},
}
