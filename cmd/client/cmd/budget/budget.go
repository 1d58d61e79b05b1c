package budget

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"smartmoney/cmd/client/cmd/types"
	"smartmoney/internal/domain/finance"
)

// BudgetCmd - родительская команда для месячных лимитов по категориям
var BudgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Месячные лимиты по категориям",
}

var SetCmd = &cobra.Command{
	Use:     "set <категория> <сумма>",
	Short:   "Задать лимит категории",
	Example: "  smartmoney budget set Food 5000",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		scope, err := app.Scope()
		if err != nil {
			return err
		}

		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("неверная сумма %q", args[1])
		}

		entry := finance.BudgetEntry{Category: finance.Category(args[0]), Amount: amount}
		if err := app.Ledger().SetBudget(cmd.Context(), scope, entry); err != nil {
			return fmt.Errorf("ошибка сохранения лимита: %w", err)
		}
		fmt.Printf("✅ Лимит %s: %s\n", entry.Category, entry.Amount.StringFixed(2))
		return nil
	},
}

var GetCmd = &cobra.Command{
	Use:   "get <категория>",
	Short: "Показать лимит категории",
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

		entry, err := app.Ledger().GetBudget(cmd.Context(), scope, finance.Category(args[0]))
		if errors.Is(err, finance.ErrNotFound) {
			fmt.Printf("Лимит для %s не задан\n", args[0])
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", entry.Category, entry.Amount.StringFixed(2))
		return nil
	},
}

var ClearCmd = &cobra.Command{
	Use:   "clear <категория>",
	Short: "Снять лимит категории",
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

		if err := app.Ledger().ClearBudget(cmd.Context(), scope, finance.Category(args[0])); err != nil {
			return fmt.Errorf("ошибка удаления лимита: %w", err)
		}
		fmt.Printf("✅ Лимит %s снят\n", args[0])
		return nil
	},
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Все лимиты",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		scope, err := app.Scope()
		if err != nil {
			return err
		}

		entries, err := app.Ledger().ListBudget(cmd.Context(), scope)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Лимиты не заданы")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Категория\tЛимит\t\n")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t\n", e.Category, e.Amount.StringFixed(2))
		}
		return w.Flush()
	},
}
