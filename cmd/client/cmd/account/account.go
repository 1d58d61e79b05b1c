package account

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"smartmoney/cmd/client/cmd/types"
	"smartmoney/internal/domain/finance"
)

var (
	linkType string
	linkIcon string
)

// AccountCmd - родительская команда для привязанных счетов
var AccountCmd = &cobra.Command{
	Use:   "account",
	Short: "Привязанные счета (UPI, банк)",
}

var LinkCmd = &cobra.Command{
	Use:     "link <название>",
	Short:   "Привязать счет",
	Example: `  smartmoney account link "Google Pay" --type UPI --icon GooglePayIcon`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		scope, err := app.Scope()
		if err != nil {
			return err
		}

		acc := finance.Account{
			Name: strings.Join(args, " "),
			Type: finance.AccountType(linkType),
		}
		if kind, ok := finance.ParseIconID(linkIcon); ok {
			acc.Icon = kind.Icon()
		} else if linkIcon != "" {
			fmt.Printf("⚠️  Неизвестная иконка %q, будет использована %s\n", linkIcon, finance.DefaultIconID)
		}

		linked, err := app.Ledger().LinkAccount(cmd.Context(), scope, acc)
		if err != nil {
			return fmt.Errorf("ошибка привязки счета: %w", err)
		}
		fmt.Printf("✅ Счет привязан: %s (%s)\n", linked.Name, linked.ID)
		return nil
	},
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список привязанных счетов",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		scope, err := app.Scope()
		if err != nil {
			return err
		}

		accounts, err := app.Ledger().ListAccounts(cmd.Context(), scope)
		if err != nil {
			return err
		}
		if len(accounts) == 0 {
			fmt.Println("Счета не привязаны")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "\tНазвание\tТип\tID\t\n")
		for _, a := range accounts {
			fmt.Fprintf(w, "[%s]\t%s\t%s\t%s\t\n", a.Icon.Glyph(), a.Name, a.Type, a.ID)
		}
		return w.Flush()
	},
}

var UnlinkCmd = &cobra.Command{
	Use:   "unlink <id>",
	Short: "Отвязать счет",
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

		if err := app.Ledger().UnlinkAccount(cmd.Context(), scope, args[0]); err != nil {
			return fmt.Errorf("ошибка отвязки счета: %w", err)
		}
		fmt.Println("✅ Счет отвязан")
		return nil
	},
}

func init() {
	LinkCmd.Flags().StringVarP(&linkType, "type", "t", string(finance.AccountTypeUPI), "тип счета: UPI или Bank")
	LinkCmd.Flags().StringVarP(&linkIcon, "icon", "i", "", "иконка: GooglePayIcon, PhonePeIcon, BankIcon")
}
