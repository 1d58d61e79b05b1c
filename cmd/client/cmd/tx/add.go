package tx

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"smartmoney/cmd/client/cmd/types"
	"smartmoney/internal/domain/finance"
)

var (
	addAmount   string
	addType     string
	addCategory string
	addDesc     string
	addDate     string
	addSource   string
	addNotes    string
	addTags     []string
)

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Добавить транзакцию",
	Example: `  smartmoney tx add --amount 250 --category Food --desc "Продукты"
  smartmoney tx add --amount 50000 --type Income --category Salary --date 2024-03-01`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		scope, err := app.Scope()
		if err != nil {
			return err
		}

		amount, err := decimal.NewFromString(addAmount)
		if err != nil {
			return fmt.Errorf("неверная сумма %q", addAmount)
		}

		t := finance.Transaction{
			Description: addDesc,
			Amount:      amount,
			Type:        finance.TxType(addType),
			Category:    finance.Category(addCategory),
			Source:      finance.Source(addSource),
			Notes:       addNotes,
			Tags:        addTags,
		}
		if addDate != "" {
			if t.Date, err = time.Parse(dateLayout, addDate); err != nil {
				return fmt.Errorf("дата должна быть в формате ГГГГ-ММ-ДД: %w", err)
			}
		}

		created, err := app.Ledger().AddTransaction(cmd.Context(), scope, t)
		if err != nil {
			return fmt.Errorf("ошибка добавления транзакции: %w", err)
		}

		fmt.Printf("✅ Транзакция добавлена: %s\n", created.ID)
		fmt.Printf("   %s  %s  %s %s  %s\n",
			created.Date.Format(dateLayout),
			created.Category,
			sign(created.Type),
			created.Amount.StringFixed(2),
			strings.TrimSpace(created.Description),
		)
		return nil
	},
}

func sign(t finance.TxType) string {
	if t == finance.TxTypeExpense {
		return "-"
	}
	return "+"
}

func init() {
	AddCmd.Flags().StringVarP(&addAmount, "amount", "a", "", "сумма (положительная)")
	AddCmd.Flags().StringVarP(&addType, "type", "t", string(finance.TxTypeExpense), "тип: Income или Expense")
	AddCmd.Flags().StringVarP(&addCategory, "category", "c", string(finance.CategoryOther), "категория")
	AddCmd.Flags().StringVarP(&addDesc, "desc", "d", "", "описание")
	AddCmd.Flags().StringVar(&addDate, "date", "", "дата ГГГГ-ММ-ДД (по умолчанию сейчас)")
	AddCmd.Flags().StringVar(&addSource, "source", string(finance.SourceManual), "источник: Manual или UPI")
	AddCmd.Flags().StringVar(&addNotes, "notes", "", "заметка")
	AddCmd.Flags().StringSliceVar(&addTags, "tag", nil, "метка (можно указать несколько раз)")
	_ = AddCmd.MarkFlagRequired("amount")
}
