package tx

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"smartmoney/cmd/client/cmd/types"
	"smartmoney/internal/domain/finance"
)

var (
	listFrom     string
	listTo       string
	listType     string
	listCategory string
	listFormat   string
	limit        int
	offset       int
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список транзакций",
	Long: `Транзакции текущего пользователя, новые сверху.

Период задается флагами --from (включительно) и --to (не включительно).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		scope, err := app.Scope()
		if err != nil {
			return err
		}

		filter := finance.TransactionFilter{
			Type:     finance.TxType(listType),
			Category: finance.Category(listCategory),
			Limit:    limit,
			Offset:   offset,
		}
		if filter.From, err = parseDate(listFrom); err != nil {
			return err
		}
		if filter.To, err = parseDate(listTo); err != nil {
			return err
		}

		txs, err := app.Ledger().ListTransactions(cmd.Context(), scope, filter)
		if err != nil {
			return fmt.Errorf("ошибка получения списка транзакций: %w", err)
		}

		switch listFormat {
		case "json":
			return printJSON(txs)
		case "csv":
			return printCSV(txs)
		default:
			return printTable(txs)
		}
	},
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("дата %q должна быть в формате ГГГГ-ММ-ДД", s)
	}
	return t, nil
}

func printTable(txs []finance.Transaction) error {
	if len(txs) == 0 {
		fmt.Println("Транзакции не найдены")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Дата\tКатегория\tСумма\tОписание\tID\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t\n")
	for _, t := range txs {
		fmt.Fprintf(w, "%s\t%s\t%s%s\t%s\t%s\t\n",
			t.Date.Local().Format(dateLayout),
			t.Category,
			sign(t.Type),
			t.Amount.StringFixed(2),
			truncate(t.Description, 30),
			t.ID,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nВсего транзакций: %d\n", len(txs))
	return nil
}

func printJSON(txs []finance.Transaction) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(txs)
}

func printCSV(txs []finance.Transaction) error {
	fmt.Println("ID,Date,Type,Category,Amount,Source,Description,Tags")
	for _, t := range txs {
		fmt.Printf("%s,%s,%s,%s,%s,%s,%q,%q\n",
			t.ID,
			t.Date.UTC().Format(time.RFC3339),
			t.Type,
			t.Category,
			t.Amount.StringFixed(2),
			t.Source,
			t.Description,
			strings.Join(t.Tags, ";"),
		)
	}
	return nil
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length-3]) + "..."
}

func init() {
	ListCmd.Flags().StringVar(&listFrom, "from", "", "начало периода ГГГГ-ММ-ДД")
	ListCmd.Flags().StringVar(&listTo, "to", "", "конец периода ГГГГ-ММ-ДД (не включительно)")
	ListCmd.Flags().StringVarP(&listType, "type", "t", "", "фильтр по типу (Income, Expense)")
	ListCmd.Flags().StringVarP(&listCategory, "category", "c", "", "фильтр по категории")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "формат вывода (table, json, csv)")
	ListCmd.Flags().IntVar(&limit, "limit", 50, "ограничение количества транзакций")
	ListCmd.Flags().IntVar(&offset, "offset", 0, "смещение для пагинации")
}
