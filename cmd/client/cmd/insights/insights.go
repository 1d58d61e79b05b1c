package insights

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"smartmoney/cmd/client/cmd/types"
	"smartmoney/internal/domain/ledger"
)

var month string

var InsightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Итоги, расходы по категориям и выполнение бюджета",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		scope, err := app.Scope()
		if err != nil {
			return err
		}

		var m time.Time
		if month != "" {
			if m, err = time.Parse("2006-01", month); err != nil {
				return fmt.Errorf("месяц должен быть в формате ГГГГ-ММ")
			}
		}

		res, err := app.Ledger().Insights(cmd.Context(), scope, m)
		if err != nil {
			return err
		}
		return printInsights(res)
	},
}

func printInsights(res ledger.Insights) error {
	fmt.Printf("Доходы:  %s\n", res.Totals.Income.StringFixed(2))
	fmt.Printf("Расходы: %s\n", res.Totals.Expense.StringFixed(2))
	fmt.Printf("Баланс:  %s\n", res.Totals.Balance.StringFixed(2))
	fmt.Println()

	fmt.Printf("Расходы за %s:\n", res.Month.Format("2006-01"))
	if len(res.Spending) == 0 {
		fmt.Println("  нет расходов")
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range res.Spending {
		fmt.Fprintf(w, "  %s\t%s\t\n", s.Category, s.Amount.StringFixed(2))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(res.Budget) == 0 {
		return nil
	}
	fmt.Println()
	fmt.Println("Бюджет:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Категория\tПотрачено\tЛимит\t%%\tСтатус\t\n")
	for _, b := range res.Budget {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t\n",
			b.Category,
			b.Spent.StringFixed(2),
			b.Limit.StringFixed(2),
			b.Percent.StringFixed(1),
			status(b.Status),
		)
	}
	return w.Flush()
}

func status(s ledger.BudgetStatus) string {
	switch s {
	case ledger.BudgetOver:
		return color.RedString("превышен")
	case ledger.BudgetWarning:
		return color.YellowString("почти исчерпан")
	default:
		return color.GreenString("в норме")
	}
}

func init() {
	InsightsCmd.Flags().StringVarP(&month, "month", "m", "", "месяц ГГГГ-ММ (по умолчанию текущий)")
}
