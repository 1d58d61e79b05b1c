package tx

import (
	"github.com/spf13/cobra"
)

// TxCmd - родительская команда для операций с транзакциями
var TxCmd = &cobra.Command{
	Use:     "tx",
	Aliases: []string{"transaction"},
	Short:   "Управление транзакциями",
	Long:    `Добавление, просмотр и удаление доходов и расходов.`,
}

const dateLayout = "2006-01-02"
