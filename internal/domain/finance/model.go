package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction - транзакция в том виде, в котором она хранится локально.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TxType          `json:"type"`
	Category    Category        `json:"category"`
	Source      Source          `json:"source"`
	Notes       string          `json:"notes,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
}

// Validate проверяет инварианты транзакции: сумма строго положительна,
// перечисления из закрытых списков.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: transaction id is empty", ErrInvalidData)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: transaction date is empty", ErrInvalidData)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidData, t.Amount)
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if err := t.Category.Validate(); err != nil {
		return err
	}
	return t.Source.Validate()
}

// Signed возвращает сумму со знаком: расходы отрицательные.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TxTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// StoredAccount - привязанный счет; иконка хранится строковым идентификатором.
type StoredAccount struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Type AccountType `json:"type"`
	Icon string      `json:"icon"`
}

// Account - счет в форме, с которой работает интерфейс.
type Account struct {
	ID   string
	Name string
	Type AccountType
	Icon Icon
}

func (a *Account) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: account id is empty", ErrInvalidData)
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: account name is empty", ErrInvalidData)
	}
	return a.Type.Validate()
}

// BudgetEntry - лимит по категории. Отсутствие записи означает "бюджет не задан".
type BudgetEntry struct {
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

func (b *BudgetEntry) Validate() error {
	if err := b.Category.Validate(); err != nil {
		return err
	}
	if b.Amount.IsNegative() {
		return fmt.Errorf("%w: budget must not be negative, got %s", ErrInvalidData, b.Amount)
	}
	return nil
}

type Profile struct {
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// Snapshot - все строки всех таблиц одного тенанта.
type Snapshot struct {
	Transactions []Transaction
	Accounts     []StoredAccount
	Budget       []BudgetEntry
	Profile      *Profile
}

// Empty сообщает, что в снимке нет ни одной строки.
func (s *Snapshot) Empty() bool {
	return len(s.Transactions) == 0 && len(s.Accounts) == 0 && len(s.Budget) == 0 && s.Profile == nil
}

// Rows возвращает общее число строк снимка.
func (s *Snapshot) Rows() int {
	n := len(s.Transactions) + len(s.Accounts) + len(s.Budget)
	if s.Profile != nil {
		n++
	}
	return n
}

// TransactionFilter - фильтр списка транзакций. Пустые поля не ограничивают выборку.
// To не включается в интервал.
type TransactionFilter struct {
	From     time.Time
	To       time.Time
	Type     TxType
	Category Category
	Limit    int
	Offset   int
}
