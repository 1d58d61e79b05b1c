package finance

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

type Category string

const (
	CategoryFood          Category = "Food"
	CategoryBills         Category = "Bills"
	CategoryShopping      Category = "Shopping"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategorySalary        Category = "Salary"
	CategoryFreelance     Category = "Freelance"
	CategoryOther         Category = "Other"
)

// Categories возвращает все категории в порядке отображения.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryBills,
		CategoryShopping,
		CategoryTransport,
		CategoryEntertainment,
		CategoryHealth,
		CategorySalary,
		CategoryFreelance,
		CategoryOther,
	}
}

// Schema описывает категорию для OpenAPI.
func (Category) Schema(_ huma.Registry) *huma.Schema {
	enum := make([]any, 0, len(Categories()))
	for _, c := range Categories() {
		enum = append(enum, string(c))
	}
	return &huma.Schema{
		Type:        huma.TypeString,
		Enum:        enum,
		Description: "Категория транзакции",
		Examples:    []any{string(CategoryFood)},
	}
}

// Validate проверяет, что категория входит в закрытый список.
func (c Category) Validate() error {
	switch c {
	case CategoryFood, CategoryBills, CategoryShopping, CategoryTransport,
		CategoryEntertainment, CategoryHealth, CategorySalary, CategoryFreelance, CategoryOther:
		return nil
	}
	return fmt.Errorf("%w: unknown category %q", ErrInvalidData, string(c))
}

func (c Category) String() string {
	return string(c)
}

type TxType string

const (
	TxTypeIncome  TxType = "Income"
	TxTypeExpense TxType = "Expense"
)

func (TxType) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeString,
		Enum:        []any{string(TxTypeIncome), string(TxTypeExpense)},
		Description: "Тип транзакции",
		Examples:    []any{string(TxTypeExpense)},
	}
}

func (t TxType) Validate() error {
	switch t {
	case TxTypeIncome, TxTypeExpense:
		return nil
	}
	return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidData, string(t))
}

func (t TxType) String() string {
	return string(t)
}

type Source string

const (
	SourceManual Source = "Manual"
	SourceUPI    Source = "UPI"
)

func (s Source) Validate() error {
	switch s {
	case SourceManual, SourceUPI:
		return nil
	}
	return fmt.Errorf("%w: unknown source %q", ErrInvalidData, string(s))
}

func (s Source) String() string {
	return string(s)
}

type AccountType string

const (
	AccountTypeUPI  AccountType = "UPI"
	AccountTypeBank AccountType = "Bank"
)

func (t AccountType) Validate() error {
	switch t {
	case AccountTypeUPI, AccountTypeBank:
		return nil
	}
	return fmt.Errorf("%w: unknown account type %q", ErrInvalidData, string(t))
}

func (t AccountType) String() string {
	return string(t)
}
