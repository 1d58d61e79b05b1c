package ledger

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"

	"smartmoney/internal/domain/finance"
	"smartmoney/internal/domain/ledger"
)

type Handler struct {
	service    ledger.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service ledger.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listTransactionsOp(), h.listTransactions)
	huma.Register(api, h.createTransactionOp(), h.createTransaction)
	huma.Register(api, h.getTransactionOp(), h.getTransaction)
	huma.Register(api, h.updateTransactionOp(), h.updateTransaction)
	huma.Register(api, h.deleteTransactionOp(), h.deleteTransaction)

	huma.Register(api, h.listAccountsOp(), h.listAccounts)
	huma.Register(api, h.linkAccountOp(), h.linkAccount)
	huma.Register(api, h.unlinkAccountOp(), h.unlinkAccount)

	huma.Register(api, h.listBudgetOp(), h.listBudget)
	huma.Register(api, h.getBudgetOp(), h.getBudget)
	huma.Register(api, h.setBudgetOp(), h.setBudget)
	huma.Register(api, h.clearBudgetOp(), h.clearBudget)

	huma.Register(api, h.getProfileOp(), h.getProfile)
	huma.Register(api, h.saveProfileOp(), h.saveProfile)

	huma.Register(api, h.insightsOp(), h.insights)
}

func (h *Handler) listTransactions(ctx context.Context, input *listTransactionsInput) (*listTransactionsOutput, error) {
	filter, err := input.filter()
	if err != nil {
		return nil, toHTTPError(err)
	}

	txs, err := h.service.ListTransactions(ctx, input.scope(), filter)
	if err != nil {
		return nil, toHTTPError(err)
	}

	out := &listTransactionsOutput{}
	out.Body.Transactions = make([]transactionBody, 0, len(txs))
	for _, tx := range txs {
		out.Body.Transactions = append(out.Body.Transactions, newTransactionBody(tx))
	}
	return out, nil
}

func (h *Handler) createTransaction(ctx context.Context, input *createTransactionInput) (*transactionOutput, error) {
	tx, err := input.Body.toModel()
	if err != nil {
		return nil, toHTTPError(err)
	}

	created, err := h.service.AddTransaction(ctx, input.scope(), tx)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &transactionOutput{Body: newTransactionBody(created)}, nil
}

func (h *Handler) getTransaction(ctx context.Context, input *transactionIDInput) (*transactionOutput, error) {
	tx, err := h.service.GetTransaction(ctx, input.scope(), input.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &transactionOutput{Body: newTransactionBody(tx)}, nil
}

// updateTransaction перезаписывает транзакцию целиком. ID берется из пути.
func (h *Handler) updateTransaction(ctx context.Context, input *updateTransactionInput) (*transactionOutput, error) {
	tx, err := input.Body.toModel()
	if err != nil {
		return nil, toHTTPError(err)
	}
	tx.ID = input.ID
	if tx.Source == "" {
		tx.Source = finance.SourceManual
	}

	if err := h.service.UpdateTransaction(ctx, input.scope(), tx); err != nil {
		return nil, toHTTPError(err)
	}
	return &transactionOutput{Body: newTransactionBody(tx)}, nil
}

func (h *Handler) deleteTransaction(ctx context.Context, input *transactionIDInput) (*statusOutput, error) {
	if err := h.service.DeleteTransaction(ctx, input.scope(), input.ID); err != nil {
		return nil, toHTTPError(err)
	}
	return okStatus(), nil
}

func (h *Handler) listAccounts(ctx context.Context, input *TenantScope) (*listAccountsOutput, error) {
	accounts, err := h.service.ListAccounts(ctx, input.scope())
	if err != nil {
		return nil, toHTTPError(err)
	}

	out := &listAccountsOutput{}
	out.Body.Accounts = make([]accountBody, 0, len(accounts))
	for _, acc := range accounts {
		out.Body.Accounts = append(out.Body.Accounts, newAccountBody(acc))
	}
	return out, nil
}

func (h *Handler) linkAccount(ctx context.Context, input *linkAccountInput) (*accountOutput, error) {
	acc, err := h.service.LinkAccount(ctx, input.scope(), input.Body.toModel())
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &accountOutput{Body: newAccountBody(acc)}, nil
}

func (h *Handler) unlinkAccount(ctx context.Context, input *accountIDInput) (*statusOutput, error) {
	if err := h.service.UnlinkAccount(ctx, input.scope(), input.ID); err != nil {
		return nil, toHTTPError(err)
	}
	return okStatus(), nil
}

func (h *Handler) listBudget(ctx context.Context, input *TenantScope) (*listBudgetOutput, error) {
	entries, err := h.service.ListBudget(ctx, input.scope())
	if err != nil {
		return nil, toHTTPError(err)
	}

	out := &listBudgetOutput{}
	out.Body.Budget = make([]budgetBody, 0, len(entries))
	for _, e := range entries {
		out.Body.Budget = append(out.Body.Budget, newBudgetBody(e))
	}
	return out, nil
}

func (h *Handler) getBudget(ctx context.Context, input *budgetCategoryInput) (*budgetOutput, error) {
	entry, err := h.service.GetBudget(ctx, input.scope(), finance.Category(input.Category))
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &budgetOutput{Body: newBudgetBody(entry)}, nil
}

func (h *Handler) setBudget(ctx context.Context, input *setBudgetInput) (*budgetOutput, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.Error400BadRequest("amount is not a number")
	}

	entry := finance.BudgetEntry{Category: finance.Category(input.Category), Amount: amount}
	if err := h.service.SetBudget(ctx, input.scope(), entry); err != nil {
		return nil, toHTTPError(err)
	}
	return &budgetOutput{Body: newBudgetBody(entry)}, nil
}

func (h *Handler) clearBudget(ctx context.Context, input *budgetCategoryInput) (*statusOutput, error) {
	if err := h.service.ClearBudget(ctx, input.scope(), finance.Category(input.Category)); err != nil {
		return nil, toHTTPError(err)
	}
	return okStatus(), nil
}

func (h *Handler) getProfile(ctx context.Context, input *TenantScope) (*profileOutput, error) {
	p, err := h.service.GetProfile(ctx, input.scope())
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &profileOutput{Body: profileBody(p)}, nil
}

func (h *Handler) saveProfile(ctx context.Context, input *saveProfileInput) (*profileOutput, error) {
	p := finance.Profile{
		Username: input.Tenant,
		FullName: input.Body.FullName,
		Bio:      input.Body.Bio,
		Avatar:   input.Body.Avatar,
	}
	if err := h.service.SaveProfile(ctx, input.scope(), p); err != nil {
		return nil, toHTTPError(err)
	}
	return &profileOutput{Body: profileBody(p)}, nil
}

func (h *Handler) insights(ctx context.Context, input *insightsInput) (*insightsOutput, error) {
	month, err := parseMonth(input.Month)
	if err != nil {
		return nil, toHTTPError(err)
	}

	res, err := h.service.Insights(ctx, input.scope(), month)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &insightsOutput{Body: newInsightsBody(res)}, nil
}
