package ledger

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

const basePath = "/api/v1/tenants/{tenant}"

func (h *Handler) op(id, method, path, summary string, tags ...string) huma.Operation {
	return huma.Operation{
		OperationID: id,
		Method:      method,
		Path:        basePath + path,
		Summary:     summary,
		Tags:        tags,
		Middlewares: h.middleware,
	}
}

func (h *Handler) listTransactionsOp() huma.Operation {
	return h.op("transactions-list", http.MethodGet, "/transactions", "Список транзакций", "transactions")
}

func (h *Handler) createTransactionOp() huma.Operation {
	op := h.op("transactions-create", http.MethodPost, "/transactions", "Создать транзакцию", "transactions")
	op.DefaultStatus = http.StatusCreated
	return op
}

func (h *Handler) getTransactionOp() huma.Operation {
	return h.op("transactions-get", http.MethodGet, "/transactions/{id}", "Получить транзакцию", "transactions")
}

func (h *Handler) updateTransactionOp() huma.Operation {
	return h.op("transactions-update", http.MethodPut, "/transactions/{id}", "Обновить транзакцию", "transactions")
}

func (h *Handler) deleteTransactionOp() huma.Operation {
	return h.op("transactions-delete", http.MethodDelete, "/transactions/{id}", "Удалить транзакцию", "transactions")
}

func (h *Handler) listAccountsOp() huma.Operation {
	return h.op("accounts-list", http.MethodGet, "/accounts", "Привязанные счета", "accounts")
}

func (h *Handler) linkAccountOp() huma.Operation {
	op := h.op("accounts-link", http.MethodPost, "/accounts", "Привязать счет", "accounts")
	op.DefaultStatus = http.StatusCreated
	return op
}

func (h *Handler) unlinkAccountOp() huma.Operation {
	return h.op("accounts-unlink", http.MethodDelete, "/accounts/{id}", "Отвязать счет", "accounts")
}

func (h *Handler) listBudgetOp() huma.Operation {
	return h.op("budget-list", http.MethodGet, "/budget", "Лимиты по категориям", "budget")
}

func (h *Handler) getBudgetOp() huma.Operation {
	op := h.op("budget-get", http.MethodGet, "/budget/{category}", "Лимит категории", "budget")
	op.Description = "404, если лимит не задан. Нулевой лимит возвращается как 0.00."
	return op
}

func (h *Handler) setBudgetOp() huma.Operation {
	return h.op("budget-set", http.MethodPut, "/budget/{category}", "Задать лимит категории", "budget")
}

func (h *Handler) clearBudgetOp() huma.Operation {
	return h.op("budget-clear", http.MethodDelete, "/budget/{category}", "Снять лимит категории", "budget")
}

func (h *Handler) getProfileOp() huma.Operation {
	return h.op("profile-get", http.MethodGet, "/profile", "Профиль пользователя", "profile")
}

func (h *Handler) saveProfileOp() huma.Operation {
	return h.op("profile-save", http.MethodPut, "/profile", "Сохранить профиль", "profile")
}

func (h *Handler) insightsOp() huma.Operation {
	return h.op("insights-get", http.MethodGet, "/insights", "Итоги, расходы по категориям и выполнение бюджета", "insights")
}
