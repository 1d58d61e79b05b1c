package tenant

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"smartmoney/internal/domain/tenant"
)

type MockRenamer struct {
	mock.Mock
}

func (m *MockRenamer) Rename(ctx context.Context, oldID, newID string) error {
	return m.Called(ctx, oldID, newID).Error(0)
}

func TestHandler_rename(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "Success", err: nil, status: http.StatusOK},
		{name: "Conflict", err: tenant.ErrRenameConflict, status: http.StatusConflict},
		{name: "Same tenant", err: tenant.ErrSameTenant, status: http.StatusBadRequest},
		{
			name: "Failure",
			err: &tenant.RenameError{
				OldID: "alice", NewID: "alicia", Step: tenant.StepImport, Residual: true, Err: errors.New("disk full"),
			},
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			renamer := new(MockRenamer)
			h := NewHandler(renamer, slog.Default(), nil)
			renamer.On("Rename", ctx, "alice", "alicia").Return(tt.err)

			input := &renameInput{Tenant: "alice"}
			input.Body.NewTenant = "alicia"
			out, err := h.rename(ctx, input)

			if tt.status == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, "alicia", out.Body.Tenant)
				return
			}
			var se huma.StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.GetStatus())
			renamer.AssertExpectations(t)
		})
	}
}
