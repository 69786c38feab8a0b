package flete

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/id"
	"logiprofit/internal/core/types"
)

func dec(s string) types.Money {
	return decimal.RequireFromString(s)
}

func TestFlete_ExpenseTotals(t *testing.T) {
	f := NewFlete(id.New(), "CDMX", "Monterrey", dec("218008.09"), dec("208712.75"))

	assert.True(t, f.TotalExpenses.IsZero())
	assert.True(t, f.ActualProfit.Equal(dec("218008.09")))

	now := time.Now().UTC()
	require.NoError(t, f.AddExpense(ExpenseFuel, "diesel", dec("40150.20"), now))
	require.NoError(t, f.AddExpense(ExpenseTolls, "casetas", dec("26010.00"), now))
	require.NoError(t, f.AddExpense(ExpenseDriverPay, "", dec("7200"), now))

	assert.Len(t, f.Expenses, 3)
	assert.Equal(t, 3, f.Expenses[2].LineNo)
	assert.True(t, f.TotalExpenses.Equal(dec("73360.20")))
	assert.True(t, f.ActualProfit.Equal(dec("144647.89")))
	// 144647.89 / 218008.09 * 100
	assert.True(t, f.ActualMarginPercent.Equal(dec("66.35")), "margin = %s", f.ActualMarginPercent)
}

func TestFlete_AddExpense_Negative(t *testing.T) {
	f := NewFlete(id.New(), "CDMX", "Monterrey", dec("1000"), dec("800"))
	err := f.AddExpense(ExpenseOther, "", dec("-1"), time.Now().UTC())
	require.Error(t, err)
	assert.Len(t, f.Expenses, 0)
}

func TestFlete_ZeroPriceMargin(t *testing.T) {
	f := NewFlete(id.New(), "CDMX", "Monterrey", dec("0"), dec("0"))
	require.NoError(t, f.AddExpense(ExpenseFuel, "", dec("100"), time.Now().UTC()))
	assert.True(t, f.ActualMarginPercent.IsZero())
	assert.True(t, f.ActualProfit.Equal(dec("-100")))
}

func TestFlete_StatusMachine(t *testing.T) {
	f := NewFlete(id.New(), "CDMX", "Monterrey", dec("1000"), dec("800"))

	require.NoError(t, f.ChangeStatus(StatusInTransit))
	require.NoError(t, f.ChangeStatus(StatusDelivered))
	require.NoError(t, f.ChangeStatus(StatusClosed))

	err := f.ChangeStatus(StatusInTransit)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTransition, appErr.Code)
}

func TestFlete_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		f := NewFlete(id.New(), "CDMX", "Monterrey", dec("1000"), dec("800"))
		assert.NoError(t, f.Validate(context.Background()))
	})

	t.Run("missing client", func(t *testing.T) {
		f := NewFlete(id.Nil(), "CDMX", "Monterrey", dec("1000"), dec("800"))
		assert.Error(t, f.Validate(context.Background()))
	})

	t.Run("negative price", func(t *testing.T) {
		f := NewFlete(id.New(), "CDMX", "Monterrey", dec("-1"), dec("800"))
		assert.Error(t, f.Validate(context.Background()))
	})
}
