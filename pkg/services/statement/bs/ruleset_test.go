package bs

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"github.com/de-tools/statement-atlas/pkg/services/source"
	"github.com/de-tools/statement-atlas/pkg/services/statement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceItems() []domain.LineItem {
	return []domain.LineItem{
		{AccountID: "ASSET_CASH", AccountName: "Cash", Value: 500000, Period: "2024"},
		{AccountID: "ASSET_RECEIVABLES", AccountName: "Receivables", Value: 300000, Period: "2024"},
		{AccountID: "ASSET_PPE", AccountName: "PP&E", Value: 2000000, Period: "2024"},
		{AccountID: "LIAB_PAYABLES", AccountName: "Payables", Value: -400000, Period: "2024"},
		{AccountID: "LIAB_LONG_TERM_DEBT", AccountName: "Debt", Value: -1000000, Period: "2024"},
		{AccountID: "EQUITY_SHARE_CAPITAL", AccountName: "Capital", Value: -800000, Period: "2024"},
		{AccountID: "EQUITY_RETAINED_EARNINGS", AccountName: "Retained", Value: -600000, Period: "2024"},
	}
}

func TestCalculate_ReferenceScenario(t *testing.T) {
	rs := New(nil, nil)

	calculated := rs.Calculate(referenceItems())

	require.Len(t, calculated, 10)
	assert.Equal(t, 2800000.0, statement.ValueOf(calculated, AccountTotalAssets))
	assert.Equal(t, -1400000.0, statement.ValueOf(calculated, AccountTotalLiabilities))
	assert.Equal(t, -1400000.0, statement.ValueOf(calculated, AccountTotalEquity))
	assert.NoError(t, rs.Validate(calculated))
}

func TestCalculate_LiabilitiesAndEquityByMagnitude(t *testing.T) {
	rs := New(nil, nil)
	calculated := rs.Calculate([]domain.LineItem{
		{AccountID: "ASSET_CASH", Value: 100},
		{AccountID: "LIAB_PAYABLES", Value: 30},
		{AccountID: "EQUITY_SHARE_CAPITAL", Value: -70},
	})

	assert.Equal(t, -30.0, statement.ValueOf(calculated, AccountTotalLiabilities))
	assert.Equal(t, -70.0, statement.ValueOf(calculated, AccountTotalEquity))
	assert.NoError(t, rs.Validate(calculated))
}

func TestValidate_Perturbation(t *testing.T) {
	rs := New(nil, nil)

	tests := []struct {
		name    string
		delta   float64
		wantErr bool
	}{
		{name: "balanced", delta: 0, wantErr: false},
		{name: "within tolerance", delta: 0.005, wantErr: false},
		{name: "just above tolerance", delta: 0.02, wantErr: true},
		{name: "liability perturbed by 100", delta: 100, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := referenceItems()
			items[3].Value += tt.delta

			err := rs.Validate(rs.Calculate(items))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			vErr, ok := statement.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, "accounting_equation", vErr.Rule)
			assert.InDelta(t, tt.delta, vErr.Discrepancy, 1e-6)
		})
	}
}

func TestValidate_DiscrepancyInMessage(t *testing.T) {
	rs := New(nil, nil)
	items := referenceItems()
	items[3].Value += 100

	err := rs.Validate(rs.Calculate(items))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discrepancy 100.00")
}

func TestValidate_MissingTotals(t *testing.T) {
	err := New(nil, nil).Validate(referenceItems())
	vErr, ok := statement.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "totals_present", vErr.Rule)
}

func TestFormat_CategoryLabels(t *testing.T) {
	rs := New(nil, nil)
	calculated := rs.Calculate(append(referenceItems(), domain.LineItem{AccountID: "MEMO", AccountName: "Memo", Period: "2024"}))

	formatted := rs.Format(calculated)
	require.Len(t, formatted, len(calculated))

	labels := map[string]string{}
	for i, item := range formatted {
		assert.Equal(t, calculated[i].AccountID, item.AccountID)
		assert.Equal(t, calculated[i].Value, item.Value)
		labels[item.AccountID] = item.AccountName
	}

	assert.Equal(t, "[Asset] Cash", labels["ASSET_CASH"])
	assert.Equal(t, "[Liability] Debt", labels["LIAB_LONG_TERM_DEBT"])
	assert.Equal(t, "[Equity] Retained", labels["EQUITY_RETAINED_EARNINGS"])
	assert.True(t, strings.HasPrefix(labels[AccountTotalAssets], "[Total] "))
	assert.Equal(t, "Memo", labels["MEMO"])
}

func TestGenerate_ReferenceData(t *testing.T) {
	rs, err := Factory(statement.Dependencies{Source: source.NewReference()})
	require.NoError(t, err)

	report, err := statement.Generate(context.Background(), rs, "2024-12-31")
	require.NoError(t, err)
	assert.Len(t, report.Data, 10)
	assert.InDelta(t, 0, report.Metadata.TotalValue, 1e-9)
}

func TestGenerate_Unbalanced(t *testing.T) {
	items := referenceItems()
	items[0].Value += 250
	rs := New(source.Static(items...), nil)

	report, err := statement.Generate(context.Background(), rs, "2024")
	assert.Nil(t, report)

	vErr, ok := statement.AsValidationError(err)
	require.True(t, ok)
	assert.InDelta(t, 250, vErr.Discrepancy, 1e-9)
}

func TestCalculate_EmptyCategoriesArePositiveZero(t *testing.T) {
	calculated := New(nil, nil).Calculate([]domain.LineItem{
		{AccountID: "ASSET_CASH", Value: 0, Period: "2024-Q1"},
	})

	for _, id := range []string{AccountTotalAssets, AccountTotalLiabilities, AccountTotalEquity} {
		item, ok := statement.Find(calculated, id)
		require.True(t, ok, id)
		assert.False(t, math.Signbit(item.Value), id)
		assert.Equal(t, "2024-Q1", item.Period, id)
	}

	body, err := json.Marshal(calculated)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "-0")
}

func TestGenerate_EmptyLedger(t *testing.T) {
	ledger, err := source.ParseFile(strings.NewReader("periods:\n  2024-Q1:\n    BS: []\n"))
	require.NoError(t, err)

	report, err := statement.Generate(context.Background(), New(ledger, nil), "2024-Q1")
	assert.Nil(t, report)
	assert.ErrorIs(t, err, source.ErrNoData)
}

func TestGenerate_LedgerShadowingTotal(t *testing.T) {
	rs := New(source.Static(
		domain.LineItem{AccountID: "ASSET_CASH", Value: 100},
		domain.LineItem{AccountID: "LIAB_X", Value: -100},
		domain.LineItem{AccountID: AccountTotalAssets, Value: 999},
	), nil)

	report, err := statement.Generate(context.Background(), rs, "2024-Q1")
	assert.Nil(t, report)
	assert.ErrorIs(t, err, statement.ErrContractViolation)
	_, isValidation := statement.AsValidationError(err)
	assert.False(t, isValidation)
}
