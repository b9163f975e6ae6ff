package pl

import (
	"context"
	"testing"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"github.com/de-tools/statement-atlas/pkg/services/accounts"
	"github.com/de-tools/statement-atlas/pkg/services/config"
	"github.com/de-tools/statement-atlas/pkg/services/source"
	"github.com/de-tools/statement-atlas/pkg/services/statement"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawItems(rev, cost, sga, tax float64) []domain.LineItem {
	return []domain.LineItem{
		{AccountID: AccountRevenue, AccountName: "Revenue", Value: rev, Period: "2024"},
		{AccountID: AccountCostOfSales, AccountName: "Cost of sales", Value: cost, Period: "2024"},
		{AccountID: AccountSGA, AccountName: "SG&A", Value: sga, Period: "2024"},
		{AccountID: AccountTaxes, AccountName: "Taxes", Value: tax, Period: "2024"},
	}
}

func TestCalculate_ReferenceScenario(t *testing.T) {
	rs := New(nil, nil)
	raw := rawItems(1000000, -600000, -200000, -50000)

	calculated := rs.Calculate(raw)

	require.Len(t, calculated, 7)
	assert.Equal(t, raw, calculated[:4])
	assert.Equal(t, 400000.0, statement.ValueOf(calculated, AccountGrossProfit))
	assert.Equal(t, 200000.0, statement.ValueOf(calculated, AccountOperatingIncome))
	assert.Equal(t, 150000.0, statement.ValueOf(calculated, AccountNetIncome))
	for _, item := range calculated[4:] {
		assert.Equal(t, "2024", item.Period)
	}
	assert.NoError(t, rs.Validate(calculated))
}

func TestCalculate_NetIncomeIsSumOfRawValues(t *testing.T) {
	rs := New(nil, nil)
	values := []float64{0, 1, -1, 250000, -75000.5, 1e9}

	for _, rev := range values {
		for _, cost := range values {
			for _, sga := range values {
				for _, tax := range values {
					calculated := rs.Calculate(rawItems(rev, cost, sga, tax))
					assert.InDelta(t, rev+cost+sga+tax, statement.ValueOf(calculated, AccountNetIncome), 1e-6)
				}
			}
		}
	}
}

func TestCalculate_MissingAccountsCountAsZero(t *testing.T) {
	rs := New(nil, nil)
	calculated := rs.Calculate([]domain.LineItem{
		{AccountID: AccountRevenue, Value: 500, Period: "2024"},
		{AccountID: AccountTaxes, Value: -20, Period: "2024"},
	})

	assert.Equal(t, 500.0, statement.ValueOf(calculated, AccountGrossProfit))
	assert.Equal(t, 500.0, statement.ValueOf(calculated, AccountOperatingIncome))
	assert.Equal(t, 480.0, statement.ValueOf(calculated, AccountNetIncome))
}

func TestCalculate_DoesNotMutateInput(t *testing.T) {
	raw := rawItems(10, -1, -1, -1)
	snapshot := append([]domain.LineItem(nil), raw...)

	New(nil, nil).Calculate(raw)
	assert.Equal(t, snapshot, raw)
}

func TestValidate(t *testing.T) {
	rs := New(nil, nil)

	tests := []struct {
		name  string
		items []domain.LineItem
		rule  string
	}{
		{
			name:  "missing net income",
			items: rawItems(1000, -1, -1, -1),
			rule:  "net_income_present",
		},
		{
			name:  "zero revenue",
			items: rs.Calculate(rawItems(0, -1, -1, -1)),
			rule:  "positive_revenue",
		},
		{
			name:  "negative revenue",
			items: rs.Calculate(rawItems(-10, 0, 0, 0)),
			rule:  "positive_revenue",
		},
		{
			name:  "missing revenue",
			items: rs.Calculate(nil),
			rule:  "positive_revenue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rs.Validate(tt.items)
			vErr, ok := statement.AsValidationError(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, ReportType, vErr.ReportType)
			assert.Equal(t, tt.rule, vErr.Rule)
		})
	}
}

func TestFormat_PrefixesProfitLines(t *testing.T) {
	rs := New(nil, nil)
	calculated := rs.Calculate(rawItems(1000000, -600000, -200000, -50000))

	formatted := rs.Format(calculated)

	require.Len(t, formatted, len(calculated))
	for i := range formatted {
		assert.Equal(t, calculated[i].AccountID, formatted[i].AccountID)
		assert.Equal(t, calculated[i].Value, formatted[i].Value)
	}
	assert.Equal(t, "Revenue", formatted[0].AccountName)
	assert.Equal(t, "[Profit] Gross profit", formatted[4].AccountName)
	assert.Equal(t, "[Profit] Net income", formatted[6].AccountName)
	assert.Equal(t, "Gross profit", calculated[4].AccountName)
}

func TestLoadData_NamesFromChart(t *testing.T) {
	chart := accounts.NewChart(domain.Account{ID: AccountSGA, Name: "Overheads"})
	src := source.Static(
		domain.LineItem{AccountID: AccountRevenue, AccountName: "Sales", Value: 10},
		domain.LineItem{AccountID: AccountSGA, Value: -2},
		domain.LineItem{AccountID: "OTHER", Value: 1},
	)

	items, err := New(src, chart).LoadData(context.Background(), "2024-Q3")
	require.NoError(t, err)

	want := []domain.LineItem{
		{AccountID: AccountRevenue, AccountName: "Sales", Value: 10, Period: "2024-Q3"},
		{AccountID: AccountSGA, AccountName: "Overheads", Value: -2, Period: "2024-Q3"},
		{AccountID: "OTHER", AccountName: "OTHER", Value: 1, Period: "2024-Q3"},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("LoadData() mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_ReferenceData(t *testing.T) {
	rs, err := Factory(statement.Dependencies{Source: source.NewReference(), Config: config.Default()})
	require.NoError(t, err)

	report, err := statement.Generate(context.Background(), rs, "2024-Q1")
	require.NoError(t, err)

	assert.Equal(t, ReportType, report.ReportType)
	assert.Equal(t, "2024-Q1", report.Period)
	assert.Len(t, report.Data, 7)
	// raw items sum to net income, so the total is twice net income plus gross and operating
	assert.Equal(t, 150000.0+400000+200000+150000, report.Metadata.TotalValue)
}

func TestFactory_RequiresSource(t *testing.T) {
	_, err := Factory(statement.Dependencies{})
	assert.Error(t, err)
}
