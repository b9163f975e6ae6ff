package domain

type AccountCategory string

const (
	AccountCategoryRevenue   AccountCategory = "revenue"
	AccountCategoryExpense   AccountCategory = "expense"
	AccountCategoryAsset     AccountCategory = "asset"
	AccountCategoryLiability AccountCategory = "liability"
	AccountCategoryEquity    AccountCategory = "equity"
	AccountCategoryCashFlow  AccountCategory = "cash_flow"
	AccountCategoryTotal     AccountCategory = "total"
)

// Account is an entry of the chart of accounts
type Account struct {
	ID       string
	Name     string
	Category AccountCategory
}
