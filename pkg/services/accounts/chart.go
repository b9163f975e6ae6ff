// Package accounts holds the read-only chart of accounts used to name line items.
package accounts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

type Lookup interface {
	// Name returns the account name for id, or fallback when unknown
	Name(id, fallback string) string
	// Accounts returns every account ordered by id
	Accounts() []domain.Account
}

// Chart is an immutable chart of accounts
type Chart struct {
	accounts map[string]domain.Account
}

func NewChart(accounts ...domain.Account) *Chart {
	c := &Chart{accounts: make(map[string]domain.Account, len(accounts))}
	for _, acc := range accounts {
		c.accounts[acc.ID] = acc
	}
	return c
}

// DefaultChart names every account the built-in rule-sets read or derive.
func DefaultChart() *Chart {
	return NewChart(
		domain.Account{ID: "REV", Name: "Revenue", Category: domain.AccountCategoryRevenue},
		domain.Account{ID: "COST", Name: "Cost of sales", Category: domain.AccountCategoryExpense},
		domain.Account{ID: "SGA", Name: "Selling, general and administrative expenses", Category: domain.AccountCategoryExpense},
		domain.Account{ID: "TAX", Name: "Income taxes", Category: domain.AccountCategoryExpense},
		domain.Account{ID: "GROSS_PROFIT", Name: "Gross profit", Category: domain.AccountCategoryTotal},
		domain.Account{ID: "OPERATING_INCOME", Name: "Operating income", Category: domain.AccountCategoryTotal},
		domain.Account{ID: "NET_INCOME", Name: "Net income", Category: domain.AccountCategoryTotal},
		domain.Account{ID: "ASSET_CASH", Name: "Cash and equivalents", Category: domain.AccountCategoryAsset},
		domain.Account{ID: "ASSET_RECEIVABLES", Name: "Accounts receivable", Category: domain.AccountCategoryAsset},
		domain.Account{ID: "ASSET_PPE", Name: "Property, plant and equipment", Category: domain.AccountCategoryAsset},
		domain.Account{ID: "LIAB_PAYABLES", Name: "Accounts payable", Category: domain.AccountCategoryLiability},
		domain.Account{ID: "LIAB_LONG_TERM_DEBT", Name: "Long-term debt", Category: domain.AccountCategoryLiability},
		domain.Account{ID: "EQUITY_SHARE_CAPITAL", Name: "Share capital", Category: domain.AccountCategoryEquity},
		domain.Account{ID: "EQUITY_RETAINED_EARNINGS", Name: "Retained earnings", Category: domain.AccountCategoryEquity},
		domain.Account{ID: "TOTAL_ASSETS", Name: "Total assets", Category: domain.AccountCategoryTotal},
		domain.Account{ID: "TOTAL_LIABILITIES", Name: "Total liabilities", Category: domain.AccountCategoryTotal},
		domain.Account{ID: "TOTAL_EQUITY", Name: "Total equity", Category: domain.AccountCategoryTotal},
		domain.Account{ID: "CFO", Name: "Net cash from operating activities", Category: domain.AccountCategoryCashFlow},
		domain.Account{ID: "CFI", Name: "Net cash from investing activities", Category: domain.AccountCategoryCashFlow},
		domain.Account{ID: "CFF", Name: "Net cash from financing activities", Category: domain.AccountCategoryCashFlow},
		domain.Account{ID: "BEGINNING_CASH", Name: "Cash at beginning of period", Category: domain.AccountCategoryTotal},
		domain.Account{ID: "NET_INCREASE", Name: "Net increase in cash", Category: domain.AccountCategoryTotal},
		domain.Account{ID: "ENDING_CASH", Name: "Cash at end of period", Category: domain.AccountCategoryTotal},
	)
}

// LoadChart reads a chart of accounts from an INI file. Each section is an
// account id with "name" and "category" keys.
func LoadChart(path string) (*Chart, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	return chartFromINI(cfg)
}

// ParseChart is LoadChart for in-memory INI data
func ParseChart(data []byte) (*Chart, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart of accounts: %w", err)
	}
	return chartFromINI(cfg)
}

func chartFromINI(cfg *ini.File) (*Chart, error) {
	var accounts []domain.Account
	for _, section := range cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}

		name := strings.TrimSpace(section.Key("name").String())
		if name == "" {
			return nil, fmt.Errorf("account %s has no name", section.Name())
		}
		accounts = append(accounts, domain.Account{
			ID:       section.Name(),
			Name:     name,
			Category: domain.AccountCategory(strings.ToLower(section.Key("category").String())),
		})
	}
	return NewChart(accounts...), nil
}

func (c *Chart) Name(id, fallback string) string {
	if acc, ok := c.accounts[id]; ok && acc.Name != "" {
		return acc.Name
	}
	return fallback
}

func (c *Chart) Accounts() []domain.Account {
	out := make([]domain.Account, 0, len(c.accounts))
	for _, acc := range c.accounts {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
