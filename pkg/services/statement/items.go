package statement

import (
	"math"
	"slices"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
)

// Find returns the first item with the given account id.
func Find(items []domain.LineItem, accountID string) (domain.LineItem, bool) {
	for _, item := range items {
		if item.AccountID == accountID {
			return item, true
		}
	}
	return domain.LineItem{}, false
}

// ValueOf returns the value of accountID, or 0 when it is absent.
func ValueOf(items []domain.LineItem, accountID string) float64 {
	item, _ := Find(items, accountID)
	return item.Value
}

func Sum(items []domain.LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Value
	}
	return total
}

// SumWhere adds the values of the items accepted by match.
func SumWhere(items []domain.LineItem, match func(domain.LineItem) bool) float64 {
	total := 0.0
	for _, item := range items {
		if match(item) {
			total += item.Value
		}
	}
	return total
}

// BatchPeriod is the period shared by a stage's items.
func BatchPeriod(items []domain.LineItem) string {
	if len(items) == 0 {
		return ""
	}
	return items[0].Period
}

// DuplicateID returns the first account id that occurs more than once.
func DuplicateID(items []domain.LineItem) (string, bool) {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.AccountID]; ok {
			return item.AccountID, true
		}
		seen[item.AccountID] = struct{}{}
	}
	return "", false
}

// Extend returns a new list holding items followed by derived.
func Extend(items []domain.LineItem, derived ...domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items)+len(derived))
	out = append(out, items...)
	return append(out, derived...)
}

// Relabel returns a copy of items with AccountName replaced by label(item).
func Relabel(items []domain.LineItem, label func(domain.LineItem) string) []domain.LineItem {
	out := slices.Clone(items)
	for i := range out {
		out[i].AccountName = label(out[i])
	}
	return out
}

func WithinTolerance(diff float64) bool {
	return math.Abs(diff) <= Tolerance
}
