package statement

import (
	"testing"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestItemHelpers(t *testing.T) {
	items := []domain.LineItem{
		{AccountID: "A", AccountName: "a", Value: 1.5, Period: "P"},
		{AccountID: "B", AccountName: "b", Value: -0.5, Period: "P"},
	}

	item, ok := Find(items, "B")
	assert.True(t, ok)
	assert.Equal(t, -0.5, item.Value)

	_, ok = Find(items, "C")
	assert.False(t, ok)
	assert.Equal(t, 0.0, ValueOf(items, "C"))

	assert.Equal(t, 1.0, Sum(items))
	assert.Equal(t, 1.5, SumWhere(items, func(li domain.LineItem) bool { return li.Value > 0 }))
	assert.Equal(t, "P", BatchPeriod(items))
	assert.Equal(t, "", BatchPeriod(nil))
}

func TestExtend_DoesNotShareBackingArray(t *testing.T) {
	base := make([]domain.LineItem, 1, 4)
	base[0] = domain.LineItem{AccountID: "A"}

	first := Extend(base, domain.LineItem{AccountID: "X"})
	second := Extend(base, domain.LineItem{AccountID: "Y"})

	assert.Equal(t, "X", first[1].AccountID)
	assert.Equal(t, "Y", second[1].AccountID)
}

func TestRelabel_CopiesItems(t *testing.T) {
	items := []domain.LineItem{{AccountID: "A", AccountName: "a"}}
	out := Relabel(items, func(li domain.LineItem) string { return "[x] " + li.AccountName })

	assert.Equal(t, "[x] a", out[0].AccountName)
	assert.Equal(t, "a", items[0].AccountName)
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(0))
	assert.True(t, WithinTolerance(-0.01))
	assert.False(t, WithinTolerance(0.011))
	assert.False(t, WithinTolerance(-100))
}

func TestDuplicateID(t *testing.T) {
	_, dup := DuplicateID(nil)
	assert.False(t, dup)

	_, dup = DuplicateID([]domain.LineItem{{AccountID: "A"}, {AccountID: "B"}})
	assert.False(t, dup)

	id, dup := DuplicateID([]domain.LineItem{{AccountID: "A"}, {AccountID: "B"}, {AccountID: "A"}})
	assert.True(t, dup)
	assert.Equal(t, "A", id)
}
