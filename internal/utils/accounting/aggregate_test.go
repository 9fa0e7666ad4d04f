package accounting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
)

func entry(kind domain.EntryKind, amount int64, day int) domain.LedgerEntry {
	return domain.LedgerEntry{
		Kind:       kind,
		Amount:     decimal.NewFromInt(amount),
		OccurredAt: time.Date(2024, time.January, day, 12, 0, 0, 0, time.UTC),
	}
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil)

	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expense.IsZero())
	assert.True(t, totals.Profit.IsZero())
}

func TestAggregateMixedEntries(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry(domain.Income, 100000, 10),
		entry(domain.Expense, 30000, 10),
		entry(domain.Income, 50000, 11),
	}

	totals := Aggregate(entries)

	assert.True(t, totals.Income.Equal(decimal.NewFromInt(150000)), "income %s", totals.Income)
	assert.True(t, totals.Expense.Equal(decimal.NewFromInt(30000)), "expense %s", totals.Expense)
	assert.True(t, totals.Profit.Equal(decimal.NewFromInt(120000)), "profit %s", totals.Profit)
}

func TestAggregateSingleDaySubset(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry(domain.Income, 100000, 10),
		entry(domain.Expense, 30000, 10),
	}

	totals := Aggregate(entries)

	assert.True(t, totals.Income.Equal(decimal.NewFromInt(100000)))
	assert.True(t, totals.Expense.Equal(decimal.NewFromInt(30000)))
	assert.True(t, totals.Profit.Equal(decimal.NewFromInt(70000)))
}

func TestAggregateOrderIndependent(t *testing.T) {
	forward := []domain.LedgerEntry{
		entry(domain.Income, 100000, 10),
		entry(domain.Expense, 30000, 10),
		entry(domain.Income, 50000, 11),
	}
	reversed := []domain.LedgerEntry{forward[2], forward[1], forward[0]}

	a := Aggregate(forward)
	b := Aggregate(reversed)

	assert.True(t, a.Income.Equal(b.Income))
	assert.True(t, a.Expense.Equal(b.Expense))
	assert.True(t, a.Profit.Equal(b.Profit))
}

func TestAggregateIdempotent(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry(domain.Income, 250, 3),
		entry(domain.Expense, 100, 4),
	}

	first := Aggregate(entries)
	second := Aggregate(entries)

	assert.True(t, first.Income.Equal(second.Income))
	assert.True(t, first.Expense.Equal(second.Expense))
	assert.True(t, first.Profit.Equal(second.Profit))
}

func TestAggregateProfitIdentity(t *testing.T) {
	entries := []domain.LedgerEntry{
		entry(domain.Income, 12345, 1),
		entry(domain.Expense, 678, 2),
		entry(domain.Expense, 9000, 3),
		entry(domain.Income, 1, 4),
	}

	totals := Aggregate(entries)

	assert.True(t, totals.Profit.Equal(totals.Income.Sub(totals.Expense)))
}

func TestAggregateExactDecimals(t *testing.T) {
	// Classic float trap: 0.1 + 0.2 must come out as exactly 0.3.
	inputs := []domain.AggregateInput{
		{Kind: domain.Income, Amount: decimal.RequireFromString("0.1")},
		{Kind: domain.Income, Amount: decimal.RequireFromString("0.2")},
	}

	totals := AggregateInputs(inputs)

	assert.True(t, totals.Income.Equal(decimal.RequireFromString("0.3")), "income %s", totals.Income)
}

func TestAggregateInputsIgnoresUnknownKind(t *testing.T) {
	inputs := []domain.AggregateInput{
		{Kind: domain.Income, Amount: decimal.NewFromInt(10)},
		{Kind: domain.EntryKind("TRANSFER"), Amount: decimal.NewFromInt(99)},
	}

	totals := AggregateInputs(inputs)

	assert.True(t, totals.Income.Equal(decimal.NewFromInt(10)))
	assert.True(t, totals.Expense.IsZero())
	assert.True(t, totals.Profit.Equal(decimal.NewFromInt(10)))
}
