// Package accounting holds the pure arithmetic used by the cashbook. All
// amounts are decimals; nothing here ever passes through a float.
package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
)

// Aggregate folds ledger entries into income, expense and profit totals.
// Unknown kinds contribute to neither side. The result does not depend on
// entry order, and feeding the same slice twice yields the same totals.
func Aggregate(entries []domain.LedgerEntry) domain.AggregateTotals {
	inputs := make([]domain.AggregateInput, 0, len(entries))
	for _, e := range entries {
		inputs = append(inputs, domain.AggregateInput{Kind: e.Kind, Amount: e.Amount})
	}
	return AggregateInputs(inputs)
}

// AggregateInputs is the projection-level variant of Aggregate for callers
// that only fetched kind and amount.
func AggregateInputs(inputs []domain.AggregateInput) domain.AggregateTotals {
	income := decimal.Zero
	expense := decimal.Zero

	for _, in := range inputs {
		switch in.Kind {
		case domain.Income:
			income = income.Add(in.Amount)
		case domain.Expense:
			expense = expense.Add(in.Amount)
		}
	}

	return domain.AggregateTotals{
		Income:  income,
		Expense: expense,
		Profit:  income.Sub(expense),
	}
}
