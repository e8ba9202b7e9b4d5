package customers

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine is one balance movement as stored.
type StatementLine struct {
	Kind        string          `json:"kind"`
	Reference   string          `json:"reference"`
	Date        time.Time       `json:"date"`
	Delta       decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// StatementEntry is a movement with the balance after it was applied.
type StatementEntry struct {
	StatementLine
	Balance decimal.Decimal `json:"balance"`
}

// Statement lists a customer's movements with a running balance.
type Statement struct {
	Customer       Customer         `json:"customer"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	Entries        []StatementEntry `json:"entries"`
	ClosingBalance decimal.Decimal  `json:"closingBalance"`
}

// BuildStatement derives the running balance backwards from the customer's
// current balance, so the opening balance absorbs any amount entered at creation.
func BuildStatement(customer Customer, lines []StatementLine) Statement {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Delta)
	}
	opening := customer.Balance.Sub(total)

	entries := make([]StatementEntry, 0, len(lines))
	running := opening
	for _, l := range lines {
		running = running.Add(l.Delta)
		entries = append(entries, StatementEntry{StatementLine: l, Balance: running})
	}
	return Statement{
		Customer:       customer,
		OpeningBalance: opening,
		Entries:        entries,
		ClosingBalance: customer.Balance,
	}
}
