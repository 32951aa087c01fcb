package core

import "github.com/shopspring/decimal"

// CategoryTotal is an amount aggregated by category name.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// PeriodTotal sums the amounts of every transaction whose category equals
// category and whose date starts with prefix (a "YYYY-MM-" literal). An
// empty matching set yields exactly zero, which callers treat as "no
// activity this period".
func PeriodTotal(txs []Transaction, category, prefix string) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Category == category && hasPrefix(t.Date, prefix) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// FilterPeriod returns the transactions whose date starts with prefix,
// preserving artifact order.
func FilterPeriod(txs []Transaction, prefix string) []Transaction {
	var out []Transaction
	for _, t := range txs {
		if hasPrefix(t.Date, prefix) {
			out = append(out, t)
		}
	}
	return out
}

// TotalsByCategory aggregates the given transactions per category. Totals
// appear in first-seen order.
func TotalsByCategory(txs []Transaction, prefix string) []CategoryTotal {
	index := make(map[string]int)
	var out []CategoryTotal
	for _, t := range txs {
		if !hasPrefix(t.Date, prefix) {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryTotal{Category: t.Category})
		}
		out[i].Total = out[i].Total.Add(t.Amount)
	}
	return out
}

// AccountOf looks an account up by name. Absent means the
// transaction's account was removed from the configuration; callers must
// fall back to the budget currency instead of dereferencing blindly.
func AccountOf(accounts []Account, name string) (Account, bool) {
	for _, a := range accounts {
		if a.Name == name {
			return a, true
		}
	}
	return Account{}, false
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
