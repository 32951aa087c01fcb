package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"budget/internal/core"
)

// Required columns in every statement export. Anything else is carried
// through into Transaction.Extra untouched.
const (
	colDate     = "Date"
	colPayee    = "Payee"
	colCategory = "Category"
	colAmount   = "Amount"
)

var ErrMissingColumn = errors.New("missing required column")

// delimiter candidates, most common first. The sniffer picks whichever
// splits the header line into the most fields.
var delimiters = []rune{',', ';', '\t'}

// SniffDelimiter inspects the header line of a statement export and returns
// the field delimiter. Bank exports disagree on this, so it cannot be fixed.
func SniffDelimiter(header string) rune {
	best := delimiters[0]
	bestCount := 0
	for _, d := range delimiters {
		if n := strings.Count(header, string(d)); n > bestCount {
			best = d
			bestCount = n
		}
	}
	return best
}

// ParseStatement parses one delimited statement export into normalized
// transactions for the given account. Credit-account amounts are negated so
// that every amount means "change to the owner's net worth". Any
// unparseable amount aborts the whole file: silently coercing to zero would
// understate totals.
func ParseStatement(content string, account core.Account) ([]core.Transaction, error) {
	header, _, _ := strings.Cut(content, "\n")
	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = SniffDelimiter(header)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return []core.Transaction{}, nil // empty or header-only
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}
	for _, required := range []string{colDate, colPayee, colCategory, colAmount} {
		if !contains(headers, required) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	transactions := make([]core.Transaction, 0, len(records)-1)
	for i, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(record) {
				row[h] = strings.TrimSpace(record[j])
			}
		}

		amount, err := core.ParseAmount(row[colAmount])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if account.Kind == core.Credit {
			amount = amount.Neg()
		}

		t := core.Transaction{
			Account:  account.Name,
			Date:     row[colDate],
			Payee:    row[colPayee],
			Category: row[colCategory],
			Amount:   amount,
		}
		for h, v := range row {
			switch h {
			case colDate, colPayee, colCategory, colAmount:
			default:
				if t.Extra == nil {
					t.Extra = make(map[string]string)
				}
				t.Extra[h] = v
			}
		}
		transactions = append(transactions, t)
	}

	return transactions, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
