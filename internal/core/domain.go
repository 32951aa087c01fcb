package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Debit  AccountKind = "debit"
	Credit AccountKind = "credit"
)

type (
	AccountKind string

	// Account is a declared source of transactions. Kind decides the sign
	// convention applied on ingest: credit statements report charges as
	// positive amounts owed, while the ledger convention is negative = money
	// spent.
	Account struct {
		Name     string
		Kind     AccountKind
		Currency string
		Files    []string
	}

	// Transaction is one normalized ledger entry. Immutable once produced by
	// the ingestion pipeline. Amount already carries the account's sign
	// convention. Extra holds source columns beyond the required four; they
	// ride along in the artifact unchanged.
	Transaction struct {
		Account  string
		Date     string // YYYY-MM-DD, lexically sortable
		Payee    string
		Category string
		Amount   decimal.Decimal
		Extra    map[string]string
	}

	// Period is the dashboard's year+month selection. Owned by the
	// presentation layer and passed by value into queries.
	Period struct {
		Year  int
		Month int // 1-12
	}
)

var (
	ErrUnknownAccountKind = errors.New("unknown account kind")
	ErrInvalidAmount      = errors.New("invalid amount")
)

func (k AccountKind) Valid() bool {
	return k == Debit || k == Credit
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("account name cannot be empty")
	}
	if !a.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAccountKind, a.Kind)
	}
	if len(a.Files) == 0 {
		return fmt.Errorf("account %q has no source files", a.Name)
	}
	return nil
}

// CurrentPeriod returns the period containing now.
func CurrentPeriod(now time.Time) Period {
	return Period{Year: now.Year(), Month: int(now.Month())}
}

// Prefix returns the literal year-month prefix matched against transaction
// dates, e.g. "2024-03-". Relies on zero-padded ISO date strings.
func (p Period) Prefix() string {
	return fmt.Sprintf("%04d-%02d-", p.Year, p.Month)
}

func (p Period) Valid() bool {
	return p.Year > 0 && p.Month >= 1 && p.Month <= 12
}

// Previous returns the period one month earlier.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Next returns the period one month later.
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Year: p.Year + 1, Month: 1}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// MarshalJSON writes the fixed artifact fields in a stable order, followed by
// any extra source columns sorted by name. Stable output keeps re-runs of the
// ingestion pipeline byte-identical on unchanged inputs.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	writeString := func(name, value string) error {
		if b.Len() > 1 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
		return nil
	}
	if err := writeString("Account", t.Account); err != nil {
		return nil, err
	}
	if err := writeString("Date", t.Date); err != nil {
		return nil, err
	}
	if err := writeString("Payee", t.Payee); err != nil {
		return nil, err
	}
	if err := writeString("Category", t.Category); err != nil {
		return nil, err
	}
	b.WriteString(`,"Amount":`)
	b.WriteString(t.Amount.StringFixed(2))
	extras := make([]string, 0, len(t.Extra))
	for k := range t.Extra {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	for _, k := range extras {
		if err := writeString(k, t.Extra[k]); err != nil {
			return nil, err
		}
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON is the inverse of MarshalJSON: fixed fields by name, anything
// else into Extra.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	str := func(key string) (string, error) {
		msg, ok := raw[key]
		if !ok {
			return "", nil
		}
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return "", fmt.Errorf("field %s: %w", key, err)
		}
		delete(raw, key)
		return s, nil
	}
	var err error
	if t.Account, err = str("Account"); err != nil {
		return err
	}
	if t.Date, err = str("Date"); err != nil {
		return err
	}
	if t.Payee, err = str("Payee"); err != nil {
		return err
	}
	if t.Category, err = str("Category"); err != nil {
		return err
	}
	if msg, ok := raw["Amount"]; ok {
		amount, err := decimal.NewFromString(strings.Trim(string(msg), `"`))
		if err != nil {
			return fmt.Errorf("field Amount: %w", err)
		}
		t.Amount = amount
		delete(raw, "Amount")
	}
	if len(raw) > 0 {
		t.Extra = make(map[string]string, len(raw))
		for k, msg := range raw {
			var s string
			if err := json.Unmarshal(msg, &s); err != nil {
				return fmt.Errorf("extra field %s: %w", k, err)
			}
			t.Extra[k] = s
		}
	}
	return nil
}
