package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"budget/internal/core"
)

// Budget is the declarative document driving both the ingestion pipeline and
// the dashboard: the account declarations and the group taxonomy. Loaded
// once at startup and passed down; there is no hot reload.
type Budget struct {
	Accounts []core.Account
	Taxonomy *core.Taxonomy
}

type accountSpec struct {
	Type     string   `json:"type"`
	Currency string   `json:"currency"`
	Files    []string `json:"files"`
}

type categorySpec struct {
	Icon   string `json:"icon"`
	Income bool   `json:"income"`
}

// LoadBudget reads and validates the budget document at path. JSON object
// order is significant here: accounts are ingested in declaration order and
// group resolution is first-match, so both objects are decoded token-wise
// instead of through a map.
func LoadBudget(path string) (*Budget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read budget config: %w", err)
	}
	return ParseBudget(data)
}

// ParseBudget parses a budget document from raw JSON.
func ParseBudget(data []byte) (*Budget, error) {
	var doc struct {
		Accounts json.RawMessage `json:"accounts"`
		Budget   struct {
			Currency string          `json:"currency"`
			Groups   json.RawMessage `json:"groups"`
		} `json:"budget"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse budget config: %w", err)
	}

	b := &Budget{}

	err := eachKey(doc.Accounts, func(name string, dec *json.Decoder) error {
		var spec accountSpec
		if err := dec.Decode(&spec); err != nil {
			return fmt.Errorf("account %q: %w", name, err)
		}
		account := core.Account{
			Name:     name,
			Kind:     core.AccountKind(spec.Type),
			Currency: spec.Currency,
			Files:    spec.Files,
		}
		if err := account.Validate(); err != nil {
			return err
		}
		b.Accounts = append(b.Accounts, account)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse accounts: %w", err)
	}
	if len(b.Accounts) == 0 {
		return nil, fmt.Errorf("budget config declares no accounts")
	}

	var groups []core.Group
	err = eachKey(doc.Budget.Groups, func(groupName string, dec *json.Decoder) error {
		group := core.Group{
			Name:  groupName,
			Specs: make(map[string]core.CategorySpec),
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("group %q: %w", groupName, err)
		}
		err := eachKey(raw, func(category string, dec *json.Decoder) error {
			var spec categorySpec
			if err := dec.Decode(&spec); err != nil {
				return fmt.Errorf("category %q: %w", category, err)
			}
			group.Categories = append(group.Categories, category)
			group.Specs[category] = core.CategorySpec{Icon: spec.Icon, Income: spec.Income}
			return nil
		})
		if err != nil {
			return fmt.Errorf("group %q: %w", groupName, err)
		}
		groups = append(groups, group)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse groups: %w", err)
	}

	b.Taxonomy = core.NewTaxonomy(doc.Budget.Currency, groups)
	return b, nil
}

// eachKey walks a JSON object's keys in document order, handing the decoder
// to fn positioned at each value. encoding/json maps lose key order, which
// would break account iteration order and first-match group resolution.
func eachKey(raw json.RawMessage, fn func(key string, dec *json.Decoder) error) error {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key, dec); err != nil {
			return err
		}
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
