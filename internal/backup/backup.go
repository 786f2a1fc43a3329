// Package backup converts an AppState to and from the portable backup
// document: a JSON object with exactly the keys transactions, clients and
// opportunities, each an array of records.
//
// Import is fail-closed on shape and permissive on records. A document that
// lacks a collection is rejected; a record with a wrong-typed field is kept
// with that field zeroed or coerced, and the coercion is reported as a
// Warning. ImportOptions.Strict turns every warning and every record
// validation failure into a rejection.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/alexanderramin/bizbook/internal/domain"
)

// ImportOptions controls how strictly records are checked.
type ImportOptions struct {
	// Strict rejects documents with coerced fields or records that fail
	// domain validation.
	Strict bool
}

// Result is a decoded backup document. It is not applied to anything.
type Result struct {
	State    domain.AppState
	Warnings []Warning
}

// Export encodes state as an indented backup document.
func Export(state domain.AppState) ([]byte, error) {
	data, err := json.MarshalIndent(state.Normalize(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}
	return append(data, '\n'), nil
}

// Import decodes a backup document. Any shape problem returns an error
// wrapping domain.ErrValidation and no state.
func Import(data []byte, opts ImportOptions) (*Result, error) {
	raw, err := domain.SplitCollections(data)
	if err != nil {
		return nil, err
	}

	d := &decoder{}
	state := domain.EmptyState()
	if state.Transactions, err = decodeCollection(d, domain.KeyTransactions, raw[domain.KeyTransactions], decodeTransaction); err != nil {
		return nil, err
	}
	if state.Clients, err = decodeCollection(d, domain.KeyClients, raw[domain.KeyClients], decodeClient); err != nil {
		return nil, err
	}
	if state.Opportunities, err = decodeCollection(d, domain.KeyOpportunities, raw[domain.KeyOpportunities], decodeOpportunity); err != nil {
		return nil, err
	}
	var extra []string
	for key := range raw {
		if !isCollectionKey(key) {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		d.warn(key, "unknown top-level key ignored")
	}

	if opts.Strict {
		if errs := strictErrors(state, d.warnings); len(errs) > 0 {
			return nil, domain.JoinValidation(errs)
		}
	}
	return &Result{State: state, Warnings: d.warnings}, nil
}

// ReadFile reads and decodes a backup document from path.
func ReadFile(path string, opts ImportOptions) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading backup file: %w", err)
	}
	return Import(data, opts)
}

// WriteFile exports state to path, replacing any existing file.
func WriteFile(path string, state domain.AppState) error {
	data, err := Export(state)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing backup file: %w", err)
	}
	return nil
}

func isCollectionKey(key string) bool {
	for _, k := range domain.CollectionKeys {
		if k == key {
			return true
		}
	}
	return false
}
