package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// ValidateTransaction checks a single transaction record and returns every
// problem found. The sign of Amount must agree with Type.
func ValidateTransaction(prefix string, t Transaction) []error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, fmt.Errorf("%s.id is required", prefix))
	}
	if strings.TrimSpace(t.Description) == "" {
		errs = append(errs, fmt.Errorf("%s.description is required", prefix))
	}
	if _, err := ParseDate(t.Date); err != nil {
		errs = append(errs, fmt.Errorf("%s.date: invalid date %q (expected YYYY-MM-DD)", prefix, t.Date))
	}
	switch t.Type {
	case TypeRevenue:
		if t.Amount.IsNegative() {
			errs = append(errs, fmt.Errorf("%s.amount %s must not be negative for revenue", prefix, t.Amount))
		}
	case TypeExpense:
		if t.Amount.Sign() > 0 {
			errs = append(errs, fmt.Errorf("%s.amount %s must not be positive for an expense", prefix, t.Amount))
		}
	default:
		errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, t.Type))
	}
	return errs
}

// ValidateClient checks a single client record.
func ValidateClient(prefix string, c Client) []error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, fmt.Errorf("%s.id is required", prefix))
	}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			errs = append(errs, fmt.Errorf("%s.email: invalid address %q", prefix, c.Email))
		}
	}
	return errs
}

// ValidateOpportunity checks a single opportunity record. Whether ClientID
// resolves is checked by ValidateState, which sees the client collection.
func ValidateOpportunity(prefix string, o Opportunity) []error {
	var errs []error
	if o.ID == "" {
		errs = append(errs, fmt.Errorf("%s.id is required", prefix))
	}
	if strings.TrimSpace(o.Title) == "" {
		errs = append(errs, fmt.Errorf("%s.title is required", prefix))
	}
	if o.Value.IsNegative() {
		errs = append(errs, fmt.Errorf("%s.value %s must not be negative", prefix, o.Value))
	}
	if !o.Stage.Valid() {
		errs = append(errs, fmt.Errorf("%s.stage: invalid value %q", prefix, o.Stage))
	}
	if o.ClientID == "" {
		errs = append(errs, fmt.Errorf("%s.clientId is required", prefix))
	}
	return errs
}

// ValidateState runs every record validator plus id uniqueness and client
// reference checks across the whole state.
func ValidateState(s AppState) []error {
	var errs []error

	txIDs := make(map[string]bool)
	for i, t := range s.Transactions {
		prefix := fmt.Sprintf("%s[%d]", KeyTransactions, i)
		errs = append(errs, ValidateTransaction(prefix, t)...)
		if t.ID != "" && txIDs[t.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, t.ID))
		}
		txIDs[t.ID] = true
	}

	clientIDs := make(map[string]bool)
	for i, c := range s.Clients {
		prefix := fmt.Sprintf("%s[%d]", KeyClients, i)
		errs = append(errs, ValidateClient(prefix, c)...)
		if c.ID != "" && clientIDs[c.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, c.ID))
		}
		clientIDs[c.ID] = true
	}

	oppIDs := make(map[string]bool)
	for i, o := range s.Opportunities {
		prefix := fmt.Sprintf("%s[%d]", KeyOpportunities, i)
		errs = append(errs, ValidateOpportunity(prefix, o)...)
		if o.ID != "" && oppIDs[o.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, o.ID))
		}
		oppIDs[o.ID] = true
		if o.ClientID != "" && !clientIDs[o.ClientID] {
			errs = append(errs, fmt.Errorf("%s.clientId: client %q not found", prefix, o.ClientID))
		}
	}

	return errs
}

// JoinValidation folds a list of validation problems into one error wrapping
// ErrValidation, or nil when the list is empty.
func JoinValidation(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrValidation, errors.Join(errs...))
}
