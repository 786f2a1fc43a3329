package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Top-level collection keys of a persisted or exported AppState.
const (
	KeyTransactions  = "transactions"
	KeyClients       = "clients"
	KeyOpportunities = "opportunities"
)

// CollectionKeys lists the keys every AppState document must carry.
var CollectionKeys = []string{KeyTransactions, KeyClients, KeyOpportunities}

// AppState is the full set of records at a point in time. All three
// collections are always present; an empty collection is an empty slice.
type AppState struct {
	Transactions  []Transaction `json:"transactions"`
	Clients       []Client      `json:"clients"`
	Opportunities []Opportunity `json:"opportunities"`
}

// EmptyState returns the canonical first-run state.
func EmptyState() AppState {
	return AppState{
		Transactions:  []Transaction{},
		Clients:       []Client{},
		Opportunities: []Opportunity{},
	}
}

// Normalize replaces nil collections with empty ones so the state always
// encodes as a fully formed triple.
func (s AppState) Normalize() AppState {
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.Clients == nil {
		s.Clients = []Client{}
	}
	if s.Opportunities == nil {
		s.Opportunities = []Opportunity{}
	}
	return s
}

// Clone returns a structural copy sharing no backing arrays with s.
// Records hold only immutable values, so copying the slices is a deep copy.
func (s AppState) Clone() AppState {
	c := AppState{
		Transactions:  make([]Transaction, len(s.Transactions)),
		Clients:       make([]Client, len(s.Clients)),
		Opportunities: make([]Opportunity, len(s.Opportunities)),
	}
	copy(c.Transactions, s.Transactions)
	copy(c.Clients, s.Clients)
	copy(c.Opportunities, s.Opportunities)
	return c
}

// Equal reports value equality, comparing amounts numerically.
func (s AppState) Equal(o AppState) bool {
	if len(s.Transactions) != len(o.Transactions) ||
		len(s.Clients) != len(o.Clients) ||
		len(s.Opportunities) != len(o.Opportunities) {
		return false
	}
	for i, t := range s.Transactions {
		u := o.Transactions[i]
		if t.ID != u.ID || t.Description != u.Description || !t.Amount.Equal(u.Amount) ||
			t.Date != u.Date || t.Type != u.Type {
			return false
		}
	}
	for i, c := range s.Clients {
		if c != o.Clients[i] {
			return false
		}
	}
	for i, p := range s.Opportunities {
		q := o.Opportunities[i]
		if p.ID != q.ID || p.Title != q.Title || !p.Value.Equal(q.Value) ||
			p.ClientID != q.ClientID || p.Stage != q.Stage {
			return false
		}
	}
	return true
}

// FindTransaction returns the index of the transaction with id, or -1.
func (s AppState) FindTransaction(id string) int {
	for i, t := range s.Transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// FindClient returns the index of the client with id, or -1.
func (s AppState) FindClient(id string) int {
	for i, c := range s.Clients {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// FindOpportunity returns the index of the opportunity with id, or -1.
func (s AppState) FindOpportunity(id string) int {
	for i, o := range s.Opportunities {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// OpportunitiesForClient returns the opportunities referencing clientID.
func (s AppState) OpportunitiesForClient(clientID string) []Opportunity {
	var out []Opportunity
	for _, o := range s.Opportunities {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out
}

// SplitCollections decodes a JSON object and returns the raw value of each
// required collection key. A document that is not an object, or that lacks
// any key (or carries it as null), is rejected with ErrValidation.
func SplitCollections(data []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: document is not a JSON object: %v", ErrValidation, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is null", ErrValidation)
	}
	var missing []string
	for _, k := range CollectionKeys {
		v, ok := raw[k]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required collections %v", ErrValidation, missing)
	}
	return raw, nil
}

// UnmarshalJSON decodes a strict AppState document: all three collections
// must be present.
func (s *AppState) UnmarshalJSON(data []byte) error {
	raw, err := SplitCollections(data)
	if err != nil {
		return err
	}
	var next AppState
	if err := json.Unmarshal(raw[KeyTransactions], &next.Transactions); err != nil {
		return fmt.Errorf("decoding %s: %w", KeyTransactions, err)
	}
	if err := json.Unmarshal(raw[KeyClients], &next.Clients); err != nil {
		return fmt.Errorf("decoding %s: %w", KeyClients, err)
	}
	if err := json.Unmarshal(raw[KeyOpportunities], &next.Opportunities); err != nil {
		return fmt.Errorf("decoding %s: %w", KeyOpportunities, err)
	}
	*s = next.Normalize()
	return nil
}
