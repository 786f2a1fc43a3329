package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexanderramin/bizbook/internal/domain"
)

// Warning describes a record-level problem that Import tolerated.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string {
	return w.Path + ": " + w.Message
}

type decoder struct {
	warnings []Warning
}

func (d *decoder) warn(path, format string, args ...any) {
	d.warnings = append(d.warnings, Warning{Path: path, Message: fmt.Sprintf(format, args...)})
}

// decodeCollection requires raw to be a JSON array and decodes each object
// element with fn. Non-object elements are dropped.
func decodeCollection[T any](d *decoder, key string, raw json.RawMessage, fn func(record) T) ([]T, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: %s must be an array", domain.ErrValidation, key)
	}
	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		path := fmt.Sprintf("%s[%d]", key, i)
		var fields map[string]json.RawMessage
		if kindOf(elem) != kindObject || json.Unmarshal(elem, &fields) != nil {
			d.warn(path, "not an object, record dropped")
			continue
		}
		out = append(out, fn(record{d: d, path: path, fields: fields}))
	}
	return out, nil
}

type kind int

const (
	kindMissing kind = iota
	kindNull
	kindString
	kindNumber
	kindBool
	kindObject
	kindArray
)

func (k kind) String() string {
	switch k {
	case kindNull:
		return "null"
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindBool:
		return "boolean"
	case kindObject:
		return "object"
	case kindArray:
		return "array"
	}
	return "missing"
}

func kindOf(raw json.RawMessage) kind {
	b := bytes.TrimSpace(raw)
	if len(b) == 0 {
		return kindMissing
	}
	switch b[0] {
	case '"':
		return kindString
	case '{':
		return kindObject
	case '[':
		return kindArray
	case 't', 'f':
		return kindBool
	case 'n':
		return kindNull
	}
	return kindNumber
}

// record reads fields of one JSON object leniently.
type record struct {
	d      *decoder
	path   string
	fields map[string]json.RawMessage
}

// str returns a string field. Numbers and booleans are kept as their
// literal text; other types become "".
func (r record) str(key string) string {
	raw := r.fields[key]
	switch k := kindOf(raw); k {
	case kindMissing, kindNull:
		return ""
	case kindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			r.d.warn(r.path+"."+key, "unreadable string, using empty value")
			return ""
		}
		return s
	case kindNumber, kindBool:
		r.d.warn(r.path+"."+key, "expected string, got %s", k)
		return string(bytes.TrimSpace(raw))
	default:
		r.d.warn(r.path+"."+key, "expected string, got %s, using empty value", k)
		return ""
	}
}

// amount returns a numeric field. A quoted decimal is accepted; anything
// else becomes zero.
func (r record) amount(key string) domain.Amount {
	raw := r.fields[key]
	switch k := kindOf(raw); k {
	case kindMissing, kindNull:
		r.d.warn(r.path+"."+key, "missing amount, using 0")
		return domain.ZeroAmount
	case kindNumber:
		var a domain.Amount
		if err := a.UnmarshalJSON(raw); err != nil {
			r.d.warn(r.path+"."+key, "unreadable number, using 0")
			return domain.ZeroAmount
		}
		return a
	case kindString:
		var s string
		_ = json.Unmarshal(raw, &s)
		a, err := domain.ParseAmount(strings.TrimSpace(s))
		if err != nil {
			r.d.warn(r.path+"."+key, "non-numeric amount %q, using 0", s)
			return domain.ZeroAmount
		}
		r.d.warn(r.path+"."+key, "amount given as string")
		return a
	default:
		r.d.warn(r.path+"."+key, "expected number, got %s, using 0", k)
		return domain.ZeroAmount
	}
}

func decodeTransaction(r record) domain.Transaction {
	return domain.Transaction{
		ID:          r.str("id"),
		Description: r.str("description"),
		Amount:      r.amount("amount"),
		Date:        r.str("date"),
		Type:        domain.TransactionType(r.str("type")),
	}
}

func decodeClient(r record) domain.Client {
	return domain.Client{
		ID:      r.str("id"),
		Name:    r.str("name"),
		Company: r.str("company"),
		Email:   r.str("email"),
		Phone:   r.str("phone"),
	}
}

func decodeOpportunity(r record) domain.Opportunity {
	return domain.Opportunity{
		ID:       r.str("id"),
		Title:    r.str("title"),
		Value:    r.amount("value"),
		ClientID: r.str("clientId"),
		Stage:    domain.Stage(r.str("stage")),
	}
}
