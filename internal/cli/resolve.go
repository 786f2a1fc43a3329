package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bizbook/internal/domain"
)

// resolveID maps user input to a full id: an exact match wins, otherwise the
// input must be a prefix of exactly one id.
func resolveID(kind, input string, ids []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: %s id is required", domain.ErrValidation, kind)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s %q", domain.ErrNotFound, kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s id prefix %q is ambiguous (%d matches)", domain.ErrValidation, kind, input, len(matches))
	}
}

func resolveTransactionID(app *App, input string) (string, error) {
	txs := app.State.Current().Transactions
	ids := make([]string, len(txs))
	for i, t := range txs {
		ids[i] = t.ID
	}
	return resolveID("transaction", input, ids)
}

func resolveClientID(app *App, input string) (string, error) {
	clients := app.State.Current().Clients
	ids := make([]string, len(clients))
	for i, c := range clients {
		ids[i] = c.ID
	}
	return resolveID("client", input, ids)
}

func resolveOpportunityID(app *App, input string) (string, error) {
	opps := app.State.Current().Opportunities
	ids := make([]string, len(opps))
	for i, o := range opps {
		ids[i] = o.ID
	}
	return resolveID("opportunity", input, ids)
}

func resolveSnapshotID(app *App, input string) (string, error) {
	snaps := app.Snapshots.List()
	ids := make([]string, len(snaps))
	for i, s := range snaps {
		ids[i] = s.ID
	}
	return resolveID("snapshot", input, ids)
}
