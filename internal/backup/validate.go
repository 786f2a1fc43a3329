package backup

import (
	"errors"

	"github.com/alexanderramin/bizbook/internal/domain"
)

// strictErrors collects every reason a strict import must be refused:
// tolerated coercions first, then domain validation of the decoded state.
func strictErrors(state domain.AppState, warnings []Warning) []error {
	var errs []error
	for _, w := range warnings {
		errs = append(errs, errors.New(w.String()))
	}
	errs = append(errs, domain.ValidateState(state)...)
	return errs
}
