// Package service contains the workflow orchestrators. Each action handler is
// a short-lived unit of work: read entity → authorize → validate → CAS write →
// audit (best-effort) → notify (best-effort).
package service

import (
	"fmt"

	"github.com/tinashem/employee-portal/internal/domain/errs"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// storeErr marks a record-store failure as Unavailable so the caller can
// distinguish connectivity problems from a missing or locked entity.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", errs.ErrUnavailable, op, err)
}
