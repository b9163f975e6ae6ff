package statement

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownReportType = errors.New("unknown report type")
	ErrContractViolation = errors.New("rule-set contract violation")
)

// ValidationError reports a statement invariant that did not hold.
type ValidationError struct {
	ReportType  string
	Rule        string
	Message     string
	Discrepancy float64
}

func NewValidationError(reportType, rule string, discrepancy float64, format string, args ...any) *ValidationError {
	return &ValidationError{
		ReportType:  reportType,
		Rule:        rule,
		Message:     fmt.Sprintf(format, args...),
		Discrepancy: discrepancy,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed (%s): %s", e.ReportType, e.Rule, e.Message)
}

// AsValidationError unwraps err to a *ValidationError if it carries one.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
