package statement

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// BatchPolicy decides what a multi-statement run does when one statement fails.
type BatchPolicy int

const (
	// BatchAbortOnError stops at the first failing statement.
	BatchAbortOnError BatchPolicy = iota
	// BatchSkipFailed keeps generating and reports every failure at the end.
	BatchSkipFailed
)

func (p BatchPolicy) String() string {
	switch p {
	case BatchAbortOnError:
		return "abort"
	case BatchSkipFailed:
		return "skip"
	default:
		return fmt.Sprintf("BatchPolicy(%d)", int(p))
	}
}

// GenerateBatch runs every rule-set for the same period, one after another.
// With BatchSkipFailed the successful reports are returned together with the
// joined errors of the failed ones.
func (p *Pipeline) GenerateBatch(
	ctx context.Context,
	ruleSets []RuleSet,
	period string,
	policy BatchPolicy,
) ([]*domain.ReportResult, error) {
	logger := zerolog.Ctx(ctx)

	reports := make([]*domain.ReportResult, 0, len(ruleSets))
	var errs []error
	for _, rs := range ruleSets {
		report, err := p.Generate(ctx, rs, period)
		if err != nil {
			if policy == BatchAbortOnError {
				return nil, err
			}
			logger.Warn().Err(err).Str("report_type", rs.ReportType()).Msg("skipping failed statement")
			errs = append(errs, err)
			continue
		}
		reports = append(reports, report)
	}

	return reports, errors.Join(errs...)
}
