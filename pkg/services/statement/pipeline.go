package statement

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"github.com/de-tools/statement-atlas/pkg/services/source"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Stage string

const (
	StageLoad            Stage = "load"
	StageBeforeCalculate Stage = "before_calculate"
	StageCalculate       Stage = "calculate"
	StageAfterCalculate  Stage = "after_calculate"
	StageValidate        Stage = "validate"
	StageFormat          Stage = "format"
	StageAssemble        Stage = "assemble"
)

// Stages lists the pipeline stages in execution order.
var Stages = []Stage{
	StageLoad,
	StageBeforeCalculate,
	StageCalculate,
	StageAfterCalculate,
	StageValidate,
	StageFormat,
	StageAssemble,
}

// StageObserver is notified when a run enters a stage.
type StageObserver func(reportType string, stage Stage)

type Pipeline struct {
	now      func() time.Time
	observer StageObserver
}

type Option func(*Pipeline)

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

func WithStageObserver(observer StageObserver) Option {
	return func(p *Pipeline) {
		p.observer = observer
	}
}

func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate runs rs for period with the default pipeline.
func Generate(ctx context.Context, rs RuleSet, period string) (*domain.ReportResult, error) {
	return NewPipeline().Generate(ctx, rs, period)
}

// Generate executes the seven pipeline stages in order. A validation failure
// aborts the run and discards everything computed so far.
func (p *Pipeline) Generate(ctx context.Context, rs RuleSet, period string) (*domain.ReportResult, error) {
	reportType := rs.ReportType()
	logger := zerolog.Ctx(ctx).With().
		Str("run_id", uuid.NewString()).
		Str("report_type", reportType).
		Str("period", period).
		Logger()
	ctx = logger.WithContext(ctx)

	p.enter(&logger, reportType, StageLoad)
	raw, err := rs.LoadData(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s data for period %s: %w", reportType, period, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("failed to load %s data for period %s: %w", reportType, period, source.ErrNoData)
	}

	p.enter(&logger, reportType, StageBeforeCalculate)
	if hook, ok := rs.(BeforeCalculator); ok {
		hook.BeforeCalculate(ctx, slices.Clone(raw))
	}

	p.enter(&logger, reportType, StageCalculate)
	calculated := rs.Calculate(raw)
	if len(calculated) < len(raw) {
		return nil, fmt.Errorf("%w: %s calculate returned %d items from %d",
			ErrContractViolation, reportType, len(calculated), len(raw))
	}
	if id, dup := DuplicateID(calculated); dup {
		return nil, fmt.Errorf("%w: %s calculate produced account %s more than once",
			ErrContractViolation, reportType, id)
	}

	p.enter(&logger, reportType, StageAfterCalculate)
	if hook, ok := rs.(AfterCalculator); ok {
		hook.AfterCalculate(ctx, slices.Clone(calculated))
	}

	p.enter(&logger, reportType, StageValidate)
	if err := rs.Validate(calculated); err != nil {
		logger.Warn().Err(err).Msg("statement validation failed")
		return nil, err
	}

	p.enter(&logger, reportType, StageFormat)
	formatted := rs.Format(calculated)
	if len(formatted) != len(calculated) {
		return nil, fmt.Errorf("%w: %s format returned %d items from %d",
			ErrContractViolation, reportType, len(formatted), len(calculated))
	}
	if id, dup := DuplicateID(formatted); dup {
		return nil, fmt.Errorf("%w: %s format produced account %s more than once",
			ErrContractViolation, reportType, id)
	}

	p.enter(&logger, reportType, StageAssemble)
	result := assemble(reportType, period, formatted, p.now())

	logger.Info().
		Int("items", len(result.Data)).
		Float64("total_value", result.Metadata.TotalValue).
		Msg("statement generated")

	return result, nil
}

func (p *Pipeline) enter(logger *zerolog.Logger, reportType string, stage Stage) {
	logger.Debug().Str("stage", string(stage)).Msg("entering stage")
	if p.observer != nil {
		p.observer(reportType, stage)
	}
}

func assemble(reportType, period string, formatted []domain.LineItem, generatedAt time.Time) *domain.ReportResult {
	data := slices.Clone(formatted)
	return &domain.ReportResult{
		ReportType: reportType,
		Period:     period,
		Data:       data,
		Metadata: domain.ReportMetadata{
			GeneratedAt: generatedAt,
			TotalValue:  Sum(data),
		},
	}
}
