package statement

import (
	"context"
	"fmt"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
)

// Service generates statements by report type name.
type Service interface {
	ListTypes() []string
	Generate(ctx context.Context, reportType, period string) (*domain.ReportResult, error)
	GenerateBatch(ctx context.Context, reportTypes []string, period string, policy BatchPolicy) ([]*domain.ReportResult, error)
}

type service struct {
	registry Registry
	deps     Dependencies
	pipeline *Pipeline
}

func NewService(registry Registry, deps Dependencies, pipeline *Pipeline) (Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if pipeline == nil {
		pipeline = NewPipeline()
	}
	return &service{registry: registry, deps: deps, pipeline: pipeline}, nil
}

func (s *service) ListTypes() []string {
	return s.registry.ListTypes()
}

func (s *service) Generate(ctx context.Context, reportType, period string) (*domain.ReportResult, error) {
	rs, err := s.registry.Create(reportType, s.deps)
	if err != nil {
		return nil, err
	}
	return s.pipeline.Generate(ctx, rs, period)
}

// GenerateBatch resolves every report type before running any of them, so an
// unknown type fails the batch regardless of policy.
func (s *service) GenerateBatch(
	ctx context.Context,
	reportTypes []string,
	period string,
	policy BatchPolicy,
) ([]*domain.ReportResult, error) {
	ruleSets := make([]RuleSet, 0, len(reportTypes))
	for _, reportType := range reportTypes {
		rs, err := s.registry.Create(reportType, s.deps)
		if err != nil {
			return nil, err
		}
		ruleSets = append(ruleSets, rs)
	}
	return s.pipeline.GenerateBatch(ctx, ruleSets, period, policy)
}
