package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/statement-atlas/pkg/runtime/bootstrap"
	"github.com/de-tools/statement-atlas/pkg/services/statement"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const allTypes = "all"

type GenerateCmd struct {
	session     *Session
	reportType  string
	period      string
	format      string
	out         string
	skipFailed  bool
	uploadS3    bool
	publishAMQP bool
}

func NewGenerateCmd(session *Session) *cobra.Command {
	gc := &GenerateCmd{session: session}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate financial statements for a period",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.reportType, "type", allTypes, "Statement to generate (pl, bs, cf, a comma separated list or all)")
	cmd.Flags().StringVar(&gc.period, "period", "", "Reporting period (e.g., 2024-Q1)")
	cmd.Flags().StringVar(&gc.format, "format", bootstrap.FormatTable, "Output format (table, json, xlsx)")
	cmd.Flags().StringVar(&gc.out, "out", "", "Output file for the xlsx format")
	cmd.Flags().BoolVar(&gc.skipFailed, "skip-failed", false, "Keep generating when a statement fails validation")
	cmd.Flags().BoolVar(&gc.uploadS3, "upload-s3", false, "Also upload each statement to the configured S3 bucket")
	cmd.Flags().BoolVar(&gc.publishAMQP, "publish-amqp", false, "Also publish each statement to the configured AMQP exchange")

	_ = cmd.MarkFlagRequired("period")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	rt, err := gc.session.runtime()
	if err != nil {
		return err
	}

	types := gc.types(rt.Service)
	policy := statement.BatchAbortOnError
	if gc.skipFailed {
		policy = statement.BatchSkipFailed
	}

	exporter, closeExporters, err := bootstrap.Exporters(ctx, rt.Config, bootstrap.ExportOptions{
		Format:      gc.format,
		Out:         gc.out,
		UploadS3:    gc.uploadS3,
		PublishAMQP: gc.publishAMQP,
	}, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	reports, genErr := rt.Service.GenerateBatch(ctx, types, gc.period, policy)
	for _, report := range reports {
		if err := exporter.Export(ctx, report); err != nil {
			return errors.Join(fmt.Errorf("failed to export %s: %w", report.ReportType, err), closeExporters())
		}
	}
	if err := closeExporters(); err != nil {
		return fmt.Errorf("failed to finish export: %w", err)
	}

	logger.Info().
		Int("generated", len(reports)).
		Int("requested", len(types)).
		Str("policy", policy.String()).
		Msg("generation finished")

	if genErr != nil {
		return fmt.Errorf("failed to generate statements: %w", genErr)
	}
	return nil
}

func (gc *GenerateCmd) types(svc statement.Service) []string {
	if strings.EqualFold(strings.TrimSpace(gc.reportType), allTypes) {
		return svc.ListTypes()
	}
	var types []string
	for _, t := range strings.Split(gc.reportType, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}
