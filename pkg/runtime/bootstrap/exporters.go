package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/de-tools/statement-atlas/pkg/export"
	"github.com/de-tools/statement-atlas/pkg/export/amqp"
	"github.com/de-tools/statement-atlas/pkg/export/s3"
	"github.com/de-tools/statement-atlas/pkg/services/config"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatXLSX  = "xlsx"
)

type ExportOptions struct {
	Format string
	// Out is the workbook path for the xlsx format
	Out         string
	UploadS3    bool
	PublishAMQP bool
}

// Exporters builds the exporter chain for opts. The returned close function
// flushes buffered output and releases broker connections.
func Exporters(ctx context.Context, cfg *config.Config, opts ExportOptions, w io.Writer) (export.Exporter, func() error, error) {
	var chain export.Multi
	var closers []io.Closer
	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c.Close())
		}
		return errors.Join(errs...)
	}

	switch opts.Format {
	case FormatTable, "":
		chain = append(chain, export.NewTableReporter(w))
	case FormatJSON:
		chain = append(chain, export.NewJSONExporter(w))
	case FormatXLSX:
		if opts.Out == "" {
			return nil, nil, fmt.Errorf("--out is required for the %s format", FormatXLSX)
		}
		x := export.NewXLSXExporter(opts.Out)
		chain = append(chain, x)
		closers = append(closers, x)
	default:
		return nil, nil, fmt.Errorf("unsupported format %q", opts.Format)
	}

	if opts.UploadS3 {
		s3cfg := cfg.Export.S3
		e, err := s3.NewFromConfig(ctx, s3cfg.Region, s3cfg.Bucket, s3cfg.Prefix)
		if err != nil {
			return nil, nil, errors.Join(err, closeAll())
		}
		chain = append(chain, e)
	}

	if opts.PublishAMQP {
		amqpCfg := cfg.Export.AMQP
		if amqpCfg.URL == "" {
			return nil, nil, errors.Join(fmt.Errorf("export.amqp.url is not configured"), closeAll())
		}
		e, err := amqp.Dial(amqpCfg.URL, amqpCfg.Exchange, amqpCfg.RoutingKey)
		if err != nil {
			return nil, nil, errors.Join(err, closeAll())
		}
		chain = append(chain, e)
		closers = append(closers, e)
	}

	return chain, closeAll, nil
}
