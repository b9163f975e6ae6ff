// Package s3 uploads generated statements to an S3 bucket.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/statement-atlas/pkg/export"
	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const DefaultRegion = "us-east-1"

// PutObjectAPI is the part of the S3 client the exporter needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Exporter struct {
	client PutObjectAPI
	bucket string
	prefix string
}

func New(client PutObjectAPI, bucket, prefix string) (*Exporter, error) {
	if client == nil {
		return nil, fmt.Errorf("s3 client is required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	return &Exporter{client: client, bucket: bucket, prefix: prefix}, nil
}

// NewFromConfig builds an exporter from the default AWS credential chain.
func NewFromConfig(ctx context.Context, region, bucket, prefix string) (*Exporter, error) {
	opts := []func(*config.LoadOptions) error{config.WithDefaultRegion(DefaultRegion)}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return New(s3.NewFromConfig(awsCfg), bucket, prefix)
}

// Key returns the object key a report is stored under.
func (e *Exporter) Key(report *domain.ReportResult) string {
	return path.Join(e.prefix, report.ReportType, report.Period+".json")
}

func (e *Exporter) Export(ctx context.Context, report *domain.ReportResult) error {
	body, err := export.MarshalReport(report)
	if err != nil {
		return err
	}

	key := e.Key(report)
	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(e.bucket),
		Key:         awssdk.String(key),
		Body:        bytes.NewReader(body),
		ContentType: awssdk.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to s3://%s: %w", key, e.bucket, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("bucket", e.bucket).
		Str("key", key).
		Msg("statement uploaded")
	return nil
}
