// Package amqp publishes generated statements to a RabbitMQ exchange.
package amqp

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/statement-atlas/pkg/export"
	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const publishTimeout = 5 * time.Second

// Publisher is satisfied by *amqp091.Channel.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type Exporter struct {
	publisher  Publisher
	exchange   string
	routingKey string
	now        func() time.Time

	closers []func() error
}

func New(publisher Publisher, exchange, routingKey string) *Exporter {
	return &Exporter{
		publisher:  publisher,
		exchange:   exchange,
		routingKey: routingKey,
		now:        time.Now,
	}
}

// Dial connects to the broker and declares a durable topic exchange.
func Dial(url, exchange, routingKey string) (*Exporter, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	e := New(channel, exchange, routingKey)
	e.closers = []func() error{channel.Close, conn.Close}
	return e, nil
}

func (e *Exporter) Export(ctx context.Context, report *domain.ReportResult) error {
	body, err := export.MarshalReport(report)
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = e.publisher.PublishWithContext(
		pubCtx,
		e.exchange,
		e.routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    e.now(),
			Type:         report.ReportType,
			Headers: amqp091.Table{
				"report_type": report.ReportType,
				"period":      report.Period,
			},
			Body: body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("exchange", e.exchange).
		Str("routing_key", e.routingKey).
		Str("report_type", report.ReportType).
		Msg("statement published")
	return nil
}

func (e *Exporter) Close() error {
	var firstErr error
	for _, c := range e.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	e.closers = nil
	return firstErr
}
