package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publisherAppID = "loan-manager"

type EventPublisher interface {
	PublishPaymentProcessed(ctx context.Context, event PaymentProcessedEvent) error
	PublishLoanClosed(ctx context.Context, event LoanClosedEvent) error
	PublishLoanOverdue(ctx context.Context, event LoanOverdueEvent) error
}

type RabbitMQEventPublisher struct {
	conn         *amqp.Connection
	exchangeName string
	logger       *slog.Logger
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchangeName string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection cannot be nil")
	}
	if exchangeName == "" {
		return nil, fmt.Errorf("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	tempCh, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open temporary channel for exchange declaration: %w", err)
	}
	defer tempCh.Close()

	err = tempCh.ExchangeDeclare(
		exchangeName,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchangeName, err)
	}
	logger.Info("Ensured RabbitMQ exchange exists", "exchange", exchangeName, "type", amqp.ExchangeTopic)

	return &RabbitMQEventPublisher{
		conn:         conn,
		exchangeName: exchangeName,
		logger:       logger.With("component", "RabbitMQEventPublisher", "exchange", exchangeName),
	}, nil
}

func (p *RabbitMQEventPublisher) PublishPaymentProcessed(ctx context.Context, event PaymentProcessedEvent) error {
	return p.publish(ctx, RoutingKeyPaymentProcessed, event)
}

func (p *RabbitMQEventPublisher) PublishLoanClosed(ctx context.Context, event LoanClosedEvent) error {
	return p.publish(ctx, RoutingKeyLoanClosed, event)
}

func (p *RabbitMQEventPublisher) PublishLoanOverdue(ctx context.Context, event LoanOverdueEvent) error {
	return p.publish(ctx, RoutingKeyLoanOverdue, event)
}

func (p *RabbitMQEventPublisher) publish(ctx context.Context, routingKey string, payload interface{}) error {
	logCtx := p.logger.With(slog.String("routingKey", routingKey))

	channel, err := p.conn.Channel()
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to open RabbitMQ channel", slog.Any("error", err))
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer channel.Close()

	body, err := json.Marshal(payload)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to marshal event payload to JSON", slog.Any("error", err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	logCtx.DebugContext(ctx, "Publishing message", "bodySize", len(body))

	err = channel.PublishWithContext(
		ctx,
		p.exchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
			AppId:        publisherAppID,
		},
	)

	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish message to RabbitMQ", slog.Any("error", err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logCtx.InfoContext(ctx, "Successfully published message")
	return nil
}

// NoOpEventPublisher is used when RabbitMQ is disabled in configuration.
type NoOpEventPublisher struct {
	logger *slog.Logger
}

var _ EventPublisher = (*NoOpEventPublisher)(nil)

func NewNoOpEventPublisher(logger *slog.Logger) *NoOpEventPublisher {
	return &NoOpEventPublisher{logger: logger.With("component", "NoOpEventPublisher")}
}

func (p *NoOpEventPublisher) PublishPaymentProcessed(ctx context.Context, event PaymentProcessedEvent) error {
	p.logger.DebugContext(ctx, "Event publishing disabled, dropping event", "routingKey", RoutingKeyPaymentProcessed)
	return nil
}

func (p *NoOpEventPublisher) PublishLoanClosed(ctx context.Context, event LoanClosedEvent) error {
	p.logger.DebugContext(ctx, "Event publishing disabled, dropping event", "routingKey", RoutingKeyLoanClosed)
	return nil
}

func (p *NoOpEventPublisher) PublishLoanOverdue(ctx context.Context, event LoanOverdueEvent) error {
	p.logger.DebugContext(ctx, "Event publishing disabled, dropping event", "routingKey", RoutingKeyLoanOverdue)
	return nil
}
