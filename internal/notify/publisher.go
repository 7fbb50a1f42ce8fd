package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/models"
)

// Publisher forwards notifications outside the process
type Publisher interface {
	Publish(ctx context.Context, n models.Notification) error
	Close() error
}

// AMQPPublisher sends each notification as JSON to a named queue
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewAMQPPublisher(url, queue string) (*AMQPPublisher, error) {
	config := amqp.Config{
		Heartbeat: 60 * time.Second,
		Locale:    "en_US",
	}

	conn, err := amqp.DialConfig(url, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if _, err := channel.QueueDeclare(queue, false, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return &AMQPPublisher{conn: conn, channel: channel, queue: queue}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, n models.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	err = p.channel.PublishWithContext(ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Timestamp:   n.CreatedAt,
			MessageId:   n.ID,
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.queue, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.channel.Close()
	return p.conn.Close()
}

// LogPublisher writes notifications to the service log when no broker is
// configured
type LogPublisher struct {
	log *zap.SugaredLogger
}

func NewLogPublisher(log *zap.SugaredLogger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, n models.Notification) error {
	p.log.Infow("notification", "title", n.Title, "type", n.Type, "line", n.Line, "train", n.TrainNumber, "message", n.Message)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
