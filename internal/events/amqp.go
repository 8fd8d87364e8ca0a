package events

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"teamspace/internal/logger"
	"teamspace/internal/metrics"
)

const publishTimeout = 5 * time.Second

// amqpChannel is the part of *amqp091.Channel the publisher uses.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	IsClosed() bool
	Close() error
}

// dialFunc opens a connection and a channel with the exchange declared.
type dialFunc func(url, exchange string) (io.Closer, amqpChannel, error)

// AMQPPublisher publishes events to a durable topic exchange, routed by type.
// A dropped connection or channel is dialed again on the next Publish.
type AMQPPublisher struct {
	url      string
	exchange string
	dial     dialFunc

	mu      sync.Mutex
	conn    io.Closer
	channel amqpChannel
}

// NewAMQPPublisher dials url and declares exchange.
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	return newAMQPPublisher(url, exchange, dialAMQP)
}

func newAMQPPublisher(url, exchange string, dial dialFunc) (*AMQPPublisher, error) {
	p := &AMQPPublisher{url: url, exchange: exchange, dial: dial}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func dialAMQP(url, exchange string) (io.Closer, amqpChannel, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
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
		_ = channel.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare exchange: %w", err)
	}

	return conn, channel, nil
}

// connect replaces the current session with a fresh one. Callers hold mu,
// except during construction.
func (p *AMQPPublisher) connect() error {
	p.drop()
	conn, channel, err := p.dial(p.url, p.exchange)
	if err != nil {
		return err
	}
	p.conn, p.channel = conn, channel
	return nil
}

// drop closes and forgets the current session.
func (p *AMQPPublisher) drop() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.channel = nil, nil
}

// Publish sends e as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, e Event) (err error) {
	defer func() { metrics.ObserveEvent(e.Type, err) }()

	body, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		logger.Get().Warnw("AMQP channel closed, reconnecting", "exchange", p.exchange)
		if err := p.connect(); err != nil {
			return fmt.Errorf("reconnect AMQP: %w", err)
		}
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		e.Type,     // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    e.Timestamp,
			MessageId:    fmt.Sprintf("%s:%d", e.TeamSpaceID, e.Version),
			Body:         body,
		},
	)
	if err != nil {
		if p.channel.IsClosed() {
			p.drop()
		}
		return fmt.Errorf("publish event: %w", err)
	}

	logger.Get().Debugw("Published event",
		"type", e.Type,
		"team_space_id", e.TeamSpaceID,
		"version", e.Version,
		"exchange", p.exchange)
	return nil
}

// Close closes the channel and connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		err = p.conn.Close()
	}
	p.conn, p.channel = nil, nil
	return err
}

// Connect returns an AMQP publisher for url, or Nop when url is empty.
func Connect(url, exchange string) (Publisher, error) {
	if url == "" {
		return Nop{}, nil
	}
	return NewAMQPPublisher(url, exchange)
}
