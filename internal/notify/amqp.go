package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const publishTimeout = 5 * time.Second

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// AMQPNotifier publishes events to a topic exchange.
type AMQPNotifier struct {
	conn       *amqp091.Connection
	channel    publisher
	closer     func() error
	exchange   string
	routingKey string
}

var _ Notifier = (*AMQPNotifier)(nil)

func NewAMQPNotifier(url, exchange, routingKey string) (*AMQPNotifier, error) {
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

	return &AMQPNotifier{
		conn:       conn,
		channel:    channel,
		closer:     channel.Close,
		exchange:   exchange,
		routingKey: routingKey,
	}, nil
}

func (n *AMQPNotifier) TransactionChanged(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = n.channel.PublishWithContext(
		ctx,
		n.exchange,   // exchange
		n.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"transactionId": event.TransactionID.String(),
		"action":        event.Action,
		"exchange":      n.exchange,
	}).Debug("AMQPNotifier.TransactionChanged.published")
	return nil
}

func (n *AMQPNotifier) Close() error {
	var channelErr, connErr error
	if n.closer != nil {
		channelErr = n.closer()
	}
	if n.conn != nil {
		connErr = n.conn.Close()
	}
	return errors.Join(channelErr, connErr)
}
