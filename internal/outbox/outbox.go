package outbox

import (
	"context"
	"fmt"

	"github.com/okunev/nostrcal/internal/record"
	"github.com/streadway/amqp"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Queue    string
}

// Message is the envelope queued for publication: the built record
// plus the origin handle of the requester.
type Message struct {
	Origin string     `json:"origin"`
	Record record.Raw `json:"record"`
}

// Provider queues records for publication and hands them to the
// publisher process. Acceptance by the queue is local acceptance; it
// is not an on-relay confirmation.
type Provider struct {
	conn       *amqp.Connection
	queue      amqp.Queue
	channel    *amqp.Channel
	connString string
	queueName  string
}

func New(config Config) *Provider {
	return &Provider{
		connString: fmt.Sprintf(
			"amqp://%s:%s@%s:%d/",
			config.User,
			config.Password,
			config.Host,
			config.Port,
		),
		queueName: config.Queue,
	}
}

func (p *Provider) Connect() error {
	var err error
	p.conn, err = amqp.Dial(p.connString)
	if err != nil {
		return err
	}

	p.channel, err = p.conn.Channel()
	if err != nil {
		return err
	}
	p.queue, err = p.channel.QueueDeclare(
		p.queueName,
		false,
		true,
		false,
		false,
		nil,
	)
	return err
}

func (p *Provider) Close() {
	p.conn.Close()
}

func (p *Provider) Publish(body []byte) error {
	return p.channel.Publish(
		"",           // exchange
		p.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
}

type MessageProcess = func(msg amqp.Delivery)

func (p Provider) Consume(ctx context.Context, process MessageProcess) error {
	msgs, err := p.channel.Consume(
		p.queue.Name, // queue
		"",           // consumer
		true,         // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-msgs:
			if ok {
				process(m)
			}
		}
	}
}
