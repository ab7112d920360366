package broker

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Werneck0live/importa-empresas/internal/models"
)

// ActionImport é o header "action" das mensagens de carga.
const ActionImport = "importacao"

type Publisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewPublisher(uri, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	// Garante que a fila exista (durável)
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

// NotifyImport publica o resumo de uma carga confirmada.
// O run id vira MessageId, para o consumidor descartar repetições.
func (p *Publisher) NotifyImport(ctx context.Context, s models.ImportSummary) error {
	body, headers := importMessage(s)
	return p.publish(ctx, amqp.Publishing{
		MessageId: s.RunID,
		Body:      []byte(body),
		Headers:   headers,
	})
}

func (p *Publisher) publish(ctx context.Context, msg amqp.Publishing) error {
	if ctx == nil {
		c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		ctx = c
	}
	msg.ContentType = "text/plain"
	msg.DeliveryMode = amqp.Persistent
	msg.Timestamp = time.Now()

	return p.ch.PublishWithContext(
		ctx,
		"",      // default exchange
		p.queue, // routing key = nome da fila
		false,   // mandatory
		false,   // immediate
		msg,
	)
}

func importMessage(s models.ImportSummary) (string, amqp.Table) {
	body := fmt.Sprintf("Importação de EMPRESAS: %d registros", s.Count)
	headers := amqp.Table{
		"action":    ActionImport,
		"run_id":    s.RunID,
		"table":     s.Table,
		"count":     int64(s.Count),
		"deleted":   s.Deleted,
		"timestamp": s.FinishedAt.UTC().Format(time.RFC3339),
	}
	return body, headers
}

func (p *Publisher) Close() error {
	var errCh, errConn error
	if p.ch != nil {
		errCh = p.ch.Close()
	}
	if p.conn != nil {
		errConn = p.conn.Close()
	}

	return errors.Join(errCh, errConn)
}
