// Package queue contains the background consumer that listens to the
// notification.email queue and delivers mail through the injected sender.
package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EmailSender delivers one rendered message.  The mailer package provides
// the production implementation.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

// Renderer turns an EmailEvent into subject and body.  Wiring it as a
// function keeps this package free of a dependency on the mailer's
// template helpers.
type Renderer func(ev EmailEvent) (subject, body string, err error)

// StartEmailConsumer connects to RabbitMQ, declares the durable
// notification queue, and consumes events, delivering each through the
// sender.  It runs a reconnect loop with backoff and keeps running until
// the process exits; processing errors are logged and the offending
// message is rejected without requeue so a poison message cannot wedge
// the queue.
func StartEmailConsumer(url string, render Renderer, sender EmailSender) {
	if url == "" {
		log.Printf("email-consumer: no broker configured, consumer not started")
		return
	}

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("email-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, render, sender); err != nil {
			log.Printf("email-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection, render Renderer, sender EmailSender) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("email-consumer: set QoS failed: %v", err)
	}

	_, err = ch.QueueDeclare(EmailQueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(EmailQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, render, sender); err != nil {
			log.Printf("email-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, render Renderer, sender EmailSender) error {
	var ev EmailEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.To == "" {
		return fmt.Errorf("event %s has no recipient", ev.Kind)
	}
	subject, html, err := render(ev)
	if err != nil {
		return fmt.Errorf("render %s: %w", ev.Kind, err)
	}
	if err := sender.Send(ev.To, subject, html); err != nil {
		return fmt.Errorf("send %s to %s: %w", ev.Kind, ev.To, err)
	}
	log.Printf("email-consumer: sent %s to %s", ev.Kind, ev.To)
	return nil
}
