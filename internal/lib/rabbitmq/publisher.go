// Package rabbitmq содержит вспомогательные функции для публикации
// событий в RabbitMQ и объявления очередей.
package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// UserRegisteredQueue очередь событий о регистрации пользователей.
const UserRegisteredQueue = "user.registered"

// UserRegisteredEvent событие об успешной регистрации пользователя.
type UserRegisteredEvent struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// PublishMessage публикует сообщение в RabbitMQ.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Connect открывает соединение и канал, объявляя очередь событий регистрации.
func Connect(connectionString string) (*amqp.Connection, *amqp.Channel, error) {
	const op = "rabbitmq.Connect"
	conn, err := amqp.Dial(connectionString)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := SetupQueues(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return conn, ch, nil
}

// SetupQueues объявляет используемые сервисом очереди.
func SetupQueues(ch *amqp.Channel) error {
	const op = "rabbitmq.SetupQueues"
	_, err := ch.QueueDeclare(
		UserRegisteredQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Publisher публикует события регистрации в канал RabbitMQ.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher создаёт публикатора поверх открытого канала.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// PublishUserRegistered отправляет событие о регистрации пользователя.
func (p *Publisher) PublishUserRegistered(event UserRegisteredEvent) error {
	return PublishMessage(p.ch, "", UserRegisteredQueue, event)
}
