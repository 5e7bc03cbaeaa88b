package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

// PubsubBody is the envelope every event travels in. Consumers switch on
// Pattern before decoding Data.
type PubsubBody struct {
	Pattern string          `json:"type"`
	Data    json.RawMessage `json:"data"`
	ID      string          `json:"id"`
}

// Message is an encoded envelope ready to publish.
type Message struct {
	ID      string
	Pattern string
	Body    []byte
	At      time.Time
}

func NewPubsubMessage(pattern string, data any) (*Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", pattern, err)
	}

	nid, err := gonanoid.New(12)
	if err != nil {
		return nil, err
	}
	id := "evt_" + nid

	body, err := json.Marshal(PubsubBody{Pattern: pattern, Data: raw, ID: id})
	if err != nil {
		return nil, err
	}
	return &Message{ID: id, Pattern: pattern, Body: body, At: time.Now().UTC()}, nil
}

func (m *Message) GeneratePayload() *amqp.Publishing {
	return &amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    m.ID,
		Timestamp:    m.At,
		Type:         m.Pattern,
		Headers:      amqp.Table{"id": m.ID},
		Body:         m.Body,
	}
}

func DecodePubsub(body []byte) (*PubsubBody, error) {
	var env PubsubBody
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("invalid pubsub body: %w", err)
	}
	if env.Pattern == "" {
		return nil, fmt.Errorf("pubsub body has no type")
	}
	return &env, nil
}
