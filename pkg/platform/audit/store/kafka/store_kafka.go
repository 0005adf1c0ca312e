// Package kafka forwards audit events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	audit "partyhub/pkg/platform/audit"
)

const DefaultTopic = "party.audit"

// message is the wire form of an audit event.
type message struct {
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	PartyKind string    `json:"party_kind,omitempty"`
	PartyID   string    `json:"party_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

// Store produces audit events synchronously, keyed by party ID so that
// events for one party stay ordered within a partition.
type Store struct {
	client *kgo.Client
	topic  string
}

type Option func(*config)

type config struct {
	topic    string
	clientID string
}

func WithTopic(topic string) Option {
	return func(c *config) {
		if topic != "" {
			c.topic = topic
		}
	}
}

func WithClientID(clientID string) Option {
	return func(c *config) {
		c.clientID = clientID
	}
}

func New(brokers []string, opts ...Option) (*Store, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	cfg := config{topic: DefaultTopic, clientID: "partyhub"}
	for _, opt := range opts {
		opt(&cfg)
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(cfg.clientID),
		kgo.DefaultProduceTopic(cfg.topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}
	return &Store{client: client, topic: cfg.topic}, nil
}

func (s *Store) Topic() string {
	return s.topic
}

// EnsureTopic creates the audit topic if it does not exist yet.
func (s *Store) EnsureTopic(ctx context.Context, partitions int32, replicationFactor int16) error {
	admin := kadm.NewClient(s.client)
	resp, err := admin.CreateTopic(ctx, partitions, replicationFactor, nil, s.topic)
	if err != nil {
		return fmt.Errorf("kafka: create topic %s: %w", s.topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("kafka: create topic %s: %w", s.topic, resp.Err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	msg := message{
		Category:  string(event.Category),
		Timestamp: event.Timestamp.UTC(),
		Action:    event.Action,
		PartyKind: event.PartyKind,
		RequestID: event.RequestID,
		ClientIP:  event.ClientIP,
		UserAgent: event.UserAgent,
		Reason:    event.Reason,
	}
	if !event.PartyID.IsNil() {
		msg.PartyID = event.PartyID.String()
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("kafka: encode audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(msg.PartyID),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "category", Value: []byte(msg.Category)},
			{Key: "action", Value: []byte(msg.Action)},
		},
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka: produce audit event: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *Store) Close() {
	s.client.Close()
}
