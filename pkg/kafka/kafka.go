package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

type Config struct {
	Addrs []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
}

const (
	RequestEventsTopic = "book-request-events"
)

// RequestEvent is published when a borrow request is created or
// processed. Consumers use it for auditing; the request path never
// depends on delivery.
type RequestEvent struct {
	EventID         string    `json:"event_id"`
	RequestID       int       `json:"request_id"`
	BookID          string    `json:"book_id"`
	StudentUsername string    `json:"student_username"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}
