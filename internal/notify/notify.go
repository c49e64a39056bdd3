// Package notify announces finished batches over MQTT.
package notify

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Publisher sends a payload to a topic. *mqtt.Client from common/mqtt
// satisfies it.
type Publisher interface {
	Publish(topic string, retained bool, payload []byte) error
}

// BatchCompleted is the message published when a run finishes.
type BatchCompleted struct {
	BatchID     string   `json:"batch_id"`
	SourceFiles []string `json:"source_files"`
	Patients    int      `json:"patients"`
	Output      string   `json:"output"`
}

// Notifier publishes batch events.
type Notifier struct {
	publisher Publisher
	topic     string
	logger    *zap.Logger
}

// NewNotifier creates a Notifier for topic.
func NewNotifier(publisher Publisher, topic string, logger *zap.Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

// BatchCompleted publishes ev. The message is not retained.
func (n *Notifier) BatchCompleted(ev BatchCompleted) error {
	if ev.SourceFiles == nil {
		ev.SourceFiles = []string{}
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode batch event: %w", err)
	}
	if err := n.publisher.Publish(n.topic, false, payload); err != nil {
		return err
	}

	n.logger.Info("Batch event published",
		zap.String("topic", n.topic),
		zap.String("batch_id", ev.BatchID),
		zap.Int("patients", ev.Patients),
	)
	return nil
}
