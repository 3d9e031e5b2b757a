package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rotisserie/eris"
	"github.com/truckershub-backend/internal/config"
	"github.com/truckershub-backend/internal/domain"
	"github.com/truckershub-backend/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
	quiesceMillis  = 250
)

// publisher is the part of the paho client the broadcaster needs
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// AmpelMessage - retained payload of the per-spot ampel topic
type AmpelMessage struct {
	SpotID    string                 `json:"spot_id"`
	Status    domain.OccupancyStatus `json:"status"`
	UpdatedAt time.Time              `json:"updated_at"`
	ExpiresAt *time.Time             `json:"expires_at,omitempty"`
}

type broadcaster struct {
	client publisher
	prefix string
	qos    byte
	logger *zap.Logger
}

// NewBroadcaster connects to the broker and returns a retained-message publisher
func NewBroadcaster(cfg *config.MQTTConfig, logger *zap.Logger) (repository.OccupancyBroadcaster, error) {
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			logger.Warn("MQTT connection lost", zap.Error(err))
		}).
		SetOnConnectHandler(func(_ paho.Client) {
			logger.Info("MQTT connected", zap.String("broker", cfg.Broker))
		})
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, eris.Errorf("mqtt: connect to %s timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, eris.Wrapf(err, "mqtt: connect to %s", cfg.Broker)
	}

	return newBroadcaster(client, cfg.TopicPrefix, cfg.QoS, logger), nil
}

func newBroadcaster(client publisher, prefix string, qos byte, logger *zap.Logger) *broadcaster {
	return &broadcaster{
		client: client,
		prefix: prefix,
		qos:    qos,
		logger: logger,
	}
}

// AmpelTopic returns the topic a spot's status is retained on
func AmpelTopic(prefix, spotID string) string {
	return fmt.Sprintf("%s/parking/%s/ampel", prefix, spotID)
}

func (b *broadcaster) Broadcast(ctx context.Context, event *domain.OccupancyReportedEvent) error {
	if !event.IsBroadcastable() {
		return eris.Errorf("mqtt: event for spot %q is not broadcastable", event.SpotID)
	}

	msg := AmpelMessage{
		SpotID:    event.SpotID,
		Status:    event.Status,
		UpdatedAt: event.CreatedAt,
	}
	if !event.ExpiresAt.IsZero() {
		expires := event.ExpiresAt
		msg.ExpiresAt = &expires
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return eris.Wrap(err, "mqtt: encode ampel message")
	}

	topic := AmpelTopic(b.prefix, event.SpotID)
	token := b.client.Publish(topic, b.qos, true, payload)

	timeout := publishTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if !token.WaitTimeout(timeout) {
		return eris.Errorf("mqtt: publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		b.logger.Error("Failed to publish ampel", zap.String("topic", topic), zap.Error(err))
		return eris.Wrapf(err, "mqtt: publish to %s", topic)
	}

	b.logger.Debug("Ampel published", zap.String("topic", topic), zap.String("status", string(event.Status)))
	return nil
}

func (b *broadcaster) Close() {
	b.client.Disconnect(quiesceMillis)
}

type logBroadcaster struct {
	logger *zap.Logger
}

// NewLogBroadcaster is used when MQTT is disabled; it only logs the announcement
func NewLogBroadcaster(logger *zap.Logger) repository.OccupancyBroadcaster {
	return &logBroadcaster{logger: logger}
}

func (b *logBroadcaster) Broadcast(_ context.Context, event *domain.OccupancyReportedEvent) error {
	b.logger.Info("Occupancy changed",
		zap.String("spot_id", event.SpotID),
		zap.String("status", string(event.Status)))
	return nil
}

func (b *logBroadcaster) Close() {}
