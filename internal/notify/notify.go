// Package notify forwards due-check reports to an MQTT broker.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/moto-maintenance/internal/duecheck"
)

var ErrPublishTimeout = errors.New("mqtt publish timed out")

// Publisher delivers due-check reports somewhere outside the process.
type Publisher interface {
	PublishReport(ctx context.Context, report duecheck.Report) error
}

// NopPublisher discards every report.
type NopPublisher struct{}

// PublishReport does nothing.
func (NopPublisher) PublishReport(context.Context, duecheck.Report) error { return nil }

// publishClient is the part of mqtt.Client the publisher needs.
type publishClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// MQTTPublisher publishes reports with due items as JSON, QoS 1, not retained.
type MQTTPublisher struct {
	client  publishClient
	topic   string
	timeout time.Duration
}

// NewMQTTPublisher wraps an already connected client.
func NewMQTTPublisher(client publishClient, topic string) *MQTTPublisher {
	return &MQTTPublisher{client: client, topic: topic, timeout: 5 * time.Second}
}

// ConnectMQTT connects to broker and returns a publisher plus a func that
// disconnects the client.
func ConnectMQTT(broker, clientID, topic string) (*MQTTPublisher, func(), error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, nil, fmt.Errorf("mqtt connect to %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, nil, fmt.Errorf("mqtt connect to %s: %w", broker, err)
	}

	log.WithFields(log.Fields{"broker": broker, "topic": topic}).Info("Connected to MQTT broker")
	return NewMQTTPublisher(client, topic), func() { client.Disconnect(250) }, nil
}

// PublishReport sends the report when maintenance is due against recorded
// history. Empty-store and nothing-due reports are not published.
func (p *MQTTPublisher) PublishReport(ctx context.Context, report duecheck.Report) error {
	if report.Status != duecheck.StatusDue {
		return nil
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	token := p.client.Publish(p.topic, 1, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.timeout):
		return ErrPublishTimeout
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish to %s: %w", p.topic, err)
	}

	log.WithFields(log.Fields{"topic": p.topic, "due": len(report.Due)}).Debug("Published due report")
	return nil
}
