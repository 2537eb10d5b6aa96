package stream

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

// Publisher sends a finished artifact over MQTT as a retained message, so
// subscribers joining later still receive the latest animation.
type Publisher struct {
	client  mqtt.Client
	topic   string
	timeout time.Duration
}

// NewPublisher creates an instance of a Publisher.
func NewPublisher(client mqtt.Client, topic string) *Publisher {
	p := new(Publisher)
	p.client = client
	p.topic = topic
	p.timeout = 30 * time.Second
	return p
}

// Publish reads path and publishes its bytes.
func (p *Publisher) Publish(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}

	token := p.client.Publish(p.topic, 1, true, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish %s: timed out after %v", p.topic, p.timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", p.topic, err)
	}

	log.Printf("Published %s to %s (%d bytes)", path, p.topic, len(payload))
	return nil
}
