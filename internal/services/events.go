package services

import "log"

// EventPublisher publishes domain events to the message broker. The
// concrete implementation lives in pkg/rabbitmq; tests substitute a mock.
type EventPublisher interface {
	PublishEvent(routingKey string, payload map[string]interface{}) error
}

// publishEvent fires a best-effort domain event. A nil publisher (broker
// not configured) and a publish failure both leave the request untouched;
// events never gate the write that triggered them.
func publishEvent(events EventPublisher, routingKey string, payload map[string]interface{}) {
	if events == nil {
		return
	}
	if err := events.PublishEvent(routingKey, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
