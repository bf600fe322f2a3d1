package kafkax

import (
	"strings"

	"github.com/segmentio/kafka-go"
)

// Header keys carried on every domain event message.
const (
	HeaderEventID   = "event_id"
	HeaderEventType = "event_type"
)

// EventHeaders builds the identifying headers for one event.
func EventHeaders(eventID, eventType string) []kafka.Header {
	return []kafka.Header{
		{Key: HeaderEventID, Value: []byte(eventID)},
		{Key: HeaderEventType, Value: []byte(eventType)},
	}
}

// HeaderValue returns the first value stored under key, or "".
func HeaderValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// SplitBrokers parses a comma separated broker list.
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
