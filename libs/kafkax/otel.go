package kafkax

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// InjectTraceHeaders adds the propagator's trace fields to headers,
// replacing any stale values under the same keys.
func InjectTraceHeaders(ctx context.Context, headers []kafka.Header) []kafka.Header {
	c := headerCarrier(headers)
	otel.GetTextMapPropagator().Inject(ctx, &c)
	return c
}

type headerCarrier []kafka.Header

var _ propagation.TextMapCarrier = (*headerCarrier)(nil)

func (c *headerCarrier) Get(key string) string { return HeaderValue(*c, key) }

func (c *headerCarrier) Keys() []string {
	out := make([]string, len(*c))
	for i, h := range *c {
		out[i] = h.Key
	}
	return out
}

func (c *headerCarrier) Set(key, value string) {
	for i, h := range *c {
		if h.Key == key {
			(*c)[i].Value = []byte(value)
			return
		}
	}
	*c = append(*c, kafka.Header{Key: key, Value: []byte(value)})
}
