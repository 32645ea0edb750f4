package kvs

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "kvs"

const (
	resultOK    = "ok"
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

type clientMetrics struct {
	operations  metric.Int64Counter
	connections metric.Int64UpDownCounter
}

func newClientMetrics(mp metric.MeterProvider) *clientMetrics {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	operations, _ := meter.Int64Counter("kvs_operations_total",
		metric.WithDescription("Commands issued through the client, by operation and result."))
	connections, _ := meter.Int64UpDownCounter("kvs_connections",
		metric.WithDescription("Open client handles."))

	return &clientMetrics{
		operations:  operations,
		connections: connections,
	}
}

func (m *clientMetrics) record(ctx context.Context, op, result string) {
	m.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("result", result),
	))
}
