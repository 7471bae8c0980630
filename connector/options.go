// SPDX-License-Identifier: MIT
package connector

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lvlike/modeling"
)

// TracerName is the instrumentation scope of the connector's spans.
const TracerName = "github.com/katalvlaran/lvlike/connector"

// Option configures a Connector.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	registry prometheus.Registerer
	tracer   trace.TracerProvider
	tools    *modeling.Tools
}

// WithLogger routes connector logs to l. A nil logger discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRegisterer registers the connector metrics on reg instead of a
// private registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registry = reg }
}

// WithTracerProvider selects the span provider; the default is the global
// otel provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracer = tp }
}

// WithTools supplies a modeling.Tools with models already registered.
func WithTools(t *modeling.Tools) Option {
	return func(o *options) { o.tools = t }
}

func gatherOptions(user ...Option) options {
	var o options
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.tracer == nil {
		o.tracer = otel.GetTracerProvider()
	}
	if o.tools == nil {
		o.tools = modeling.NewTools()
	}

	return o
}
