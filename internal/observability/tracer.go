package observability

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Config holds tracing configuration, read from the environment.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Enabled        bool
	LangfuseHost   string
	PublicKey      string
	SecretKey      string
}

// TracerProvider wraps the SDK provider so callers get a clean shutdown and
// a no-op when tracing is off.
type TracerProvider struct {
	provider *sdktrace.TracerProvider
	enabled  bool
}

// InitTracing sets the global tracer provider, exporting spans to Langfuse
// over OTLP/HTTP when enabled.
func InitTracing(ctx context.Context, config Config) (*TracerProvider, error) {
	if !config.Enabled {
		return &TracerProvider{enabled: false}, nil
	}

	exporter, err := newLangfuseExporter(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Langfuse exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			attribute.String("deployment.environment", config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(5*time.Second),
			sdktrace.WithMaxExportBatchSize(100),
		),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return &TracerProvider{provider: tp, enabled: true}, nil
}

func (tp *TracerProvider) IsEnabled() bool {
	return tp.enabled
}

func (tp *TracerProvider) Shutdown(ctx context.Context) error {
	if !tp.enabled || tp.provider == nil {
		return nil
	}
	return tp.provider.Shutdown(ctx)
}

func newLangfuseExporter(ctx context.Context, config Config) (sdktrace.SpanExporter, error) {
	auth := base64.StdEncoding.EncodeToString([]byte(config.PublicKey + ":" + config.SecretKey))
	host := strings.TrimSuffix(config.LangfuseHost, "/")

	return otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(host+"/api/public/otel/v1/traces"),
		otlptracehttp.WithHeaders(map[string]string{
			"Authorization": "Basic " + auth,
		}),
		otlptracehttp.WithCompression(otlptracehttp.GzipCompression),
		otlptracehttp.WithTimeout(30*time.Second),
	)
}

// LoadConfigFromEnv reads tracing configuration from the environment.
// Tracing is off unless OTEL_TRACES_ENABLED=true.
func LoadConfigFromEnv() Config {
	config := Config{
		ServiceName:    "ailife",
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Enabled:        os.Getenv("OTEL_TRACES_ENABLED") == "true",
	}
	if !config.Enabled {
		return config
	}

	if env := os.Getenv("ENVIRONMENT"); env != "" {
		config.Environment = env
	}
	config.LangfuseHost = os.Getenv("LANGFUSE_HOST")
	if config.LangfuseHost == "" {
		config.LangfuseHost = "https://cloud.langfuse.com"
	}
	config.PublicKey = os.Getenv("LANGFUSE_PUBLIC_KEY")
	config.SecretKey = os.Getenv("LANGFUSE_SECRET_KEY")
	return config
}

// GenAIAttributes builds the GenAI semantic-convention attributes for an
// LLM client span.
func GenAIAttributes(system, model string, temperature float64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("gen_ai.operation.name", "chat"),
		attribute.String("gen_ai.system", system),
		attribute.String("gen_ai.request.model", model),
		attribute.Float64("gen_ai.request.temperature", temperature),
	}
}
