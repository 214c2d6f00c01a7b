package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Factor colors keyed by impact sign; they override whatever the service
// returned.
const (
	colorPositive = "#22c55e"
	colorNegative = "#ef4444"
)

var (
	predictDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "studypulse",
		Subsystem: "predict",
		Name:      "request_duration_seconds",
		Help:      "Duration of grade prediction requests",
	}, []string{"model"})

	predictFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studypulse",
		Subsystem: "predict",
		Name:      "request_failures_total",
		Help:      "Number of grade prediction failures",
	}, []string{"model"})
)

// OpenAIConfig defines configuration options for the OpenAI gateway.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIGateway implements Gateway against the OpenAI chat completion API.
type OpenAIGateway struct {
	client *openai.Client
	cfg    OpenAIConfig
	schema *jsonschema.Schema
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIGateway builds a new gateway using the provided configuration.
func NewOpenAIGateway(cfg OpenAIConfig) (*OpenAIGateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}

	schema, err := compilePredictionSchema()
	if err != nil {
		return nil, fmt.Errorf("compile prediction schema: %w", err)
	}

	tracer := otel.Tracer("github.com/studypulse/studypulse-api/pkg/predict/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIGateway{
		client: client,
		cfg:    cfg,
		schema: schema,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Predict sends the feature record to OpenAI and parses the response.
func (g *OpenAIGateway) Predict(parent context.Context, features StudentFeatures) (Prediction, error) {
	ctx, span := g.tracer.Start(parent, "openai.predict", trace.WithAttributes(
		attribute.String("model", g.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: predictorSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPredictionPrompt(features),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := g.client.CreateChatCompletion(ctx, request)
	duration := time.Since(start)
	predictDuration.WithLabelValues(g.cfg.Model).Observe(duration.Seconds())
	if err != nil {
		predictFailures.WithLabelValues(g.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Prediction{}, fmt.Errorf("openai predict: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		predictFailures.WithLabelValues(g.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Prediction{}, err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	prediction, err := g.parsePredictionResponse(content)
	if err != nil {
		predictFailures.WithLabelValues(g.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Prediction{}, err
	}

	return prediction, nil
}

func predictorSystemPrompt() string {
	return "You are an academic performance analyst. Respond with a JSON object containing " +
		"predictedGrade (0-100), confidence (0-100), factors (each with name, value, impact from -1 to 1, " +
		"description, color), and insights with risk (high/medium/low), description, and recommendations."
}

func buildPredictionPrompt(features StudentFeatures) string {
	builder := strings.Builder{}
	builder.WriteString("Analyze the following student data and provide a detailed prediction:\n")
	fmt.Fprintf(&builder, "Name: %s\n", features.Name)
	fmt.Fprintf(&builder, "GPA: %.2f\n", features.GPA)
	fmt.Fprintf(&builder, "Attendance: %.1f%%\n", features.Attendance)
	fmt.Fprintf(&builder, "Study Hours (weekly): %.1f\n", features.StudyHours)
	fmt.Fprintf(&builder, "Assignment Completion: %.1f%%\n", features.AssignmentCompletion)
	fmt.Fprintf(&builder, "Class Participation: %.1f%%\n", features.ClassParticipation)
	fmt.Fprintf(&builder, "Test Performance: %.1f%%\n", features.TestPerformance)
	builder.WriteString("\nProvide the predicted final grade, confidence level, key factors with impact scores, risk level, insights, and specific recommendations.\nReturn JSON.")

	return builder.String()
}

// parsePredictionResponse validates the raw model output against the schema,
// decodes it, clamps numeric ranges, and recolors each factor by impact sign.
func (g *OpenAIGateway) parsePredictionResponse(content string) (Prediction, error) {
	var raw interface{}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return Prediction{}, fmt.Errorf("parse prediction json: %w", err)
	}

	if err := g.schema.Validate(raw); err != nil {
		return Prediction{}, fmt.Errorf("prediction response does not match contract: %w", err)
	}

	var prediction Prediction
	if err := json.Unmarshal([]byte(content), &prediction); err != nil {
		return Prediction{}, fmt.Errorf("decode prediction: %w", err)
	}

	prediction.PredictedGrade = clamp(prediction.PredictedGrade, 0, 100)
	prediction.Confidence = clamp(prediction.Confidence, 0, 100)

	for i := range prediction.Factors {
		prediction.Factors[i].Impact = clamp(prediction.Factors[i].Impact, -1, 1)
		if prediction.Factors[i].Impact >= 0 {
			prediction.Factors[i].Color = colorPositive
		} else {
			prediction.Factors[i].Color = colorNegative
		}
	}

	return prediction, nil
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
