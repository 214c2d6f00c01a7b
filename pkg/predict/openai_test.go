package predict

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T) *OpenAIGateway {
	t.Helper()

	gateway, err := NewOpenAIGateway(OpenAIConfig{APIKey: "test-key", Logger: zerolog.Nop()})
	require.NoError(t, err)

	return gateway
}

func TestNewOpenAIGatewayRequiresKey(t *testing.T) {
	_, err := NewOpenAIGateway(OpenAIConfig{})
	assert.Error(t, err)
}

func TestParsePredictionResponse(t *testing.T) {
	gateway := newTestGateway(t)

	content := `{
		"predictedGrade": 87.5,
		"confidence": 82,
		"factors": [
			{"name": "Attendance", "value": 95, "impact": 0.4, "description": "Strong attendance", "color": "blue"},
			{"name": "Study Hours", "value": 6, "impact": -0.2, "description": "Below average study time", "color": "purple"}
		],
		"insights": {
			"risk": "low",
			"description": "On track for a strong final grade.",
			"recommendations": ["Increase weekly study hours", "Keep attendance up"]
		}
	}`

	prediction, err := gateway.parsePredictionResponse(content)
	require.NoError(t, err)

	assert.Equal(t, 87.5, prediction.PredictedGrade)
	assert.Equal(t, 82.0, prediction.Confidence)
	assert.Equal(t, "low", prediction.Insights.Risk)
	assert.Len(t, prediction.Insights.Recommendations, 2)

	// Colors come from the impact sign, not from the service.
	require.Len(t, prediction.Factors, 2)
	assert.Equal(t, colorPositive, prediction.Factors[0].Color)
	assert.Equal(t, colorNegative, prediction.Factors[1].Color)
}

func TestParsePredictionResponseClampsRanges(t *testing.T) {
	gateway := newTestGateway(t)

	content := `{
		"predictedGrade": 140,
		"confidence": -5,
		"factors": [{"name": "GPA", "value": 3.9, "impact": 2.5}],
		"insights": {"risk": "medium", "description": "", "recommendations": []}
	}`

	prediction, err := gateway.parsePredictionResponse(content)
	require.NoError(t, err)

	assert.Equal(t, 100.0, prediction.PredictedGrade)
	assert.Equal(t, 0.0, prediction.Confidence)
	assert.Equal(t, 1.0, prediction.Factors[0].Impact)
	assert.Equal(t, colorPositive, prediction.Factors[0].Color)
}

func TestParsePredictionResponseRejectsInvalidJSON(t *testing.T) {
	gateway := newTestGateway(t)

	_, err := gateway.parsePredictionResponse("I think the student will do great!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse prediction json")
}

func TestParsePredictionResponseRejectsMissingFields(t *testing.T) {
	gateway := newTestGateway(t)

	_, err := gateway.parsePredictionResponse(`{"predictedGrade": 80}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contract")
}

func TestParsePredictionResponseRejectsUnknownRisk(t *testing.T) {
	gateway := newTestGateway(t)

	content := `{
		"predictedGrade": 80,
		"confidence": 70,
		"factors": [],
		"insights": {"risk": "catastrophic", "description": "", "recommendations": []}
	}`

	_, err := gateway.parsePredictionResponse(content)
	assert.Error(t, err)
}

func TestBuildPredictionPromptListsEveryFeature(t *testing.T) {
	prompt := buildPredictionPrompt(StudentFeatures{
		Name:                 "Alex",
		GPA:                  3.6,
		Attendance:           92,
		StudyHours:           14.5,
		AssignmentCompletion: 85,
		ClassParticipation:   70,
		TestPerformance:      78,
	})

	for _, fragment := range []string{"Alex", "3.60", "92.0%", "14.5", "85.0%", "70.0%", "78.0%"} {
		assert.True(t, strings.Contains(prompt, fragment), "prompt missing %q", fragment)
	}
}
