package dto

import "github.com/studypulse/studypulse-api/pkg/predict"

// PredictionRequest supplies the indicators that cannot be derived from the
// stored collections. Everything else (GPA, attendance, study hours,
// assignment completion) is computed from live data.
type PredictionRequest struct {
	ClassParticipation float64 `json:"class_participation" validate:"min=0,max=100"`
	TestPerformance    float64 `json:"test_performance" validate:"min=0,max=100"`
}

// PredictionResponse returns the gateway result alongside the feature record
// that produced it.
type PredictionResponse struct {
	Features   predict.StudentFeatures `json:"features"`
	Prediction predict.Prediction      `json:"prediction"`
}
