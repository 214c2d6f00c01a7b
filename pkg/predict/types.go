package predict

import "context"

// StudentFeatures is the fixed record of academic indicators sent to the
// prediction service.
type StudentFeatures struct {
	Name                 string  `json:"name"`
	GPA                  float64 `json:"gpa"`
	Attendance           float64 `json:"attendance"`
	StudyHours           float64 `json:"studyHours"`
	AssignmentCompletion float64 `json:"assignmentCompletion"`
	ClassParticipation   float64 `json:"classParticipation"`
	TestPerformance      float64 `json:"testPerformance"`
}

// Factor attributes part of the prediction to one input feature. Impact is a
// signed score in [-1, 1]; Color is derived locally from its sign.
type Factor struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Impact      float64 `json:"impact"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
}

// Insights carries the narrative part of a prediction. Risk comes from the
// service verbatim and is not reclassified locally.
type Insights struct {
	Risk            string   `json:"risk"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

// Prediction is the structured result returned by the prediction service.
type Prediction struct {
	PredictedGrade float64  `json:"predictedGrade"`
	Confidence     float64  `json:"confidence"`
	Factors        []Factor `json:"factors"`
	Insights       Insights `json:"insights"`
}

// Gateway describes a service capable of predicting a final grade from a
// student feature record.
type Gateway interface {
	Predict(ctx context.Context, features StudentFeatures) (Prediction, error)
}
