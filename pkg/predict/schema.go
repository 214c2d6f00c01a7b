package predict

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// predictionSchema describes the JSON shape the prediction service must
// return. The model output is free-form text, so the payload is validated
// before decoding; anything that does not match surfaces as an error.
const predictionSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["predictedGrade", "confidence", "factors", "insights"],
  "properties": {
    "predictedGrade": {"type": "number"},
    "confidence": {"type": "number"},
    "factors": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "value", "impact"],
        "properties": {
          "name": {"type": "string"},
          "value": {"type": "number"},
          "impact": {"type": "number"},
          "description": {"type": "string"},
          "color": {"type": "string"}
        }
      }
    },
    "insights": {
      "type": "object",
      "required": ["risk", "description", "recommendations"],
      "properties": {
        "risk": {"type": "string", "enum": ["high", "medium", "low"]},
        "description": {"type": "string"},
        "recommendations": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

func compilePredictionSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("prediction.json", strings.NewReader(predictionSchema)); err != nil {
		return nil, err
	}

	return compiler.Compile("prediction.json")
}
