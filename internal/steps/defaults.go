package steps

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// The bundled assessment is used when no steps source is configured,
// so a first run works without the remote endpoint.
//
//go:embed assessment.json
var defaultAssessment []byte

// Default returns the bundled assessment, validated.
func Default() (*Sequence, map[string]any, error) {
	var doc Document
	if err := json.Unmarshal(defaultAssessment, &doc); err != nil {
		return nil, nil, fmt.Errorf("bundled assessment: %w", err)
	}
	seq, err := NewSequence(doc.Steps)
	if err != nil {
		return nil, nil, fmt.Errorf("bundled assessment: %w", err)
	}
	if err := seq.Validate(); err != nil {
		return nil, nil, fmt.Errorf("bundled assessment: %w", err)
	}
	return seq, doc.InitialData, nil
}
