package webtab

import (
	"context"
	"encoding/json"
)

// ExtractParams carries the per-request extraction hints.
type ExtractParams struct {
	// Prompt is the natural language description of what to extract.
	Prompt string `json:"prompt"`

	// Schema optionally constrains the output shape. When nil the schema is
	// omitted from the request and the service extracts guided by the prompt
	// alone.
	Schema *Schema `json:"schema,omitempty"`
}

// ExtractResult is the payload returned by the extraction service. Data is
// kept as raw JSON because its shape varies; Normalize classifies it.
type ExtractResult struct {
	// Data is the structured extraction output, if any.
	Data json.RawMessage

	// Raw is the entire response body, used for the plain-text fallback when
	// Data has no tabular interpretation.
	Raw json.RawMessage

	// Status is the service-reported job status (e.g. "completed").
	Status string
}

// Extractor extracts structured data from websites according to a prompt and
// an optional schema hint.
type Extractor interface {
	// Extract fetches the given URLs and returns structured data matching
	// params. The context controls timeout and cancellation. Service and
	// transport failures are reported with code EUNAVAILABLE, auth failures
	// with EUNAUTHORIZED.
	Extract(ctx context.Context, urls []string, params ExtractParams) (*ExtractResult, error)
}
