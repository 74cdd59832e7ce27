package llm

import (
	"context"
	"encoding/json"

	"github.com/jonathan/alumni-research/internal/schemas"
)

// CompleteJSON runs a JSON-mode generation and enforces the closed output
// schema at the boundary. The model's payload is untrusted external input:
// anything that is not valid JSON conforming to schemaContent is rejected
// with a *ResponseError, never passed downstream.
//
// schemaContent may be empty, in which case only JSON well-formedness is
// checked.
func CompleteJSON(ctx context.Context, client Client, prompt, schemaContent string, tier ModelTier) (json.RawMessage, error) {
	raw, err := client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return nil, err
	}

	cleaned := CleanJSONBlock(raw)
	if !json.Valid([]byte(cleaned)) {
		return nil, &ResponseError{Message: "payload is not valid JSON", Content: cleaned}
	}

	if schemaContent != "" {
		if err := schemas.ValidateJSONString(schemaContent, cleaned); err != nil {
			return nil, &ResponseError{Message: "payload failed schema validation", Content: cleaned, Cause: err}
		}
	}

	return json.RawMessage(cleaned), nil
}
