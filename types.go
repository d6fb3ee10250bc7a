package openrouter

// ProviderPreferences steers which upstream providers serve a request.
type ProviderPreferences struct {
	Order             []string        `json:"order,omitempty"`
	AllowFallbacks    *bool           `json:"allow_fallbacks,omitempty"`
	RequireParameters *bool           `json:"require_parameters,omitempty"`
	DataCollection    string          `json:"data_collection,omitempty"` // allow or deny
	Only              []string        `json:"only,omitempty"`
	Ignore            []string        `json:"ignore,omitempty"`
	Quantizations     []string        `json:"quantizations,omitempty"`
	Sort              string          `json:"sort,omitempty"` // price, throughput, latency
	MaxPrice          *ProviderPrices `json:"max_price,omitempty"`
}

// ProviderPrices caps the per-token prices a routed provider may charge,
// in USD per million tokens.
type ProviderPrices struct {
	Prompt     *float64 `json:"prompt,omitempty"`
	Completion *float64 `json:"completion,omitempty"`
	Request    *float64 `json:"request,omitempty"`
	Image      *float64 `json:"image,omitempty"`
}

// ResponseFormat constrains model output to plain JSON or to a schema.
type ResponseFormat struct {
	Type       string            `json:"type"` // text, json_object, json_schema
	JSONSchema *JSONSchemaConfig `json:"json_schema,omitempty"`
}

// JSONSchemaConfig names and carries the schema for structured outputs.
type JSONSchemaConfig struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict,omitempty"`
	Schema map[string]any `json:"schema"`
}

// JSONObjectFormat requests free-form JSON output.
func JSONObjectFormat() ResponseFormat {
	return ResponseFormat{Type: "json_object"}
}

// JSONSchemaFormat requests output conforming to the given schema.
func JSONSchemaFormat(name string, strict bool, schema map[string]any) ResponseFormat {
	return ResponseFormat{
		Type: "json_schema",
		JSONSchema: &JSONSchemaConfig{
			Name:   name,
			Strict: strict,
			Schema: schema,
		},
	}
}
