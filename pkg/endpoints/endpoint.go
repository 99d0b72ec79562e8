// Package endpoints defines LLM endpoint configurations and the local
// configuration store they are loaded from. An endpoint pairs a model with
// the connector and connection details the registry backend needs to reach
// it.
package endpoints

import (
	"encoding/json"

	"github.com/agentstation/endpointctl/pkg/errors"
)

// Defaults applied to optional configuration fields.
const (
	// DefaultMaxCallsPerSecond is the default request rate for an endpoint.
	DefaultMaxCallsPerSecond = 2

	// DefaultMaxConcurrency is the default number of in-flight requests.
	DefaultMaxConcurrency = 1
)

// Config is an endpoint configuration as authored in a connector config
// file or passed inline as JSON. Name, ConnectorType, and Model are
// required; the remaining fields receive defaults from ApplyDefaults.
type Config struct {
	Name              string         `json:"name"`
	ConnectorType     string         `json:"connector_type"`
	Model             string         `json:"model"`
	URI               string         `json:"uri"`
	Token             string         `json:"token"`
	MaxCallsPerSecond int            `json:"max_calls_per_second"`
	MaxConcurrency    int            `json:"max_concurrency"`
	Params            map[string]any `json:"params"`
}

// ParseConfig parses an endpoint configuration from JSON.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewParseError("json", "", "invalid endpoint config: "+err.Error(), err)
	}
	return &cfg, nil
}

// Validate checks that all required fields are present. Every missing
// field is reported in a single error.
func (c *Config) Validate() error {
	var missing []string
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.ConnectorType == "" {
		missing = append(missing, "connector_type")
	}
	if c.Model == "" {
		missing = append(missing, "model")
	}

	if len(missing) > 0 {
		return errors.NewValidationError("missing required fields in endpoint config", missing...)
	}
	return nil
}

// ApplyDefaults fills in the optional fields that were not set.
// URI and Token default to empty strings, which the zero value already
// provides; the rate and concurrency limits and Params need explicit
// defaults.
func (c *Config) ApplyDefaults() {
	if c.MaxCallsPerSecond == 0 {
		c.MaxCallsPerSecond = DefaultMaxCallsPerSecond
	}
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = DefaultMaxConcurrency
	}
	if c.Params == nil {
		c.Params = map[string]any{}
	}
}

// Record is a registered endpoint as returned by the registry backend.
// The registry owns these; this tool only reads them.
type Record struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ConnectorType string `json:"connector_type"`
	Model         string `json:"model"`
	URI           string `json:"uri,omitempty"`
	CreatedDate   string `json:"created_date,omitempty"`
}

// Matches reports whether the record's name or id equals the given
// identifier. Registration uniqueness is keyed on both.
func (r *Record) Matches(nameOrID string) bool {
	return r.Name == nameOrID || r.ID == nameOrID
}

// Summary is the condensed view of a registered endpoint used for listing.
type Summary struct {
	Name          string `json:"name"`
	Model         string `json:"model"`
	ConnectorType string `json:"connector_type"`
	ID            string `json:"id"`
}

// Summary returns the condensed view of the record.
func (r *Record) Summary() Summary {
	return Summary{
		Name:          r.Name,
		Model:         r.Model,
		ConnectorType: r.ConnectorType,
		ID:            r.ID,
	}
}

// Summaries condenses a list of records.
func Summaries(records []Record) []Summary {
	summaries := make([]Summary, 0, len(records))
	for i := range records {
		summaries = append(summaries, records[i].Summary())
	}
	return summaries
}
