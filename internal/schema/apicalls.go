package schema

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// HTTPCall describes one outgoing HTTP request found in a frontend file.
type HTTPCall struct {
	Function      string `yaml:"calling_function_name"`
	Endpoint      string `yaml:"api_endpoint"`
	Method        string `yaml:"http_method"`
	Parameters    []any  `yaml:"request_parameters"`
	ResponseUsage string `yaml:"response_usage"`
}

// FileCalls groups the HTTP calls found in a single file.
type FileCalls struct {
	Path  string
	Calls []HTTPCall
}

// EndpointParam is one path or query parameter of a served endpoint.
type EndpointParam struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Default  any    `yaml:"default"`
	Required bool   `yaml:"required"`
}

// Endpoint describes one HTTP endpoint served by the analyzed project.
type Endpoint struct {
	Method      string          `yaml:"http_method"`
	Route       string          `yaml:"route_path"`
	Summary     string          `yaml:"summary"`
	PathParams  []EndpointParam `yaml:"path_parameters"`
	QueryParams []EndpointParam `yaml:"query_parameters"`
	RequestBody any             `yaml:"request_body_model"`
	Response    any             `yaml:"response_model"`
}

// FileEndpoints groups the endpoints found in a single file.
type FileEndpoints struct {
	Path      string
	Endpoints []Endpoint
}

// ParseHTTPCalls decodes a per-file HTTP call analysis reply. Unlike the
// core schemas this is lenient: a reply that is not a list decodes to nil,
// and only undecodable YAML is an error. The caller logs and skips the file.
func ParseHTTPCalls(reply string) ([]HTTPCall, error) {
	block := lenientBlock(reply)
	if block == "" {
		return nil, nil
	}
	var calls []HTTPCall
	if err := yaml.Unmarshal([]byte(block), &calls); err != nil {
		return nil, errf("http calls", "", nil, "invalid YAML: %v", err)
	}
	return calls, nil
}

// ParseEndpoints decodes a per-file endpoint analysis reply, with the same
// lenient policy as ParseHTTPCalls.
func ParseEndpoints(reply string) ([]Endpoint, error) {
	block := lenientBlock(reply)
	if block == "" {
		return nil, nil
	}
	var endpoints []Endpoint
	if err := yaml.Unmarshal([]byte(block), &endpoints); err != nil {
		return nil, errf("endpoints", "", nil, "invalid YAML: %v", err)
	}
	return endpoints, nil
}

// lenientBlock extracts a fenced block when one is present, otherwise treats
// the whole reply as the block.
func lenientBlock(reply string) string {
	if block, err := ExtractFencedYAML(reply); err == nil {
		return block
	}
	return strings.TrimSpace(reply)
}
