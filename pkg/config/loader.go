// Package config loads FullModelInput documents from files or raw
// bytes. JSON is the wire format, but human-authored inputs are common,
// so the loader is tolerant: strict JSON first, then automatic repair
// of near-JSON (trailing commas, single quotes, comments), then HJSON.
// YAML files route through their own decoder into the same struct.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
	yaml "gopkg.in/yaml.v2"

	"resort_proforma/pkg/models"
)

// LoadFile reads a model input from path. The extension selects the
// decoder: .yaml/.yml use YAML, everything else goes through the
// tolerant JSON chain.
func LoadFile(path string) (*models.FullModelInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYaml(raw)
	default:
		return Parse(raw)
	}
}

// Parse decodes a model input from JSON-ish bytes via SmartParse.
func Parse(raw []byte) (*models.FullModelInput, error) {
	var in models.FullModelInput
	if _, err := SmartParse(string(raw), &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// ParseYaml decodes a model input from YAML. yaml.v2 produces
// map[interface{}]interface{} nodes, so the document is normalized and
// re-marshalled through JSON to pick up the struct's JSON tags.
func ParseYaml(raw []byte) (*models.FullModelInput, error) {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	jsonBytes, err := json.Marshal(normalizeYaml(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode yaml document: %w", err)
	}
	var in models.FullModelInput
	if err := json.Unmarshal(jsonBytes, &in); err != nil {
		return nil, fmt.Errorf("yaml document does not match the input schema: %w", err)
	}
	return &in, nil
}

// SmartParse tries multiple parsing strategies to extract valid JSON.
// Order of attempts:
// 1. Standard JSON parse
// 2. JSON repair
// 3. Hjson parse (most lenient)
// Returns the JSON text that successfully decoded into schema.
func SmartParse(input string, schema interface{}) (string, error) {
	// Try 1: Standard JSON
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return input, nil
	}

	// Try 2: JSON Repair
	repaired, err := jsonrepair.RepairJSON(input)
	if err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return repaired, nil
		}
	}

	// Try 3: Hjson (most lenient)
	var loose interface{}
	if err := hjson.Unmarshal([]byte(input), &loose); err == nil {
		jsonBytes, err := json.Marshal(loose)
		if err == nil {
			if err := json.Unmarshal(jsonBytes, schema); err == nil {
				return string(jsonBytes), nil
			}
		}
	}

	return "", fmt.Errorf("all parsing strategies failed for input")
}

// normalizeYaml rewrites yaml.v2's map[interface{}]interface{} nodes as
// map[string]interface{} so the document survives a JSON round trip.
func normalizeYaml(v interface{}) interface{} {
	switch node := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(node))
		for k, val := range node {
			out[fmt.Sprintf("%v", k)] = normalizeYaml(val)
		}
		return out
	case []interface{}:
		for i, val := range node {
			node[i] = normalizeYaml(val)
		}
		return node
	default:
		return v
	}
}
