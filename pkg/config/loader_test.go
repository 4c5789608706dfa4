package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const strictJSON = `{
	"scenario": {
		"name": "loader-test",
		"horizonYears": 2,
		"operations": [
			{
				"id": "hotel-1",
				"operationType": "hotel",
				"horizonYears": 2,
				"capacity": 40,
				"price": 120,
				"monthlyUtilization": [0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6],
				"revenueMix": {"rooms": 1.0}
			}
		]
	},
	"projectConfig": {
		"discountRate": 0.1,
		"terminalGrowthRate": 0.02,
		"initialInvestment": 1000000
	}
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadFile_StrictJSON(t *testing.T) {
	path := writeTemp(t, "input.json", strictJSON)
	in, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if in.Scenario.Name != "loader-test" {
		t.Errorf("Expected scenario name loader-test, got %q", in.Scenario.Name)
	}
	if len(in.Scenario.Operations) != 1 || in.Scenario.Operations[0].Capacity != 40 {
		t.Error("Operations not decoded")
	}
	if in.ProjectConfig.InitialInvestment != 1000000 {
		t.Errorf("Numeric precision lost: %f", in.ProjectConfig.InitialInvestment)
	}
}

func TestParse_RepairsTrailingCommas(t *testing.T) {
	almostJSON := `{
		"scenario": {"name": "sloppy", "horizonYears": 1, "operations": [],},
		"projectConfig": {"discountRate": 0.1, "terminalGrowthRate": 0.02, "initialInvestment": 500000,},
	}`
	in, err := Parse([]byte(almostJSON))
	if err != nil {
		t.Fatalf("Parse should repair trailing commas: %v", err)
	}
	if in.Scenario.Name != "sloppy" {
		t.Errorf("Expected name sloppy, got %q", in.Scenario.Name)
	}
}

func TestParse_HjsonWithComments(t *testing.T) {
	hjsonDoc := `{
		# human-written input
		scenario: {
			name: commented
			horizonYears: 1
			operations: []
		}
		projectConfig: {
			discountRate: 0.1
			terminalGrowthRate: 0.02
			initialInvestment: 250000
		}
	}`
	in, err := Parse([]byte(hjsonDoc))
	if err != nil {
		t.Fatalf("Parse should fall through to hjson: %v", err)
	}
	if in.Scenario.Name != "commented" {
		t.Errorf("Expected name commented, got %q", in.Scenario.Name)
	}
	if in.ProjectConfig.InitialInvestment != 250000 {
		t.Errorf("Expected 250000, got %f", in.ProjectConfig.InitialInvestment)
	}
}

func TestLoadFile_Yaml(t *testing.T) {
	yamlDoc := `
scenario:
  name: yaml-resort
  horizonYears: 2
  operations:
    - id: villa-1
      operationType: villas
      horizonYears: 2
      capacity: 10
      price: 400
      monthlyUtilization: [0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5]
      revenueMix:
        rooms: 1.0
projectConfig:
  discountRate: 0.09
  terminalGrowthRate: 0.02
  initialInvestment: 3000000
`
	path := writeTemp(t, "input.yaml", yamlDoc)
	in, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if in.Scenario.Name != "yaml-resort" {
		t.Errorf("Expected name yaml-resort, got %q", in.Scenario.Name)
	}
	if in.Scenario.Operations[0].OperationType != "villas" {
		t.Errorf("Operation type not decoded: %q", in.Scenario.Operations[0].OperationType)
	}
	if in.ProjectConfig.DiscountRate != 0.09 {
		t.Errorf("Expected 0.09, got %f", in.ProjectConfig.DiscountRate)
	}
}

func TestParse_FormatsDecodeIdentically(t *testing.T) {
	hjsonDoc := `{
		scenario: {
			name: loader-test
			horizonYears: 2
			operations: [
				{
					id: hotel-1
					operationType: hotel
					horizonYears: 2
					capacity: 40
					price: 120
					monthlyUtilization: [0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6]
					revenueMix: {rooms: 1.0}
				}
			]
		}
		projectConfig: {
			discountRate: 0.1
			terminalGrowthRate: 0.02
			initialInvestment: 1000000
		}
	}`
	yamlDoc := `
scenario:
  name: loader-test
  horizonYears: 2
  operations:
    - id: hotel-1
      operationType: hotel
      horizonYears: 2
      capacity: 40
      price: 120
      monthlyUtilization: [0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.6]
      revenueMix:
        rooms: 1.0
projectConfig:
  discountRate: 0.1
  terminalGrowthRate: 0.02
  initialInvestment: 1000000
`
	fromJSON, err := Parse([]byte(strictJSON))
	if err != nil {
		t.Fatalf("JSON parse failed: %v", err)
	}
	fromHjson, err := Parse([]byte(hjsonDoc))
	if err != nil {
		t.Fatalf("HJSON parse failed: %v", err)
	}
	fromYaml, err := ParseYaml([]byte(yamlDoc))
	if err != nil {
		t.Fatalf("YAML parse failed: %v", err)
	}
	if !reflect.DeepEqual(fromJSON, fromHjson) {
		t.Error("HJSON decode differs from strict JSON decode")
	}
	if !reflect.DeepEqual(fromJSON, fromYaml) {
		t.Error("YAML decode differs from strict JSON decode")
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestParse_GarbageFails(t *testing.T) {
	// Repairs to a JSON array, which can never decode into the input
	// struct, so every strategy fails.
	if _, err := Parse([]byte("[1, 2, 3")); err == nil {
		t.Fatal("Expected all strategies to fail")
	}
}
