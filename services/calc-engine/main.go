// calc-engine is a thin subprocess wrapper around the pipeline: it
// takes a FullModelInput as a JSON payload and either validates it
// (-mode check) or runs the full model and prints the output JSON
// (-mode calculate). Intended for hosts that want process isolation
// around heavy runs.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"resort_proforma/pkg/config"
	"resort_proforma/pkg/core/pipeline"
	"resort_proforma/pkg/core/validate"
	"resort_proforma/pkg/models"
)

func main() {
	mode := flag.String("mode", "calculate", "Mode: check or calculate")
	dataStr := flag.String("data", "", "JSON data payload (FullModelInput)")
	flag.Parse()

	if *dataStr == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	var input models.FullModelInput
	if _, err := config.SmartParse(*dataStr, &input); err != nil {
		fmt.Printf("Error unmarshaling data: %v\n", err)
		os.Exit(1)
	}

	switch *mode {
	case "check":
		runChecks(input)
	case "calculate":
		runCalculations(input)
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

func runChecks(input models.FullModelInput) {
	if err := validate.Input(input); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Success: input is valid")
}

func runCalculations(input models.FullModelInput) {
	out, err := pipeline.New(nil).Run(context.Background(), input)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Printf("Error encoding output: %v\n", err)
		os.Exit(1)
	}
}
