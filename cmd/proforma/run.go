package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resort_proforma/pkg/core/pipeline"
	"resort_proforma/pkg/core/validate"
	"resort_proforma/pkg/report"
)

func runCmd() *cobra.Command {
	var inputPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline for a model input file",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(inputPath)
			if err != nil {
				return err
			}

			orch := pipeline.New(nil)
			orch.Verbose = verbose
			out, err := orch.Run(cmd.Context(), in)
			if err != nil {
				return err
			}

			if outputJSON {
				return printJSON(out)
			}
			fmt.Print(report.Markdown(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "model input file (json/hjson/yaml)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log per-stage progress")
	return cmd
}

func validateCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a model input file without running the pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(inputPath)
			if err != nil {
				return err
			}
			if err := validate.Input(in); err != nil {
				return err
			}
			fmt.Println("Input is valid.")
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "model input file (json/hjson/yaml)")
	return cmd
}

func reportCmd() *cobra.Command {
	var inputPath string
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the pipeline and render a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(inputPath)
			if err != nil {
				return err
			}
			out, err := pipeline.New(nil).Run(cmd.Context(), in)
			if err != nil {
				return err
			}
			if asHTML {
				html, err := report.Html(out)
				if err != nil {
					return err
				}
				fmt.Print(html)
				return nil
			}
			fmt.Print(report.Markdown(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "model input file (json/hjson/yaml)")
	cmd.Flags().BoolVar(&asHTML, "html", false, "render HTML instead of markdown")
	return cmd
}
