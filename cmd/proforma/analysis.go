package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resort_proforma/pkg/config"
	"resort_proforma/pkg/core/analysis"
	"resort_proforma/pkg/core/pipeline"
	"resort_proforma/pkg/models"
)

func sensitivityCmd() *cobra.Command {
	var inputPath string
	var variable string
	var min, max float64
	var steps int
	var secondary string
	var secondaryMin, secondaryMax float64
	var secondarySteps int

	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "Sweep 1 or 2 variables and report KPIs per grid cell",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(inputPath)
			if err != nil {
				return err
			}

			cfg := analysis.SensitivityConfig{
				Primary: analysis.Axis{
					Variable: analysis.Variable(variable),
					Min:      min, Max: max, Steps: steps,
				},
			}
			if secondary != "" {
				cfg.Secondary = &analysis.Axis{
					Variable: analysis.Variable(secondary),
					Min:      secondaryMin, Max: secondaryMax, Steps: secondarySteps,
				}
			}

			res, err := analysis.RunSensitivity(cmd.Context(), in, cfg)
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(res)
			}
			for _, cell := range res.Cells {
				label := fmt.Sprintf("%s=%.4f", cfg.Primary.Variable, cell.PrimaryValue)
				if cell.SecondaryValue != nil {
					label += fmt.Sprintf(" %s=%.4f", cfg.Secondary.Variable, *cell.SecondaryValue)
				}
				if cell.Error != "" {
					fmt.Printf("%-40s error: %s\n", label, cell.Error)
					continue
				}
				fmt.Printf("%-40s NPV %.0f\n", label, cell.Kpis.Npv)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "model input file (json/hjson/yaml)")
	cmd.Flags().StringVar(&variable, "variable", "discount_rate", "primary swept variable")
	cmd.Flags().Float64Var(&min, "min", 0, "primary axis minimum")
	cmd.Flags().Float64Var(&max, "max", 0, "primary axis maximum")
	cmd.Flags().IntVar(&steps, "steps", 5, "primary axis steps (max 10)")
	cmd.Flags().StringVar(&secondary, "secondary", "", "optional second swept variable")
	cmd.Flags().Float64Var(&secondaryMin, "secondary-min", 0, "secondary axis minimum")
	cmd.Flags().Float64Var(&secondaryMax, "secondary-max", 0, "secondary axis maximum")
	cmd.Flags().IntVar(&secondarySteps, "secondary-steps", 5, "secondary axis steps (max 10)")
	return cmd
}

func bridgeCmd() *cobra.Command {
	var basePath, targetPath string

	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Attribute the NPV move between two inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := loadInput(basePath)
			if err != nil {
				return fmt.Errorf("base: %w", err)
			}
			target, err := loadInput(targetPath)
			if err != nil {
				return fmt.Errorf("target: %w", err)
			}

			steps, err := analysis.CalculateVarianceBridge(cmd.Context(), base, target)
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(steps)
			}
			for _, s := range steps {
				fmt.Printf("%-12s NPV %.0f  (%+.0f)\n", s.Name, s.Npv, s.Delta)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&basePath, "input", "", "base model input file")
	cmd.Flags().StringVar(&targetPath, "target", "", "target model input file")
	return cmd
}

func covenantsCmd() *cobra.Command {
	var inputPath string
	var covenantsPath string

	cmd := &cobra.Command{
		Use:   "covenants",
		Short: "Run the pipeline and test debt covenants month by month",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(inputPath)
			if err != nil {
				return err
			}
			covs, err := loadCovenants(covenantsPath)
			if err != nil {
				return err
			}

			out, err := pipeline.New(nil).Run(cmd.Context(), in)
			if err != nil {
				return err
			}
			breaches, err := analysis.CheckCovenants(nil, out.Capital.DebtKpis, covs)
			if err != nil {
				return err
			}
			if outputJSON {
				return printJSON(breaches)
			}
			if len(breaches) == 0 {
				fmt.Println("No covenant breaches.")
				return nil
			}
			for _, b := range breaches {
				fmt.Printf("month %3d  %s  %-8s value %.4f threshold %.4f (consecutive %d)\n",
					b.MonthIndex, b.CovenantID, b.Severity, *b.Value, b.Threshold, b.Consecutive)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "model input file (json/hjson/yaml)")
	cmd.Flags().StringVar(&covenantsPath, "covenants", "", "covenant list file (json)")
	return cmd
}

func loadCovenants(path string) ([]models.Covenant, error) {
	if path == "" {
		return nil, fmt.Errorf("--covenants is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read covenant file: %w", err)
	}
	var covs []models.Covenant
	if _, err := config.SmartParse(string(raw), &covs); err != nil {
		return nil, fmt.Errorf("failed to parse covenant file: %w", err)
	}
	return covs, nil
}
