package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"eosc-harvest/internal/config"
	"eosc-harvest/internal/logging"
	"eosc-harvest/internal/pipeline"
)

var rootCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Harvest GTN training material into EOSC training resources",
	Long: "Fetches the Galaxy Training Network catalog, converts new and updated " +
		"tutorials into the EOSC training-resource profile, validates them against " +
		"the portal and sorts the results into upload-ready and failed buckets.",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := pipeline.New(config.Load())
		return p.Run(context.Background())
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload the validated resources from the last run to the portal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		p := pipeline.New(cfg)
		p.EOSC.User = cfg.EOSCUser
		p.EOSC.Pass = cfg.EOSCPass

		report, err := p.Upload(context.Background())
		if err != nil {
			return err
		}
		for _, f := range report.Failures {
			fmt.Fprintln(os.Stderr, f)
		}
		return nil
	},
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logging.Init()

	rootCmd.AddCommand(uploadCmd)
	if err := rootCmd.Execute(); err != nil {
		logging.Log.Fatalf("harvest failed: %v", err)
	}
}
