package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"db-verify/internal/connector"
	"db-verify/internal/engine"
	"db-verify/internal/report"
	"db-verify/internal/validate"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
)

var (
	jsonPath string
	only     []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured validation suite",
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceCfg, targetCfg, err := GetEndpoints()
		if err != nil {
			return err
		}
		cases, err := LoadSuite()
		if err != nil {
			return err
		}

		// Case filter: --only restricts the suite by id.
		if len(only) > 0 {
			wanted := make(map[string]bool, len(only))
			for _, id := range only {
				wanted[id] = true
			}
			var filtered []engine.TestCase
			for _, tc := range cases {
				if wanted[tc.ID] {
					filtered = append(filtered, tc)
				}
			}
			if len(filtered) == 0 {
				return fmt.Errorf("no matching test cases for ids: %v", only)
			}
			cases = filtered
		}

		fmt.Printf("🔍 Source: %s (%s)\n", sourceCfg.Name, sourceCfg.Driver)
		source, err := connector.Open(sourceCfg.Driver, sourceCfg.DSN, sourceCfg.Schema)
		if err != nil {
			return err
		}
		defer source.Close()

		fmt.Printf("🔍 Target: %s (%s)\n", targetCfg.Name, targetCfg.Driver)
		target, err := connector.Open(targetCfg.Driver, targetCfg.DSN, targetCfg.Schema)
		if err != nil {
			return err
		}
		defer target.Close()

		log.Printf("Running %d test case(s)...", len(cases))
		start := time.Now()

		uiprogress.Start()
		bar := uiprogress.AddBar(len(cases)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Validating: "
		})

		runner := &engine.Runner{Source: source, Target: target}
		results := make([]engine.CaseResult, 0, len(cases))
		for _, tc := range cases {
			results = append(results, runner.Execute(tc))
			bar.Incr()
		}

		uiprogress.Stop()

		report.Summary(os.Stdout, results)
		log.Printf("Suite Done! Time Elapsed: %s", time.Since(start))

		if jsonPath != "" {
			if err := report.WriteJSON(jsonPath, results); err != nil {
				return err
			}
			log.Printf("JSON report written to %s", jsonPath)
		}

		failed := 0
		for _, r := range results {
			if r.Status == validate.StatusFailed {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d test case(s) did not pass", failed)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&jsonPath, "json", "", "Write a JSON report to this path")
	runCmd.Flags().StringSliceVar(&only, "only", []string{}, "Run only the test cases with these ids")
}
