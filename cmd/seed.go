package cmd

import (
	"fmt"
	"log"
	"time"

	"db-verify/internal/connector"
	"db-verify/internal/engine"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	seedCount int
	seedValue int64
	seedTable string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed both endpoints with demo data for a trial run",
	Long: `Seed creates a demo product table on the source endpoint and a drifted
copy on the target endpoint. The drift stays within the tolerances used by
the sample suite, so a seeded pair demonstrates every comparison category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceCfg, targetCfg, err := GetEndpoints()
		if err != nil {
			return err
		}

		targetCount := viper.GetInt("settings.seed_count")
		if seedCount > 0 {
			targetCount = seedCount
		}

		fmt.Printf("🌱 Source: %s (%s)\n", sourceCfg.Name, sourceCfg.Driver)
		source, err := connector.Open(sourceCfg.Driver, sourceCfg.DSN, sourceCfg.Schema)
		if err != nil {
			return err
		}
		defer source.Close()

		fmt.Printf("🌱 Target: %s (%s)\n", targetCfg.Name, targetCfg.Driver)
		target, err := connector.Open(targetCfg.Driver, targetCfg.DSN, targetCfg.Schema)
		if err != nil {
			return err
		}
		defer target.Close()

		log.Printf("Seeding %d row(s) per side into %s...", targetCount, seedTable)
		start := time.Now()

		uiprogress.Start()
		bar := uiprogress.AddBar(targetCount * 2).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Seeding: "
		})

		sourceRows, err := engine.Seed(source.DB(), source.Dialect(), engine.SeedSpec{
			Table: seedTable,
			Count: targetCount,
			Seed:  seedValue,
		}, func() { bar.Incr() })
		if err != nil {
			uiprogress.Stop()
			return err
		}
		targetRows, err := engine.Seed(target.DB(), target.Dialect(), engine.SeedSpec{
			Table: seedTable,
			Count: targetCount,
			Seed:  seedValue,
			Drift: true,
		}, func() { bar.Incr() })
		if err != nil {
			uiprogress.Stop()
			return err
		}

		uiprogress.Stop()
		fmt.Printf("\n🌱 Seeded %d source row(s), %d target row(s)\n", sourceRows, targetRows)
		log.Printf("Seed Done! Time Elapsed: %s", time.Since(start))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedCount, "count", 0, "Number of rows to seed per side (overrides config)")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 11, "Random seed shared by both sides")
	seedCmd.Flags().StringVar(&seedTable, "table", "products", "Demo table name")

	viper.BindPFlag("settings.seed_count", seedCmd.Flags().Lookup("count"))
	viper.SetDefault("settings.seed_count", 500)
}
