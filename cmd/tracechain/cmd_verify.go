package main

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"

	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/app/services"
	"github.com/tracechain/tracechain/config"
	"github.com/tracechain/tracechain/pkg/workerpool"
)

// tracechain fixtures:verify
var fixturesVerifyCmd = &cobra.Command{
	Use:   "fixtures:verify",
	Short: "Check fixture integrity and build every product journey",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		dir, err := loadFixtureDirectory()
		if err != nil {
			return err
		}

		problems := dir.Verify()

		// Build every journey concurrently; each build re-checks the
		// event-implied status against the recorded one.
		journeys := services.NewJourneyService(dir)
		audits := services.NewAuditService(dir)

		pool := workerpool.New(4)
		var mu sync.Mutex

		for _, p := range dir.Products(nil) {
			product := p
			pool.SubmitWait(func() { //nolint:errcheck
				timeline, ok := journeys.Timeline(product.ID)
				if !ok {
					mu.Lock()
					problems = append(problems, fmt.Sprintf("product %s: journey build failed", product.ID))
					mu.Unlock()
					return
				}
				if len(timeline) < 2 {
					mu.Lock()
					problems = append(problems, fmt.Sprintf("product %s: timeline has %d entries, want at least 2", product.ID, len(timeline)))
					mu.Unlock()
				}
				for i := 1; i < len(timeline); i++ {
					if timeline[i].Timestamp.Before(timeline[i-1].Timestamp.Time) {
						mu.Lock()
						problems = append(problems, fmt.Sprintf("product %s: timeline entry %d out of order", product.ID, i))
						mu.Unlock()
					}
				}
			})
		}
		pool.Shutdown()

		for _, d := range audits.Drift() {
			problems = append(problems, fmt.Sprintf("product %s: recorded status %q but events imply %q", d.ProductID, d.Recorded, d.Implied))
		}

		if len(problems) == 0 {
			fmt.Println("✅  Fixture verified: no problems found.")
			return nil
		}

		sort.Strings(problems)
		for _, p := range problems {
			fmt.Println("  •", p)
		}
		return fmt.Errorf("fixture verification found %d problem(s)", len(problems))
	},
}

func loadFixtureDirectory() (*repositories.Directory, error) {
	if path := config.FixturePath(); path != "" {
		return repositories.LoadDirectoryFile(path)
	}
	return repositories.DefaultDirectory(), nil
}
