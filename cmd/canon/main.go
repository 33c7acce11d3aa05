package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/travel-diary/canon-engine/config"
	"github.com/travel-diary/canon-engine/container"
	canonerrors "github.com/travel-diary/canon-engine/errors"
	"github.com/travel-diary/canon-engine/ingest"
	"github.com/travel-diary/canon-engine/linker"
	"github.com/travel-diary/canon-engine/model"
	"github.com/travel-diary/canon-engine/report"
	"github.com/travel-diary/canon-engine/tours"
)

var (
	householdsFile    string
	personsFile       string
	daysFile          string
	unlinkedTripsFile string
	configFile        string
	outputFile        string
	outputFormat      string
	step              string
	personDaySummary  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "canon",
		Short: "Canonical household-travel-survey processing engine",
		Long: `canon ingests household-travel-survey CSV tables, links raw trip
segments into linked trips, extracts home-based tours and anchor-expanded
subtours, and validates the result against the six-table canonical schema.`,
	}

	rootCmd.PersistentFlags().StringVar(&householdsFile, "households", "", "household table CSV (required)")
	rootCmd.PersistentFlags().StringVar(&personsFile, "persons", "", "person table CSV (required)")
	rootCmd.PersistentFlags().StringVar(&daysFile, "days", "", "day table CSV (required)")
	rootCmd.PersistentFlags().StringVar(&unlinkedTripsFile, "unlinked-trips", "", "unlinked_trip table CSV (required)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration YAML file")
	rootCmd.PersistentFlags().StringVar(&outputFile, "output", "", "output file (default stdout)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "output format: text or json (default from config)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: link, extract tours, validate every table",
		RunE:  runPipeline,
	}
	runCmd.Flags().StringVar(&step, "step", "final", "pipeline step for required-field evaluation (raw, linked, tours, final)")
	runCmd.Flags().StringVar(&personDaySummary, "person-day-summary", "", "write the supplemented per-person-day tour/stop summary as JSON to this file")
	rootCmd.AddCommand(runCmd)

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Ingest and validate the raw tables only, without linking or tour extraction",
		RunE:  runValidateOnly,
	}
	validateCmd.Flags().StringVar(&step, "step", "raw", "pipeline step for required-field evaluation")
	rootCmd.AddCommand(validateCmd)

	generateConfigCmd := &cobra.Command{
		Use:   "generate-config [file]",
		Short: "Write the built-in default configuration to a YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "canon-engine.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			return config.GenerateDefaultConfigFile(path)
		},
	}
	rootCmd.AddCommand(generateConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.LoadFile(configFile)
}

func requireInputs() error {
	if householdsFile == "" || personsFile == "" || daysFile == "" || unlinkedTripsFile == "" {
		return fmt.Errorf("--households, --persons, --days, and --unlinked-trips are all required")
	}
	return nil
}

// ingestTables loads the four raw CSV tables into the container;
// linked_trip and tour are populated later by the pipeline itself.
func ingestTables(c *container.Container) error {
	if err := requireInputs(); err != nil {
		return err
	}

	hhFile, err := os.Open(householdsFile)
	if err != nil {
		return fmt.Errorf("households: %w", err)
	}
	defer hhFile.Close()
	hh, err := ingest.LoadHouseholds(hhFile)
	if err != nil {
		return fmt.Errorf("households: %w", err)
	}
	c.SetHouseholds(hh)

	personsF, err := os.Open(personsFile)
	if err != nil {
		return fmt.Errorf("persons: %w", err)
	}
	defer personsF.Close()
	persons, err := ingest.LoadPersons(personsF)
	if err != nil {
		return fmt.Errorf("persons: %w", err)
	}
	c.SetPersons(persons)

	daysF, err := os.Open(daysFile)
	if err != nil {
		return fmt.Errorf("days: %w", err)
	}
	defer daysF.Close()
	days, err := ingest.LoadDays(daysF)
	if err != nil {
		return fmt.Errorf("days: %w", err)
	}
	c.SetDays(days)

	tripsF, err := os.Open(unlinkedTripsFile)
	if err != nil {
		return fmt.Errorf("unlinked_trips: %w", err)
	}
	defer tripsF.Close()
	trips, err := ingest.LoadUnlinkedTrips(tripsF)
	if err != nil {
		return fmt.Errorf("unlinked_trips: %w", err)
	}
	c.SetUnlinkedTrips(trips)

	return nil
}

func runValidateOnly(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c := container.New()
	if err := ingestTables(c); err != nil {
		return err
	}

	errs := c.ValidateAll(step)
	return emitReport("canon validate", errs, cfg)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c := container.New()
	if err := ingestTables(c); err != nil {
		return err
	}

	if errs := c.ValidateAll("raw"); containsFatal(errs) {
		return emitReport("canon run (raw)", errs, cfg)
	}

	annotatedUnlinked, linkedTrips, linkErrs := linker.Link(c.UnlinkedTrips(), cfg.Linker)
	c.SetUnlinkedTrips(annotatedUnlinked)
	c.SetLinkedTrips(linkedTrips)
	if containsFatal(linkErrs) {
		return emitReport("canon run (link)", linkErrs, cfg)
	}

	annotatedLinked, tourRows, tourErrs := tours.ExtractTours(c.LinkedTrips(), c.Persons(), c.Households(), cfg.Tour)
	c.SetLinkedTrips(annotatedLinked)
	c.SetTours(tourRows)
	c.SetUnlinkedTrips(backfillTourIDs(c.UnlinkedTrips(), annotatedLinked))

	if personDaySummary != "" {
		if err := writePersonDaySummary(personDaySummary, c.Tours()); err != nil {
			return fmt.Errorf("person-day summary: %w", err)
		}
	}

	var all []*canonerrors.CanonError
	all = append(all, linkErrs...)
	all = append(all, tourErrs...)
	all = append(all, c.ValidateAll(step)...)

	return emitReport("canon run", all, cfg)
}

// writePersonDaySummary renders the supplemented per-person-day
// reporting view (tours.SummarizePersonDays) as indented JSON.
func writePersonDaySummary(path string, tourRows []model.Tour) error {
	summary := tours.SummarizePersonDays(tourRows)
	b, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// backfillTourIDs copies each linked trip's tour_id onto the unlinked
// trip segments that reference it via linked_trip_id, completing the
// annotation the linker started (spec §3 lifecycle, §6 output contract).
func backfillTourIDs(trips []model.UnlinkedTrip, linkedTrips []model.LinkedTrip) []model.UnlinkedTrip {
	tourByLinkedID := make(map[int64]int64, len(linkedTrips))
	for _, lt := range linkedTrips {
		if lt.TourID != nil {
			tourByLinkedID[lt.LinkedTripID] = *lt.TourID
		}
	}

	out := make([]model.UnlinkedTrip, len(trips))
	for i, t := range trips {
		if t.LinkedTripID != nil {
			if tourID, ok := tourByLinkedID[*t.LinkedTripID]; ok {
				id := tourID
				t.TourID = &id
			}
		}
		out[i] = t
	}
	return out
}

// containsFatal reports whether errs contains an algorithmic-invariant
// violation, which aborts the pipeline before the next stage runs
// (spec §7's fatal-vs-tolerable distinction).
func containsFatal(errs []*canonerrors.CanonError) bool {
	for _, e := range errs {
		if e != nil && e.Kind == canonerrors.KindAlgorithmic {
			return true
		}
	}
	return false
}

func emitReport(label string, errs []*canonerrors.CanonError, cfg *config.Config) error {
	r := report.FromErrors(label, errs)

	outCfg := cfg.Output
	if outputFormat != "" {
		outCfg.Format = outputFormat
	}

	out, err := report.Render(r, outCfg)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(out), 0o600); err != nil {
			return err
		}
	} else {
		fmt.Print(out)
	}

	if r.HasError() {
		os.Exit(1)
	}
	return nil
}
