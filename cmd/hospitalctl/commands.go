package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/urgences-proches/backend/internal/adapters/providers/geolocation"
	"github.com/urgences-proches/backend/internal/application/bootstrap"
	"github.com/urgences-proches/backend/internal/application/services"
	"github.com/urgences-proches/backend/internal/domain/entities"
	"github.com/urgences-proches/backend/internal/domain/providers"
	"github.com/urgences-proches/backend/internal/evaluation"
	"github.com/urgences-proches/backend/pkg/config"
)

type configLoader func() (*config.Config, error)

// createNearbyCmd creates the nearby subcommand
func createNearbyCmd(load configLoader) *cobra.Command {
	var (
		lat, lon        float64
		address         string
		query           string
		maxKm           float64
		specializations []string
		specifications  []string
		asJSON          bool
	)

	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List ranked hospitals around a position",
		Long:  `Fetch hospitals around --lat/--lon (or a geocoded --address), join curated data, place details and live traffic, then rank them`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			container, err := bootstrap.New(cfg, nil)
			if err != nil {
				return err
			}
			defer container.Close()

			var position providers.PositionProvider
			switch {
			case cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon"):
				position = geolocation.QueryPositionProvider{Latitude: &lat, Longitude: &lon}
			case address != "" && container.Geocoder != nil:
				position = geolocation.NewAddressPositionProvider(container.Geocoder, address)
			}

			filter := services.HospitalFilter{
				Query:           query,
				Specifications:  specifications,
				Specializations: specializations,
			}
			if cmd.Flags().Changed("max-km") {
				filter.MaxDistanceKm = &maxKm
			}

			result, err := container.Search.Nearby(cmd.Context(), services.NearbyQuery{Position: position, Filter: filter})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, result)
			}
			return writeNearby(out, result)
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude of the search centre")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude of the search centre")
	cmd.Flags().StringVar(&address, "address", "", "address to geocode when no coordinate is given")
	cmd.Flags().StringVarP(&query, "query", "q", "", "keep hospitals whose name contains this text")
	cmd.Flags().Float64Var(&maxKm, "max-km", 0, "maximum distance in kilometers")
	cmd.Flags().StringSliceVarP(&specializations, "specialization", "s", nil, "requested specialties, e.g. cardiologist,ent")
	cmd.Flags().StringSliceVar(&specifications, "specification", nil, "required services, e.g. fire_fighter,wheelchairAccessibleEntrance")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw result as JSON")

	return cmd
}

// createMatchCmd creates the match subcommand
func createMatchCmd(load configLoader) *cobra.Command {
	var (
		name     string
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Find the curated record matching a hospital name",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if strategy != "" {
				cfg.Supplemental.MatchStrategy = strategy
			}
			container, err := bootstrap.New(cfg, nil)
			if err != nil {
				return err
			}
			defer container.Close()

			record, err := container.Supplemental.FindByName(cmd.Context(), name)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), record)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "hospital name as the directory spells it")
	cmd.Flags().StringVar(&strategy, "strategy", "", "match strategy: first or longest")
	cmd.MarkFlagRequired("name")

	return cmd
}

// createScoreCmd creates the score subcommand
func createScoreCmd() *cobra.Command {
	var (
		distance        float64
		traffic         float64
		specializations []string
		specialties     []string
		accessibility   []string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the recommendation scores of raw signals",
		Long:  `Compute the four scores and the composite. Omitted signals are treated as unknown and get their neutral score`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hospital := &entities.EnrichedHospital{}
			if cmd.Flags().Changed("distance") {
				hospital.DistanceMeters = &distance
			}
			if cmd.Flags().Changed("specialties") {
				hospital.Supplemental = &entities.SupplementalRecord{}
				for _, key := range specialties {
					if !hospital.Supplemental.Specialties.Set(key, true) {
						return fmt.Errorf("unknown specialty %q", key)
					}
				}
			}
			if cmd.Flags().Changed("accessibility") {
				opts := &entities.AccessibilityOptions{}
				for _, key := range accessibility {
					if !opts.Set(key, true) {
						return fmt.Errorf("unknown accessibility option %q", key)
					}
				}
				hospital.Place = &entities.PlaceDetails{Accessibility: opts}
			}
			for _, key := range specializations {
				if !entities.IsSpecialtyKey(key) {
					return fmt.Errorf("unknown specialization %q", key)
				}
			}

			var level *float64
			if cmd.Flags().Changed("traffic") {
				level = &traffic
			}

			b := services.NewRecommendationService().Breakdown(hospital, specializations, level)
			return writeBreakdown(cmd.OutOrStdout(), b)
		},
	}

	cmd.Flags().Float64Var(&distance, "distance", 0, "distance in meters")
	cmd.Flags().Float64Var(&traffic, "traffic", 0, "congestion level 0-100")
	cmd.Flags().StringSliceVarP(&specializations, "specialization", "s", nil, "requested specialties")
	cmd.Flags().StringSliceVar(&specialties, "specialties", nil, "specialties the hospital offers")
	cmd.Flags().StringSliceVar(&accessibility, "accessibility", nil, "accessibility options the place offers")

	return cmd
}

// createEvaluateCmd creates the evaluate subcommand
func createEvaluateCmd(load configLoader) *cobra.Command {
	var (
		goldenPath   string
		strategies   []string
		minAccuracy  float64
		minPrecision float64
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score the name matcher against a labeled set",
		Long:  `Resolve every directory name of the golden set against the curated dataset with each strategy and report accuracy, precision and recall`,
		RunE: func(cmd *cobra.Command, args []string) error {
			golden, err := evaluation.LoadGoldenMatches(goldenPath)
			if err != nil {
				return err
			}
			if err := evaluation.ValidateGoldenMatches(golden); err != nil {
				return err
			}

			cfg, err := load()
			if err != nil {
				return err
			}
			container, err := bootstrap.New(cfg, nil)
			if err != nil {
				return err
			}
			defer container.Close()

			thresholds := evaluation.Thresholds{MinAccuracy: minAccuracy, MinPrecision: minPrecision}
			summaries := make([]*evaluation.EvalSummary, 0, len(strategies))
			var failed error
			for _, name := range strategies {
				strategy := services.MatchStrategy(name)
				if strategy != services.StrategyFirst && strategy != services.StrategyLongest {
					return fmt.Errorf("unknown strategy %q", name)
				}
				resolver := services.NewSupplementalService(container.Curated, services.NewNameMatcher(strategy))
				summary, err := evaluation.NewRunner(resolver, name).Run(cmd.Context(), golden)
				if err != nil {
					return err
				}
				summaries = append(summaries, summary)
				if err := thresholds.Check(summary); err != nil && failed == nil {
					failed = err
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				err = writeJSON(out, summaries)
			} else {
				err = writeEvaluation(out, summaries)
			}
			if err != nil {
				return err
			}
			return failed
		},
	}

	cmd.Flags().StringVar(&goldenPath, "golden", "data/golden_matches.json", "labeled name set")
	cmd.Flags().StringSliceVar(&strategies, "strategy", []string{string(services.StrategyFirst), string(services.StrategyLongest)}, "strategies to compare")
	cmd.Flags().Float64Var(&minAccuracy, "min-accuracy", 0, "fail when a strategy scores below this accuracy")
	cmd.Flags().Float64Var(&minPrecision, "min-precision", 0, "fail when a strategy scores below this precision")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summaries as JSON")

	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeNearby(w io.Writer, result *entities.NearbyResult) error {
	if result.Position.Notice != "" {
		fmt.Fprintln(w, result.Position.Notice)
	}
	fmt.Fprintf(w, "Around %.5f, %.5f: %d hospitals\n",
		result.Position.Location.Latitude, result.Position.Location.Longitude, result.Count)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSCORE\tNAME\tDISTANCE\tTRAFFIC\tID")
	for i, h := range result.Hospitals {
		score := "-"
		if h.Score != nil {
			score = fmt.Sprintf("%d", h.Score.Composite)
		}
		dist := "?"
		if km, ok := h.DistanceKm(); ok {
			dist = fmt.Sprintf("%.1f km", km)
		}
		traffic := "?"
		if h.TrafficLevel != nil {
			traffic = fmt.Sprintf("%.0f%%", *h.TrafficLevel)
		}
		marker := ""
		if result.RecommendedID != nil && *result.RecommendedID == h.ID {
			marker = " *"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s%s\t%s\t%s\t%s\n", i+1, score, h.Name, marker, dist, traffic, h.ID)
	}
	return tw.Flush()
}

func writeBreakdown(w io.Writer, b entities.ScoreBreakdown) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "distance\t%g\n", b.Distance)
	fmt.Fprintf(tw, "traffic\t%g\n", b.Traffic)
	fmt.Fprintf(tw, "specialty\t%g\n", b.Specialty)
	fmt.Fprintf(tw, "accessibility\t%g\n", b.Accessibility)
	fmt.Fprintf(tw, "composite\t%d\n", b.Composite)
	return tw.Flush()
}

func writeEvaluation(w io.Writer, summaries []*evaluation.EvalSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tACCURACY\tPRECISION\tRECALL\tWRONG\tMISSED\tSPURIOUS")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t%d\t%d\t%d\n", s.Strategy, s.Accuracy, s.Precision, s.Recall,
			s.Counts[evaluation.OutcomeWrong], s.Counts[evaluation.OutcomeMissed], s.Counts[evaluation.OutcomeSpurious])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, s := range summaries {
		for _, f := range s.Failures {
			fmt.Fprintf(w, "%s %s: %q expected %q got %q\n", s.Strategy, f.Outcome, f.Name, f.Expected, f.Got)
		}
	}
	return nil
}
