// Command catchment solves catchment circle radii for a CSV of target
// points and optionally renders the result as a PNG.
//
// Usage:
//
//	catchment solve --targets targets.csv --out placements.csv
//	catchment solve --postcodes targets.csv --locations locations.csv
//	catchment render --targets targets.csv --out map.png --width 1024
//
// Shared flags can also be set through the environment with the CATCHMENT
// prefix, e.g. CATCHMENT_MAX_ITER=5000.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogeo/catchment"
	"github.com/gogeo/catchment/ingest"
	"github.com/gogeo/catchment/raster"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CATCHMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "catchment",
		Short:         "Solve facility catchment circle radii from target exclusive areas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if v.GetBool("verbose") {
				catchment.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}
	root.PersistentFlags().Bool("verbose", false, "enable debug logging to stderr")
	root.PersistentFlags().String("targets", "", "input CSV of target points (id,lat,long,target_area)")
	root.PersistentFlags().String("postcodes", "", "input CSV of postcode targets (id,postcode,target_area)")
	root.PersistentFlags().String("locations", "", "postcode location cache CSV (postcode,lat,long)")
	root.PersistentFlags().Float64("step", 0, "initial solver step in km (0 = automatic)")
	root.PersistentFlags().Float64("tol", catchment.DefaultTol, "solver tolerance on exclusive area in km²")
	root.PersistentFlags().Int("max-iter", catchment.DefaultMaxIter, "solver iteration budget per target")
	// Only the persistent flags go through viper: binding two subcommands'
	// identically named flags to one viper instance would make the last
	// binding win for both, so per-subcommand flags are read from their
	// own flag sets instead.
	cobra.CheckErr(v.BindPFlags(root.PersistentFlags()))

	root.AddCommand(newSolveCmd(v), newRenderCmd(v))
	return root
}

func newSolveCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve radii and write a placements CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, points, circles, err := solveTargets(v)
			if err != nil {
				return err
			}

			outPath, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}
			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer out.Close()

			return ingest.WritePlacements(out, records, points, circles)
		},
	}
	cmd.Flags().String("out", "placements.csv", "output CSV path")
	return cmd
}

func newRenderCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Solve radii and render the circles as a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, circles, err := solveTargets(v)
			if err != nil {
				return err
			}

			outPath, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}
			width, err := cmd.Flags().GetInt("width")
			if err != nil {
				return err
			}
			height, err := cmd.Flags().GetInt("height")
			if err != nil {
				return err
			}

			img := raster.Render(circles, raster.Options{
				Width:  width,
				Height: height,
			})
			return raster.SavePNG(outPath, img)
		},
	}
	cmd.Flags().String("out", "catchment.png", "output PNG path")
	cmd.Flags().Int("width", 1024, "output image width in pixels")
	cmd.Flags().Int("height", 1024, "output image height in pixels")
	return cmd
}

// solveTargets runs the full pipeline shared by both subcommands: load the
// CSV (coordinate targets, or postcode targets resolved through the
// location cache), project to planar kilometers, run the sequential
// placement driver.
func solveTargets(v *viper.Viper) ([]ingest.TargetRecord, []catchment.TargetPoint, []catchment.Circle, error) {
	records, err := loadRecords(v)
	if err != nil {
		return nil, nil, nil, err
	}

	points := ingest.Project(records)

	circles, err := catchment.ScaleAll(points, catchment.SolveOptions{
		Step:    v.GetFloat64("step"),
		Tol:     v.GetFloat64("tol"),
		MaxIter: v.GetInt("max-iter"),
	})
	if err != nil {
		var pe *catchment.PlacementError
		if errors.As(err, &pe) {
			return nil, nil, nil, fmt.Errorf("target %q (row %d) failed to converge: %w",
				records[pe.Index].ID, pe.Index+1, err)
		}
		return nil, nil, nil, err
	}

	return records, points, circles, nil
}

func loadRecords(v *viper.Viper) ([]ingest.TargetRecord, error) {
	targets := v.GetString("targets")
	postcodes := v.GetString("postcodes")

	var records []ingest.TargetRecord
	switch {
	case targets != "" && postcodes != "":
		return nil, errors.New("--targets and --postcodes are mutually exclusive")

	case targets != "":
		f, err := os.Open(targets)
		if err != nil {
			return nil, fmt.Errorf("open targets: %w", err)
		}
		defer f.Close()

		records, err = ingest.LoadTargets(f)
		if err != nil {
			return nil, err
		}

	case postcodes != "":
		locPath := v.GetString("locations")
		if locPath == "" {
			return nil, errors.New("--postcodes requires --locations")
		}
		lf, err := os.Open(locPath)
		if err != nil {
			return nil, fmt.Errorf("open locations: %w", err)
		}
		defer lf.Close()

		cache, err := ingest.LoadLocationCache(lf)
		if err != nil {
			return nil, err
		}

		pf, err := os.Open(postcodes)
		if err != nil {
			return nil, fmt.Errorf("open postcodes: %w", err)
		}
		defer pf.Close()

		records, err = ingest.LoadPostcodeTargets(pf, cache)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.New("--targets or --postcodes is required")
	}

	if len(records) == 0 {
		return nil, errors.New("no usable target rows")
	}
	return records, nil
}
