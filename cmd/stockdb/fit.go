package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sartorproj/stockdb/safety"
	"github.com/sartorproj/stockdb/table"
)

type fitOptions struct {
	data        string
	sheet       string
	standardize bool
	bootstrap   int
	seed        uint64
	level       float64
	out         string
}

func newFitCmd(a *app) *cobra.Command {
	opts := &fitOptions{}
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit the safety score model on an observation table",
		Long: `Fit an OLS regression of safety_score on sharpe_1y_z, vol_z,
downside_vol_z and idiosyncratic_vol_z. The table is read from CSV, or from
Excel when the file ends in .xlsx. Rows with a missing value are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.seed = a.cfg.Bootstrap.Seed
			}
			if !cmd.Flags().Changed("level") {
				opts.level = a.cfg.Bootstrap.Level
			}
			return a.runFit(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "Observation table (.csv or .xlsx)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Worksheet name for .xlsx input (default: first sheet)")
	cmd.Flags().BoolVar(&opts.standardize, "standardize", false, "Derive absent *_z factor columns from their raw columns")
	cmd.Flags().IntVarP(&opts.bootstrap, "bootstrap", "b", 0, "Bootstrap resamples; -1 uses the configured count")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "Bootstrap seed")
	cmd.Flags().Float64Var(&opts.level, "level", 0.95, "Bootstrap confidence level")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the table with prediction intervals to this CSV file (needs --bootstrap)")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func loadTable(path, sheet string) (*table.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return table.LoadXLSX(path, sheet)
	}
	return table.LoadCSV(path, nil)
}

func (a *app) runFit(w io.Writer, opts *fitOptions) error {
	obs, err := loadTable(opts.data, opts.sheet)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.data, err)
	}
	a.log.WithFields(logrus.Fields{"file": opts.data, "rows": obs.Len()}).Info("Observation table loaded")

	if opts.standardize {
		added, err := safety.StandardizeFactors(obs)
		if err != nil {
			return err
		}
		if len(added) > 0 {
			a.log.WithField("columns", added).Info("Standardized factor columns")
		}
	}

	model, err := safety.Fit(obs)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"rows":      model.NObs,
		"dropped":   model.Dropped,
		"r_squared": model.RSquared,
	}).Info("Safety model fitted")
	fmt.Fprintln(w, model.Summary())

	samples := opts.bootstrap
	if samples < 0 {
		samples = a.cfg.Bootstrap.Samples
	}
	if samples == 0 {
		if opts.out != "" {
			a.log.Warn("--out needs --bootstrap; no prediction file written")
		}
		return nil
	}

	boot, err := safety.Bootstrap(obs, safety.BootstrapOptions{Samples: samples, Seed: opts.seed})
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"draws":   len(boot.Draws),
		"skipped": boot.Skipped,
		"seed":    opts.seed,
	}).Info("Bootstrap complete")

	ci, err := boot.ConfInt(opts.level)
	if err != nil {
		return err
	}
	mean, se := boot.Mean(), boot.StdErr()
	fmt.Fprintf(w, "Bootstrap (%d draws, %.0f%% percentile intervals)\n", len(boot.Draws), opts.level*100)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\tmean\tstd err\tlower\tupper\t")
	for j, name := range boot.Names {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t\n", name, mean[j], se[j], ci[j].Lower, ci[j].Upper)
	}
	tw.Flush()

	if opts.out == "" {
		return nil
	}
	preds, err := safety.PredictIntervals(obs, model, boot, opts.level)
	if err != nil {
		return err
	}
	if err := safety.AnnotateTable(obs, preds, "safety_pred"); err != nil {
		return err
	}
	if err := table.SaveCSVFile(obs, opts.out); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}
	a.log.WithField("file", opts.out).Info("Predictions written")
	return nil
}
