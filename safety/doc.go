// Package safety fits the safety score model: an ordinary least squares
// regression of safety_score on four standardized risk factors.
//
// # Fitting
//
//	obs, _ := table.LoadCSV("observations.csv", nil)
//	model, err := safety.Fit(obs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(model.Summary())
//
// The design matrix columns are, in order: const, sharpe_1y_z, vol_z,
// downside_vol_z, idiosyncratic_vol_z. Rows missing any of these values or
// safety_score are left out of the fit; Model.Dropped counts them.
//
// Fit returns a *MissingColumnError when a required column is not in the
// table and an *InsufficientDataError when at most five complete rows remain.
// Both match their sentinel with errors.Is:
//
//	if errors.Is(err, safety.ErrInsufficientData) {
//	    // collect more history
//	}
//
// # Bootstrap
//
// Resample complete rows to get percentile intervals for the coefficients
// and for per-row predictions:
//
//	boot, _ := safety.Bootstrap(obs, safety.BootstrapOptions{Seed: 1})
//	ci, _ := boot.ConfInt(0.95)
//	preds, _ := safety.PredictIntervals(obs, model, boot, 0.95)
//	_ = safety.AnnotateTable(obs, preds, "safety_pred")
package safety
