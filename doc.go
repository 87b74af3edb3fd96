// Package stockdb fits the safety score model of a stock database and
// provides the ticker list helpers around it.
//
// # Packages
//
//   - table: in-memory observation tables loaded from CSV or Excel
//   - stats: ordinary least squares, residual diagnostics, descriptive helpers
//   - safety: the safety score regression, bootstrap and prediction intervals
//   - batch: fixed-size chunking of ticker lists
//   - asset: STOCK / MUTUAL_FUND / ETF classification against reference lists
//
// # Quick Start
//
// Fit the model on a table of standardized factors:
//
//	obs, _ := table.LoadCSV("observations.csv", nil)
//	model, err := safety.Fit(obs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(model.Summary())
//
// Bootstrap the coefficients and annotate the table with intervals:
//
//	boot, _ := safety.Bootstrap(obs, safety.BootstrapOptions{Seed: 1})
//	preds, _ := safety.PredictIntervals(obs, model, boot, 0.95)
//	_ = safety.AnnotateTable(obs, preds, "safety_pred")
//
// Label and batch tickers:
//
//	lists := asset.Lists{Stocks: asset.NewSet("AAPL"), ETFs: asset.NewSet("VTI")}
//	labels := lists.ClassifyAll([]string{"AAPL", "VTI", "XYZ"})
//	chunks, _ := batch.Chunks(tickers, batch.DefaultSize)
//	for chunk := range chunks {
//	    fetch(chunk)
//	}
//
// The stockdb command in cmd/stockdb wraps these operations.
package stockdb
