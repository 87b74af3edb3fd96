// Package stats provides linear regression and the statistical helpers used
// around it.
//
// # Ordinary Least Squares
//
// Fit a regression with an intercept:
//
//	x, names := stats.AddConstant(rows, []string{"sharpe_1y_z", "vol_z"})
//	res, err := stats.OLS(y, x, names)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("R2=%.4f F=%.2f (p=%.4g)\n", res.RSquared, res.FValue, res.FPValue)
//	for _, c := range res.Coefficients {
//	    fmt.Printf("%-12s %8.4f se=%.4f p=%.4g\n", c.Name, c.Estimate, c.StdErr, c.P)
//	}
//
// Coefficients are solved with a QR decomposition of the design matrix.
// Standard errors come from the residual variance and the inverse of x'x,
// p-values from Student's t distribution with n-k degrees of freedom.
// A rank deficient design returns ErrSingular.
//
// # Confidence Intervals
//
//	ci, _ := res.ConfInt(0.05) // 95% t intervals
//
// # Residual Diagnostics
//
//	dw := stats.DurbinWatson(res.Residuals())
//	jb := stats.JarqueBera(res.Residuals())
//
// # Descriptive Helpers
//
//	z, err := stats.ZScore(values)                 // standardized factor
//	iv, err := stats.PercentileInterval(draws, .95) // bootstrap interval
package stats
