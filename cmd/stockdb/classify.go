package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sartorproj/stockdb/asset"
)

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify TICKER...",
		Short: "Label tickers as STOCK, MUTUAL_FUND, ETF or UNKNOWN",
		Long: `Label tickers using the stock, mutual fund and ETF lists of the
configuration. The stock list takes precedence, then mutual funds, then ETFs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runClassify(cmd.OutOrStdout(), args)
		},
	}
}

func (a *app) runClassify(w io.Writer, tickers []string) error {
	lists, err := a.cfg.AssetLists()
	if err != nil {
		return err
	}
	for i := range tickers {
		tickers[i] = strings.ToUpper(strings.TrimSpace(tickers[i]))
	}
	labels := lists.ClassifyAll(tickers)
	for i, t := range tickers {
		fmt.Fprintf(w, "%s\t%s\n", t, labels[i])
	}

	counts := asset.Count(labels)
	a.log.WithFields(logrus.Fields{
		"stocks":       counts[asset.Stock],
		"mutual_funds": counts[asset.MutualFund],
		"etfs":         counts[asset.ETF],
		"unknown":      counts[asset.Unknown],
	}).Info("Tickers classified")
	return nil
}
