package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sartorproj/stockdb/batch"
)

func newChunkCmd(a *app) *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "chunk TICKER...",
		Short: "Print tickers in batches, one batch per line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("size") {
				size = a.cfg.ChunkSize
			}
			return a.runChunk(cmd.OutOrStdout(), args, size)
		},
	}
	cmd.Flags().IntVarP(&size, "size", "n", batch.DefaultSize, "Batch size")
	return cmd
}

func (a *app) runChunk(w io.Writer, tickers []string, size int) error {
	chunks, err := batch.Chunks(tickers, size)
	if err != nil {
		return err
	}
	n := 0
	for chunk := range chunks {
		fmt.Fprintln(w, strings.Join(chunk, " "))
		n++
	}
	a.log.WithField("batches", n).Debug("Tickers chunked")
	return nil
}
