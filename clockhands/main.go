package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clockboard/pkg/aggregate"
	"clockboard/pkg/board"
	"clockboard/pkg/logging"
	"clockboard/pkg/region"
)

var cfg struct {
	chunks   int
	workers  int
	strategy string
	verbose  bool
	summary  bool
	y        int64
}

var logger = zap.NewNop()

var cmd = &cobra.Command{
	Use:   "clockhands",
	Short: "Sum the clock hands of every cell on the board",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		logger, err = logging.New(cfg.verbose)
		return
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTotal()
	},
}

var rowCmd = &cobra.Command{
	Use:   "row",
	Short: "Print the clock hand sum of a single row",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRow()
	},
}

func init() {
	cmd.PersistentFlags().StringVarP(&cfg.strategy, "strategy", "s", "tree", "row strategy: tree or sweep")
	cmd.PersistentFlags().BoolVarP(&cfg.verbose, "verbose", "v", false, "debug logging")
	cmd.Flags().IntVarP(&cfg.chunks, "chunks", "c", aggregate.DefaultChunks, "number of progress chunks")
	cmd.Flags().IntVarP(&cfg.workers, "workers", "w", runtime.GOMAXPROCS(0), "bands computed in parallel")
	cmd.Flags().BoolVar(&cfg.summary, "summary", false, "print a per chunk table")

	rowCmd.Flags().Int64Var(&cfg.y, "y", 0, "row to evaluate")
	rowCmd.MarkFlagRequired("y")
	cmd.AddCommand(rowCmd)
}

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}

func setup() ([]board.Rect, []board.Band) {
	start := time.Now()
	rects := board.Default()
	bands := board.Partition(rects, board.Side)
	logger.Info("finished setting up bands",
		zap.String("rectangles", humanize.Comma(int64(len(rects)))),
		zap.String("bands", humanize.Comma(int64(len(bands)))),
		zap.Duration("elapsed", time.Since(start)))
	return rects, bands
}

func runTotal() error {
	strategy, err := region.ParseStrategy(cfg.strategy)
	if err != nil {
		return err
	}
	rects, bands := setup()

	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stdout)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Chunk", "Bands", "Subtotal", "Seconds"})

	a := aggregate.New(board.Side)
	a.Chunks = cfg.chunks
	a.Workers = cfg.workers
	a.Strategy = strategy
	a.Logger = logger
	a.OnChunk = func(p aggregate.Progress) {
		tbl.AppendRow(table.Row{
			fmt.Sprintf("%d/%d", p.Chunk+1, p.Chunks),
			p.Bands,
			humanize.Comma(p.Subtotal),
			fmt.Sprintf("%.1f", p.Elapsed.Seconds()),
		})
	}
	total := a.Total(rects, bands)

	if cfg.summary {
		tbl.AppendFooter(table.Row{"Total", len(bands), humanize.Comma(total), ""})
		tbl.Render()
	}
	fmt.Printf("the grand total is %d\n", total)
	return nil
}

func runRow() error {
	strategy, err := region.ParseStrategy(cfg.strategy)
	if err != nil {
		return err
	}
	if cfg.y < 0 || cfg.y >= board.Side {
		return fmt.Errorf("row %d outside [0, %d)", cfg.y, board.Side)
	}
	rects, bands := setup()
	b := bands[board.Locate(bands, cfg.y)]
	sum := strategy(rects, board.Side, cfg.y)
	fmt.Printf("row %d in band [%d, %d): clock hand sum %d\n", cfg.y, b.MinY, b.MaxY, sum)
	return nil
}
