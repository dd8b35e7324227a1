package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clockboard/pkg/board"
	"clockboard/pkg/heatmap"
	"clockboard/pkg/logging"
	"clockboard/pkg/pcd"
)

const defaultStep = 500_000

var cfg struct {
	out     string
	step    int64
	verbose bool
}

var cmd = &cobra.Command{
	Use:   "clockmap",
	Short: "Write a downsampled clock hand map of the board as a point cloud",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		logger, err := logging.New(cfg.verbose)
		if err != nil {
			return err
		}
		defer logger.Sync()
		return writeMap(logger)
	},
}

func init() {
	cmd.PersistentFlags().StringVarP(&cfg.out, "out", "o", "", "output .pcd or .bin file")
	cmd.PersistentFlags().Int64VarP(&cfg.step, "step", "s", defaultStep, "grid spacing in cells")
	cmd.PersistentFlags().BoolVarP(&cfg.verbose, "verbose", "v", false, "debug logging")

	cmd.MarkPersistentFlagRequired("out")
}

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}

func writeMap(logger *zap.Logger) error {
	if cfg.step <= 0 {
		return fmt.Errorf("step must be positive, got %d", cfg.step)
	}
	start := time.Now()
	points := heatmap.Sample(board.Default(), board.Side, cfg.step)
	logger.Debug("sampled board",
		zap.Int64("step", cfg.step),
		zap.Int("points", len(points)),
		zap.Duration("elapsed", time.Since(start)))

	if err := pcd.WriteFile(cfg.out, points); err != nil {
		return fmt.Errorf("write %s: %w", cfg.out, err)
	}
	fmt.Printf("clockmap %s points => %s\n", humanize.Comma(int64(len(points))), cfg.out)
	return nil
}
