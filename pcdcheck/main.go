package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/seqsense/pcgol/pc"
	"github.com/spf13/cobra"

	"clockboard/pkg/pcd"
)

var (
	ErrPointCountMismatch = errors.New("point count mismatch")
)

var cfg struct {
	in string
}

var cmd = &cobra.Command{
	Use:   "pcdcheck",
	Short: "Validate a clock hand map and print its histogram",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		return check(cfg.in, os.Stdout)
	},
}

func init() {
	cmd.PersistentFlags().StringVarP(&cfg.in, "in", "i", "", "input .pcd file")

	cmd.MarkPersistentFlagRequired("in")
}

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}

// check parses the file with pcgol and with pkg/pcd, compares the point
// counts and writes a histogram of clock hands.
func check(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	ref, err := pc.Unmarshal(f)
	if err != nil {
		return fmt.Errorf("pcgol: %w", err)
	}

	cloud, err := pcd.ReadFile(path)
	if err != nil {
		return err
	}
	if ref.Points != cloud.PointCount() {
		return fmt.Errorf("%w: pcgol %d, pcd %d", ErrPointCountMismatch, ref.Points, cloud.PointCount())
	}

	var hist [13]int
	for _, p := range cloud.Points {
		h := int(p.Z)
		if h < 1 || h > 12 {
			return fmt.Errorf("point %+v: clock hand %d out of range: %w", p, h, pcd.ErrInvalidDataFormat)
		}
		hist[h]++
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Hand", "Points", "Share"})
	for h := 1; h <= 12; h++ {
		tbl.AppendRow(table.Row{h, hist[h], fmt.Sprintf("%.2f%%", 100*float64(hist[h])/float64(max(1, len(cloud.Points))))})
	}
	tbl.AppendFooter(table.Row{"Total", len(cloud.Points), fmt.Sprintf("fields %v", ref.Fields)})
	tbl.Render()
	return nil
}
