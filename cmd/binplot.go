/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"fmt"
	"errors"
	"image"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/notargets/foampost/binplot"
	"github.com/notargets/foampost/readfiles"
	"github.com/notargets/foampost/types"
)

// BinPlotCmd represents the binplot command
var BinPlotCmd = &cobra.Command{
	Use:   "binplot",
	Short: "Cd and Cl development along the vehicle from binForceCoeffs",
	Long: `
Reads the bin force coefficients of the current case and the trials given
with -t, writes the development of Cd and Cl of each trial as CSV into the
current case and optionally saves or displays the comparison plots.

foampost binplot -t 002 003 -s`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			loc    Location
			names  []string
			trials []*binplot.Trial
			bp     = &BinPlot{}
		)
		names, _ = cmd.Flags().GetStringSlice("trials")
		bp.Save, _ = cmd.Flags().GetBool("save")
		bp.Show, _ = cmd.Flags().GetBool("show")
		bp.NoImage, _ = cmd.Flags().GetBool("no-image")
		bp.DPI, _ = cmd.Flags().GetFloat64("dpi")
		if loc, err = location(); err != nil {
			return
		}
		if names, err = loc.Trials(append(names, args...)); err != nil {
			return
		}
		if trials, err = binplot.Load(loc.Root, names, logger); err != nil {
			return
		}
		if _, err = bp.Run(loc, trials); err != nil {
			return
		}
		if bp.Show {
			return bp.Display(cmd.OutOrStdout(), cmd.InOrStdin(), trials)
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(BinPlotCmd)
	BinPlotCmd.Flags().StringSliceP("trials", "t", nil, "other trials to compare with the current case")
	BinPlotCmd.Flags().BoolP("save", "s", false, "save the development plots as PNG")
	BinPlotCmd.Flags().Bool("show", false, "display the development plots")
	BinPlotCmd.Flags().BoolP("no-image", "i", false, "do not lay the geometry image under the plots")
	BinPlotCmd.Flags().Float64("dpi", 300, "resolution of the saved plots")
}

type BinPlot struct {
	Save, Show, NoImage bool
	DPI                 float64
}

// Run writes the development CSVs and, when saving, the plots into the
// current case directory and returns the files written.
func (bp *BinPlot) Run(loc Location, trials []*binplot.Trial) (paths []string, err error) {
	var (
		dir      = readfiles.CasePath(loc.Root, loc.Case)
		overlays map[string]image.Image
	)
	for _, tr := range trials {
		var p []string
		if p, err = binplot.WriteCSV(dir, tr); err != nil {
			return
		}
		paths = append(paths, p...)
	}
	if !bp.Save {
		return
	}
	if !bp.NoImage {
		overlays = binplot.LoadOverlays(loc.Root, trials, logger)
	}
	for _, coeff := range []types.Coefficient{types.Cd, types.Cl} {
		path := filepath.Join(dir, binplot.FileName(coeff, binplot.Names(trials)))
		if err = binplot.Render(trials, coeff, overlays, path, bp.DPI); err != nil {
			return
		}
		logger.Info("saved development plot", "path", path)
		paths = append(paths, path)
	}
	return
}

// Display opens a chart window per coefficient and waits for Enter.
func (bp *BinPlot) Display(w io.Writer, r io.Reader, trials []*binplot.Trial) (err error) {
	for _, coeff := range []types.Coefficient{types.Cd, types.Cl} {
		if _, err = binplot.Show(trials, coeff); err != nil {
			return
		}
	}
	return waitForEnter(w, r)
}

func waitForEnter(w io.Writer, r io.Reader) (err error) {
	fmt.Fprintln(w, "Press Enter to exit")
	if _, err = bufio.NewReader(r).ReadString('\n'); errors.Is(err, io.EOF) {
		err = nil
	}
	return
}
