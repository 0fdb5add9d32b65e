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
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/foampost/InputParameters"
	"github.com/notargets/foampost/report"
)

// ReportCmd represents the report command
var ReportCmd = &cobra.Command{
	Use:   "report [trials...]",
	Short: "Build the comparison report of the current case and other trials",
	Long: `
Builds a slide deck (PDF) and workbook (XLSX) comparing the current case with
the trials given as arguments, saved into the report directory of the job.

foampost report 002 003 -p report.yaml`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			loc    Location
			trials []string
			rp     *InputParameters.ReportParameters
			out    report.Output
		)
		paramsFile, _ := cmd.Flags().GetString("parameters")
		noImage, _ := cmd.Flags().GetBool("no-image")
		if rp, err = readParameters(paramsFile); err != nil {
			return
		}
		if viper.GetBool("verbose") {
			rp.Print(cmd.OutOrStdout())
		}
		if loc, err = location(); err != nil {
			return
		}
		if trials, err = loc.Trials(args); err != nil {
			return
		}
		b := report.NewBuilder(loc.Root, trials, rp, clockwork.NewRealClock(), logger)
		b.NoImage = noImage
		if out, err = b.Build(); err != nil {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d slides to: %s\n", out.Slides, out.Deck)
		if len(out.Workbook) != 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved workbook to: %s\n", out.Workbook)
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(ReportCmd)
	ReportCmd.Flags().StringP("parameters", "p", "", "YAML file of report parameters")
	ReportCmd.Flags().BoolP("no-image", "i", false, "do not lay the geometry image under the development plots")
}

func readParameters(path string) (rp *InputParameters.ReportParameters, err error) {
	var data []byte
	rp = InputParameters.NewReportParameters()
	if len(path) == 0 {
		return
	}
	if data, err = os.ReadFile(path); err != nil {
		return nil, err
	}
	if err = rp.Parse(data); err != nil {
		return nil, fmt.Errorf("report parameters %s: %w", path, err)
	}
	return
}
