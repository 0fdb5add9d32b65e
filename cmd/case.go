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
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/notargets/foampost/readfiles"
	"github.com/notargets/foampost/types"
)

// CaseCmd represents the case command
var CaseCmd = &cobra.Command{
	Use:   "case [trials...]",
	Short: "Print the boundary conditions of the current case and other trials",
	Long: `
Reads caseSetup, system/controlDict, system/caseProperties and
constant/turbulenceProperties of each trial and prints a summary table.

foampost case 002 003`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			loc    Location
			trials []string
			cases  []types.CaseMetadata
		)
		if loc, err = location(); err != nil {
			return
		}
		if trials, err = loc.Trials(args); err != nil {
			return
		}
		if cases, err = parseCases(loc.Root, trials); err != nil {
			return
		}
		return PrintCases(cmd.OutOrStdout(), cases)
	},
}

func init() {
	rootCmd.AddCommand(CaseCmd)
}

func parseCases(root string, trials []string) (cases []types.CaseMetadata, err error) {
	cases = make([]types.CaseMetadata, len(trials))
	for i, name := range trials {
		if cases[i], err = readfiles.ParseCase(root, name); err != nil {
			return nil, fmt.Errorf("trial %s: %w", name, err)
		}
		logger.Debug("parsed case", "trial", name, "application", cases[i].Application)
	}
	for _, cm := range cases[1:] {
		if cm.SimulationType != cases[0].SimulationType {
			logger.Warn("simulation types differ between trials", "trial", cm.Case,
				"simulationType", cm.SimulationType, "baselineType", cases[0].SimulationType)
		}
	}
	return
}

// PrintCases writes one row per case in the order inlet magnitude, end time,
// yaw, moving ground, simulation type, turbulence model.
func PrintCases(w io.Writer, cases []types.CaseMetadata) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "Trial\tInletMag\tEndTime\tYaw\tMovingGround\tSimulationType\tTurbulenceModel\tSymmetry")
	for _, cm := range cases {
		inletMag, endTime, yaw, movingGround, simType, turbModel := cm.Tuple()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%v\t%s\t%s\t%s\n", cm.Case, inletMag, endTime, yaw,
			movingGround, simType, turbModel, cm.Symmetry)
	}
	return tw.Flush()
}
