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
	"log/slog"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logger   = slog.Default()
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "foampost",
	Short: "Post processing of OpenFOAM external aerodynamics trials",
	Long: `
Reads the boundary conditions and force coefficients of OpenFOAM trials and
produces development plots and a comparison report.

Run from inside a trial directory, the trial is the current case and its
parent directory holds the other trials:

foampost case 002 003
foampost binplot -t 002 -s
foampost report 002 003`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.foampost.yaml)")
	pf.BoolP("verbose", "v", false, "debug logging")
	pf.StringP("root", "r", "", "directory holding the trials (default is the parent of the working directory)")
	pf.StringP("case", "c", "", "current trial (default is the working directory name)")
	pf.String("profile", "", "write a CPU profile into this directory")
	for _, name := range []string{"verbose", "root", "case", "profile"} {
		if err := viper.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".foampost")
	}
	viper.SetEnvPrefix("foampost")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setup(cmd *cobra.Command, args []string) (err error) {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if dir := viper.GetString("profile"); len(dir) != 0 {
		profiler = profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.NoShutdownHook)
	}
	return
}

func teardown(cmd *cobra.Command, args []string) error {
	if profiler != nil {
		profiler.Stop()
		profiler = nil
	}
	return nil
}

// Location is where the current trial lives, all other trials are siblings
// of it under Root.
type Location struct {
	Root, Case string
}

func location() (loc Location, err error) {
	var cwd string
	loc = Location{Root: viper.GetString("root"), Case: viper.GetString("case")}
	if len(loc.Root) != 0 && len(loc.Case) != 0 {
		return
	}
	if cwd, err = os.Getwd(); err != nil {
		return
	}
	if len(loc.Root) == 0 {
		loc.Root = filepath.Dir(cwd)
	}
	if len(loc.Case) == 0 {
		loc.Case = filepath.Base(cwd)
	}
	return
}

// Trials is the current case followed by the named trials, each of which
// must be a directory under Root.
func (loc Location) Trials(names []string) (trials []string, err error) {
	trials = append([]string{loc.Case}, names...)
	for _, name := range trials {
		var fi os.FileInfo
		path := filepath.Join(loc.Root, name)
		if fi, err = os.Stat(path); err != nil || !fi.IsDir() {
			return nil, fmt.Errorf("trial %s does not exist in %s", name, loc.Root)
		}
	}
	return
}
