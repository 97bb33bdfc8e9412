/*
Copyright 2025 The streamlens Authors

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
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/streamlens/streamlens/internal/store"
)

var cfgFile string
var databasePath string
var dataDir string
var outputDir string
var genresPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "streamlens",
	Short: "Analyzes a Spotify streaming history export",
	Long: `Imports StreamingHistory JSON files into a local SQLite database and
produces listening analytics: top artists and tracks, temporal habits,
discovery trends, and loyalty concentration.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.streamlens.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./db/streamlens.db", "Path to the SQLite database")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	rootCmd.PersistentFlags().StringVar(
		&dataDir, "data-dir", "./data", "Directory holding the streaming history export files")
	viper.BindPFlag("data-dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	rootCmd.PersistentFlags().StringVarP(
		&outputDir, "output-dir", "o", "./outputs", "Directory for reports, CSVs, and charts")
	viper.BindPFlag("output-dir", rootCmd.PersistentFlags().Lookup("output-dir"))

	rootCmd.PersistentFlags().StringVar(
		&genresPath, "genres", "", "Optional artist-to-genres CSV for genre rollups")
	viper.BindPFlag("genres", rootCmd.PersistentFlags().Lookup("genres"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".streamlens" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".streamlens")
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

// openStore opens the published database read-only for the analytics commands.
func openStore() (*sql.DB, error) {
	return store.OpenRead(viper.GetString("database"))
}
