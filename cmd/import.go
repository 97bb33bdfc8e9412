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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/streamlens/streamlens/internal/importer"
)

var importPattern string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Loads the streaming history export into the database",
	Long: `Reads every matching StreamingHistory JSON file from the data directory,
builds a brand-new database off to the side, and atomically swaps it in as the
published database. A failed import leaves the existing database untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		count, err := runImport()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Loaded %d rows into %s\n", count, viper.GetString("database"))
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importPattern, "pattern", importer.DefaultPattern,
		"Glob matching the export files inside the data directory")
	viper.BindPFlag("pattern", importCmd.Flags().Lookup("pattern"))
}

func runImport() (int, error) {
	im := importer.New(importer.Config{
		DataDir: viper.GetString("data-dir"),
		Pattern: viper.GetString("pattern"),
		DBPath:  viper.GetString("database"),
	})
	return im.Import()
}
