// Copyright © 2026 The oeaimport Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"log/slog"

	"github.com/oeai/oeaimport/internal/ent/row"
	"github.com/oeai/oeaimport/internal/ent/store"
	"github.com/oeai/oeaimport/internal/io/personio"
	"github.com/spf13/cobra"
)

// personsCmd represents the persons command
var personsCmd = &cobra.Command{
	Use:   "persons <file.csv>",
	Short: "Imports persons from a CSV export",
	Long: `Imports persons from a CSV export. Every row creates a new person,
professions are looked up by label and created when missing.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runImport(cmd, args[0], func(st store.Store, log *slog.Logger) row.Importer {
			return personio.New(st, log)
		})
	},
}

func init() {
	rootCmd.AddCommand(personsCmd)
	importFlags(personsCmd)
}
