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
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/gnsys"
	"github.com/lmittmann/tint"
	"github.com/oeai/oeaimport/internal/io/csvio"
	oeaimport "github.com/oeai/oeaimport/pkg"
	"github.com/oeai/oeaimport/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//go:embed oeaimport.yaml
var configText string

var (
	opts []config.Option
)

type cfgData struct {
	Delimiter     string
	Encoding      string
	ProgressEvery int
	Backend       string
	CacheDir      string
	WithCache     bool
	DBHost        string
	DBPort        int
	DBUser        string
	DBPass        string
	DBName        string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "oeaimport",
	Short: "Imports persons and institutions from CSV exports",
	Long: `Imports persons and institutions from CSV exports into the
knowledge base. Every row creates a new entity. Places, professions and
parent institutions are looked up by label and created when missing, and
institutions are linked to the places they are located in.

Rows that cannot be imported are reported and written to the log file, the
rest of the file is imported anyway.`,
	Run: func(cmd *cobra.Command, args []string) {
		version, err := cmd.Flags().GetBool("version")
		if err != nil {
			slog.Error("Cannot get flag", "error", err)
			os.Exit(1)
		}
		if version {
			fmt.Printf("\nversion: %s\nbuild: %s\n\n", oeaimport.Version, oeaimport.Build)
			os.Exit(0)
		}

		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
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
	cobra.OnInitialize(initLogger, initConfig)

	rootCmd.Flags().BoolP("version", "V", false, "Returns version and build date")
}

func initLogger() {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.DateTime,
	})
	slog.SetDefault(slog.New(handler))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	var err error
	var homeDir, cfgDir string
	configFile := "oeaimport"

	// Find home directory.
	homeDir, err = os.UserHomeDir()
	if err != nil {
		slog.Error("Cannot find home dir", "error", err)
		os.Exit(1)
	}
	cfgDir = filepath.Join(homeDir, ".config")

	// Search config in home directory with name "oeaimport" (without extension).
	viper.AddConfigPath(cfgDir)
	viper.SetConfigName(configFile)

	configPath := filepath.Join(cfgDir, fmt.Sprintf("%s.yaml", configFile))
	touchConfigFile(configPath)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		slog.Error("Config file oeaimport.yaml not found", "error", err)
		os.Exit(1)
	}
	opts = getOpts()
}

// getOpts imports data from the configuration file. Some of the settings can
// be overriden by command line flags.
func getOpts() []config.Option {
	var res []config.Option
	cfg := cfgData{}
	err := viper.Unmarshal(&cfg)
	if err != nil {
		slog.Error("Cannot unmarshal config file", "error", err)
	}

	if cfg.Delimiter != "" {
		d, err := csvio.Delimiter(cfg.Delimiter)
		if err != nil {
			slog.Error("Bad delimiter in config file", "error", err)
			os.Exit(1)
		}
		res = append(res, config.OptDelimiter(d))
	}
	if cfg.Encoding != "" {
		res = append(res, config.OptEncoding(cfg.Encoding))
	}
	if cfg.ProgressEvery > 0 {
		res = append(res, config.OptProgressEvery(cfg.ProgressEvery))
	}
	if cfg.Backend != "" {
		res = append(res, config.OptBackend(cfg.Backend))
	}
	if cfg.CacheDir != "" {
		res = append(res, config.OptCacheDir(cfg.CacheDir))
	}
	if cfg.WithCache {
		res = append(res, config.OptWithCache(true))
	}
	if cfg.DBHost != "" {
		res = append(res, config.OptDBHost(cfg.DBHost))
	}
	if cfg.DBPort != 0 {
		res = append(res, config.OptDBPort(cfg.DBPort))
	}
	if cfg.DBUser != "" {
		res = append(res, config.OptDBUser(cfg.DBUser))
	}
	if cfg.DBPass != "" {
		res = append(res, config.OptDBPass(cfg.DBPass))
	}
	if cfg.DBName != "" {
		res = append(res, config.OptDBName(cfg.DBName))
	}
	return res
}

// touchConfigFile checks if config file exists, and if not, it gets created.
func touchConfigFile(configPath string) {
	fileExists, _ := gnsys.FileExists(configPath)
	if fileExists {
		return
	}

	slog.Info("Creating config file", "path", configPath)
	createConfig(configPath)
}

// createConfig creates config file.
func createConfig(path string) {
	err := gnsys.MakeDir(filepath.Dir(path))
	if err != nil {
		slog.Error("Cannot create config dir", "error", err)
		os.Exit(1)
	}

	err = os.WriteFile(path, []byte(configText), 0644)
	if err != nil {
		slog.Error("Cannot write to config file", "error", err)
		os.Exit(1)
	}
}
