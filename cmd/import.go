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
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/oeai/oeaimport/internal/ent/row"
	"github.com/oeai/oeaimport/internal/ent/store"
	"github.com/oeai/oeaimport/internal/io/batchio"
	"github.com/oeai/oeaimport/internal/io/cacheio"
	"github.com/oeai/oeaimport/internal/io/csvio"
	"github.com/oeai/oeaimport/internal/io/kvio"
	"github.com/oeai/oeaimport/internal/io/logio"
	"github.com/oeai/oeaimport/internal/io/memio"
	"github.com/oeai/oeaimport/internal/io/myio"
	"github.com/oeai/oeaimport/internal/io/pgio"
	oeaimport "github.com/oeai/oeaimport/pkg"
	"github.com/oeai/oeaimport/pkg/config"
	"github.com/oeai/oeaimport/pkg/io/modelio"
	"github.com/spf13/cobra"
)

// newImporter creates a row importer that writes into the store.
type newImporter func(st store.Store, log *slog.Logger) row.Importer

// importFlags adds flags shared by import commands.
func importFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("delimiter", "d", "", "field delimiter of the CSV file (default \",\")")
	cmd.Flags().StringP("encoding", "e", "", "text encoding of the CSV file (default \"utf-8\")")
	cmd.Flags().StringP("log-file", "l", "", "path of the import log file")
	cmd.Flags().BoolP("dry-run", "n", false, "import into memory, nothing is saved")
	cmd.Flags().BoolP("cache", "c", false, "keep a lookup cache of places, professions and institutions")
}

// flagOpts reads import flags into config options. They override settings
// from the config file.
func flagOpts(cmd *cobra.Command) ([]config.Option, error) {
	var res []config.Option
	delim, _ := cmd.Flags().GetString("delimiter")
	if delim != "" {
		d, err := csvio.Delimiter(delim)
		if err != nil {
			return nil, err
		}
		res = append(res, config.OptDelimiter(d))
	}

	enc, _ := cmd.Flags().GetString("encoding")
	if enc != "" {
		if _, err := csvio.Encoding(enc); err != nil {
			return nil, err
		}
		res = append(res, config.OptEncoding(enc))
	}

	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile != "" {
		res = append(res, config.OptLogFile(logFile))
	}

	dry, _ := cmd.Flags().GetBool("dry-run")
	if dry {
		res = append(res, config.OptBackend(config.BackendMemory))
	}

	cache, _ := cmd.Flags().GetBool("cache")
	if cache {
		res = append(res, config.OptWithCache(true))
	}
	return res, nil
}

// runImport imports the src file with an importer created by newImp. It
// exits with non-zero status on fatal errors only, failed rows are reported
// in the summary.
func runImport(cmd *cobra.Command, src string, newImp newImporter) {
	fOpts, err := flagOpts(cmd)
	if err != nil {
		slog.Error("Bad flag value", "error", err)
		os.Exit(1)
	}
	cfg := config.New(append(opts, fOpts...)...)

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = logio.DefaultPath(src, time.Now())
	}
	sink, err := logio.Open(logPath)
	if err != nil {
		slog.Error("Cannot open log file", "path", logPath, "error", err)
		os.Exit(1)
	}
	fmt.Printf("Logging to %s\n", sink.Path())

	ctx := context.Background()
	st, err := newStore(ctx, cfg)
	if err != nil {
		sink.Logger().Error("Cannot connect to store", "error", err)
		_ = sink.Close()
		slog.Error("Cannot connect to store", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}

	imp := newImp(st, sink.Logger())
	r := batchio.New(cfg, sink.Logger(), sink)
	oi := oeaimport.New(cfg)
	_, err = oi.Import(ctx, r, src, imp)
	if cErr := st.Close(); cErr != nil {
		slog.Warn("Cannot close store", "error", cErr)
	}
	if err != nil {
		slog.Error("Import failed", "source", src, "error", err)
		os.Exit(1)
	}
}

// newStore connects to the configured backend. SQL backends get their
// schema migrated first.
func newStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	var st store.Store
	var err error

	switch cfg.Backend {
	case config.BackendMemory:
		st = memio.New()
	case config.BackendPostgres, config.BackendMySQL:
		if err = migrate(cfg); err != nil {
			return nil, err
		}
		if cfg.Backend == config.BackendMySQL {
			st, err = myio.New(ctx, cfg)
		} else {
			st, err = pgio.New(ctx, cfg)
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	if !cfg.WithCache {
		return st, nil
	}
	kv, err := kvio.New(cfg.CacheDir)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("cannot create lookup cache: %w", err)
	}
	res, err := cacheio.New(st, kv)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return res, nil
}

// migrate creates database tables of the configured SQL backend.
func migrate(cfg config.Config) error {
	db, err := modelio.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	oi := oeaimport.New(cfg)
	return oi.Migrate(modelio.New(db))
}
