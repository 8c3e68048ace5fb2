// Package batchio runs row importers over CSV sources.
package batchio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnsys"
	"github.com/oeai/oeaimport/internal/ent/batch"
	"github.com/oeai/oeaimport/internal/ent/row"
	"github.com/oeai/oeaimport/internal/io/csvio"
	"github.com/oeai/oeaimport/pkg/config"
	"golang.org/x/sync/errgroup"
)

// batchio is an implementation of batch.Runner.
type batchio struct {
	cfg    config.Config
	log    *slog.Logger
	closer io.Closer
	stdout io.Writer
	stderr io.Writer
}

// Option changes settings of the runner.
type Option func(*batchio)

// OptOutput sets writers for progress and error messages. By default they
// are os.Stdout and os.Stderr.
func OptOutput(stdout, stderr io.Writer) Option {
	return func(b *batchio) {
		b.stdout = stdout
		b.stderr = stderr
	}
}

// New creates a runner. Audit messages go to log, logCloser is closed when
// a run ends, whatever the outcome.
func New(
	cfg config.Config,
	log *slog.Logger,
	logCloser io.Closer,
	opts ...Option,
) batch.Runner {
	res := batchio{
		cfg:    cfg,
		log:    log,
		closer: logCloser,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	if res.cfg.ProgressEvery <= 0 {
		res.cfg.ProgressEvery = 100
	}
	for _, opt := range opts {
		opt(&res)
	}
	return &res
}

// Run imports rows of src one by one, in the order of the source.
func (b *batchio) Run(
	ctx context.Context,
	src string,
	imp row.Importer,
) (batch.Summary, error) {
	var res batch.Summary
	defer b.close()

	b.log.Info("Starting import", "source", src, "kind", imp.Kind())

	exists, _ := gnsys.FileExists(src)
	if !exists {
		err := fmt.Errorf("%w: %s", batch.ErrSourceMissing, src)
		b.log.Error(err.Error())
		return res, err
	}

	total, err := csvio.Count(src, b.cfg.Delimiter, b.cfg.Encoding)
	if err != nil {
		return res, b.fatal(err)
	}
	res.Total = total

	chIn := make(chan row.Row)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(chIn)
		return b.loadRows(ctx, src, chIn)
	})
	g.Go(func() error {
		return b.importRows(ctx, imp, chIn, &res)
	})

	if err = g.Wait(); err != nil {
		return res, b.fatal(err)
	}

	fmt.Fprintln(b.stdout, res.String())
	b.log.Info(res.String())
	return res, nil
}

// loadRows reads the source and sends its rows to chIn.
func (b *batchio) loadRows(
	ctx context.Context,
	src string,
	chIn chan<- row.Row,
) error {
	r, err := csvio.Open(src, b.cfg.Delimiter, b.cfg.Encoding)
	if err != nil {
		return err
	}
	defer r.Close()

	// skip header
	if _, err = r.Header(); err != nil {
		return err
	}
	for {
		rw, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chIn <- rw:
		}
	}
}

// importRows hands rows to the importer. A failed row is logged and counted,
// then the next row is processed.
func (b *batchio) importRows(
	ctx context.Context,
	imp row.Importer,
	chIn <-chan row.Row,
	res *batch.Summary,
) error {
	for rw := range chIn {
		res.Processed++
		b.progress(res.Processed, res.Total)

		_, err := imp.ImportRow(ctx, rw)
		if err != nil {
			res.Errors++
			msg := fmt.Sprintf("Error processing row %d: %s", res.Processed, err)
			fmt.Fprintln(b.stderr, msg)
			b.log.Error(msg)
			b.log.Error("Row data: " + rw.String())
			b.log.Error(fmt.Sprintf("Detail: %s", chain(err)))
			continue
		}
		res.Success++
	}
	return ctx.Err()
}

func (b *batchio) progress(n, total int) {
	if n%b.cfg.ProgressEvery != 0 && n != total {
		return
	}
	msg := fmt.Sprintf("Processing row %s/%s...",
		humanize.Comma(int64(n)), humanize.Comma(int64(total)))
	fmt.Fprintln(b.stdout, msg)
	b.log.Info(msg)
}

// fatal logs and wraps an error that ends the run.
func (b *batchio) fatal(err error) error {
	if !errors.Is(err, batch.ErrSourceRead) {
		err = fmt.Errorf("%w: %w", batch.ErrSourceRead, err)
	}
	b.log.Error(err.Error())
	b.log.Error(fmt.Sprintf("Detail: %s", chain(err)))
	return err
}

func (b *batchio) close() {
	if b.closer == nil {
		return
	}
	if err := b.closer.Close(); err != nil {
		slog.Error("Cannot close log file", "error", err)
	}
}

// chain renders every error of a wrapped chain, outermost first.
func chain(err error) string {
	var res string
	for i := 0; err != nil; i++ {
		if i > 0 {
			res += " <- "
		}
		res += fmt.Sprintf("%T: %v", err, err)
		err = errors.Unwrap(err)
	}
	return res
}
