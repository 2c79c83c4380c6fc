// Package dieface wires the side tables on disk, the registry, the HTTP service
// and the terminal tools together.
package dieface

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/getsentry/sentry-go"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/smell-of-curry/dieface/dieface/analysis"
	"github.com/smell-of-curry/dieface/dieface/author"
	"github.com/smell-of-curry/dieface/dieface/die"
	"github.com/smell-of-curry/dieface/dieface/internal"
	"github.com/smell-of-curry/dieface/dieface/registry"
	"github.com/smell-of-curry/dieface/dieface/service"
	"github.com/smell-of-curry/dieface/dieface/table"
	"github.com/smell-of-curry/dieface/dieface/watch"
)

// Dieface holds the configuration and the running components.
type Dieface struct {
	log  *slog.Logger
	conf Config

	http    *http.Server
	watcher *watch.Watcher
}

// NewDieface creates a new instance of Dieface. Every table file under the
// configured table path is registered.
func NewDieface(log *slog.Logger, conf Config) (*Dieface, error) {
	if dsn := conf.Dieface.SentryDsn; dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			return nil, fmt.Errorf("failed to initialise sentry: %w", err)
		}
	}

	df := &Dieface{
		log:  log,
		conf: conf,
	}
	if err := df.loadTables(); err != nil {
		return nil, err
	}

	var persist func(*registry.Entry) error
	if conf.Dieface.Persist {
		persist = df.persist
	}
	df.http = &http.Server{
		Addr:    conf.Service.Address,
		Handler: service.New(log, conf.Service.Key, persist).Handler(),
	}

	if conf.Dieface.Watch {
		w, err := watch.New(log, conf.Dieface.TablePath, conf.Dieface.WatchDebounce.Std(), df.reload)
		if err != nil {
			return nil, err
		}
		df.watcher = w
	}
	return df, nil
}

// Start runs the HTTP service and the table watcher. It blocks until the
// service is closed.
func (df *Dieface) Start() error {
	if df.watcher != nil {
		df.watcher.Start()
	}

	df.log.Info("Listening for requests", "address", df.http.Addr)
	if err := df.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close stops the HTTP service and the watcher.
func (df *Dieface) Close() {
	df.log.Debug("Closing HTTP Service...")
	ctx, cancel := context.WithTimeout(context.Background(), internal.DefaultTimeout)
	defer cancel()
	if err := df.http.Shutdown(ctx); err != nil {
		df.log.Error("failed to shut down HTTP service", "error", err)
	}

	if df.watcher != nil {
		df.log.Debug("Closing Table Watcher...")
		if err := df.watcher.Close(); err != nil {
			df.log.Error("failed to close table watcher", "error", err)
		}
	}
	sentry.Flush(internal.SentryFlushTimeout)
}

// Edit opens the terminal editor for the die registered under identifier.
// Saving stores the edited die in the registry and writes it to its table file.
func (df *Dieface) Edit(identifier string, opts ...survey.AskOpt) error {
	e := registry.FromIdentifier(identifier)
	if e == nil {
		return fmt.Errorf("no die registered as %q", identifier)
	}

	save := func(d *die.Die) error {
		err := e.Update(func(ed *author.Editor) error {
			ed.Die().Sides = d.Clone().Sides
			return nil
		})
		if err != nil {
			return err
		}
		return df.persist(e)
	}
	return author.NewPrompt(df.log, author.NewEditor(e.Die().Clone()), os.Stdout, save, opts...).Run()
}

// Analyse samples the die registered under identifier and writes the report to
// w. Progress is shown on stderr.
func (df *Dieface) Analyse(identifier string, w io.Writer) (analysis.Report, error) {
	e := registry.FromIdentifier(identifier)
	if e == nil {
		return analysis.Report{}, fmt.Errorf("no die registered as %q", identifier)
	}

	samples := df.conf.Analysis.Samples
	if samples <= 0 {
		samples = internal.DefaultSamples
	}
	r := analysis.Sample(e.Die(), samples, analysis.Options{
		Seed:     df.conf.Analysis.Seed,
		Progress: os.Stderr,
	})
	_, err := fmt.Fprintln(w, r)
	return r, err
}

// Query returns the side of the die registered under identifier that faces up
// in the given orientation.
func (df *Dieface) Query(identifier string, orientation mgl64.Quat) (die.Match, bool, error) {
	e := registry.FromIdentifier(identifier)
	if e == nil {
		return die.Match{Index: -1}, false, fmt.Errorf("no die registered as %q", identifier)
	}
	m, ok := e.Die().Match(orientation, die.WorldUp)
	return m, ok, nil
}

// loadTables reads every table file and registers it. An empty table
// directory is seeded with a six-sided die.
func (df *Dieface) loadTables() error {
	path := df.conf.Dieface.TablePath
	if err := os.MkdirAll(path, internal.DirectoryPermissions); err != nil {
		return fmt.Errorf("failed to create table directory: %w", err)
	}

	cfgs, err := table.ReadAll(path)
	if err != nil {
		return err
	}
	if len(cfgs) == 0 {
		df.log.Info("No side tables found, writing a six-sided die", "path", path)
		file, err := table.Save(path, table.Config{Name: "Six-sided die", Identifier: "d6", Preset: "d6"})
		if err != nil {
			return err
		}
		cfg, err := table.Parse(file)
		if err != nil {
			return err
		}
		cfgs = append(cfgs, cfg)
	}

	if err = registry.LoadAll(df.log, cfgs); err != nil {
		df.log.Warn("Some side tables could not be loaded", "error", err)
	}
	df.log.Info("Loaded side tables", "count", len(registry.Identifiers()))
	return nil
}

// persist writes the current die of e to its table file.
func (df *Dieface) persist(e *registry.Entry) error {
	path, err := table.Save(df.conf.Dieface.TablePath, e.Config())
	if err != nil {
		return err
	}
	df.log.Debug("Saved side table", "identifier", e.Identifier(), "path", path, "revision", e.Revision())
	return nil
}

// reload parses a changed table file and registers the result. Files whose
// die matches the registered one, such as files just written by persist, are
// left alone.
func (df *Dieface) reload(path string) error {
	cfg, err := table.Parse(path)
	if err != nil {
		return err
	}
	d, err := cfg.Die()
	if err != nil {
		return err
	}
	if e := registry.FromIdentifier(cfg.Identifier); e != nil &&
		e.Name() == cfg.Name && slices.Equal(e.Config().Sides, cfg.WithDie(d).Sides) {
		return nil
	}
	_, err = registry.Load(cfg)
	return err
}
