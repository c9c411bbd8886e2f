package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"topomap/internal/config"
	"topomap/internal/georef"
	"topomap/internal/logging"
	"topomap/internal/store"
)

type CLI struct {
	Map string `name:"map" short:"m" help:"map to open, overrides TOPOMAP_MAP"`

	Run     RunCmd     `cmd:"" default:"1" help:"open the map in the terminal UI"`
	Export  ExportCmd  `cmd:"" help:"write the saved annotations"`
	Profile ProfileCmd `cmd:"" help:"write the height profile of a saved line"`
	Import  ImportCmd  `cmd:"" help:"add annotations from a file to the saved session"`
	Maps    MapsCmd    `cmd:"" help:"list the maps of the catalog"`
}

// app carries what every command needs. The store is opened on demand so
// commands that never touch the session leave the database unlocked.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	catalog *georef.Catalog
	out     io.Writer

	store store.Store
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("topomap"),
		kong.Description("Annotate calibrated raster maps in the terminal."),
		kong.HelpOptions{Compact: true, FlagsLast: true},
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	if cli.Map != "" {
		cfg.Map = cli.Map
	}

	log, closer, err := logging.New(logging.Config{
		Filename:   cfg.LogPath(),
		Level:      cfg.LogLevel,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogBackups,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(2)
	}
	defer closer.Close()

	a, err := newApp(cfg, log, os.Stdout)
	if err != nil {
		log.WithError(err).Error("startup failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	err = ctx.Run(a)
	if cerr := a.close(); cerr != nil {
		log.WithError(cerr).Warn("store close failed")
	}
	if err != nil {
		log.WithError(err).WithField("command", ctx.Command()).Error("command failed")
		ctx.FatalIfErrorf(err)
	}
}

func newApp(cfg *config.Config, log *logrus.Logger, out io.Writer) (*app, error) {
	catalog := &georef.Builtin
	if cfg.Catalog != "" {
		c, err := georef.LoadCatalog(cfg.Catalog)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		catalog = c
	}
	log.WithFields(logrus.Fields{"maps": len(catalog.Maps), "default": catalog.Default}).Debug("catalog loaded")
	return &app{cfg: cfg, log: log, catalog: catalog, out: out}, nil
}

// openStore opens the session database once.
func (a *app) openStore() (store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := store.OpenBadger(a.cfg.StoreDir(), a.log)
	if err != nil {
		return nil, err
	}
	a.store = s
	return s, nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// meta resolves the configured map, falling back to the catalog default.
func (a *app) meta() (georef.MapMeta, error) {
	name := a.cfg.Map
	if name == "" {
		name = a.catalog.Default
	}
	return a.catalog.Lookup(name)
}
