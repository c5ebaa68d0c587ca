package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/slotshim/dom"
	"github.com/chrisuehlinger/slotshim/internal/config"
	"github.com/chrisuehlinger/slotshim/internal/source"
	"github.com/chrisuehlinger/slotshim/slot"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(1)
	}
}

// app carries the state shared by every subcommand once the config is loaded.
type app struct {
	workDir    string
	configPath string
	overrides  config.Config

	cfg config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "slotshim",
		Short: "Route children of slot hosts into their slot elements",
		Long: `slotshim patches elements that carry manual slot sub-elements so they
behave like shadow hosts: children are routed into the slot whose id is
the host's shadow id plus the child's slot name, and reads report the
logical children instead of the physical tree.

Examples:
  slotshim render page.html
  slotshim render page.html --script app.js
  slotshim inspect page.html --host-selector=x-card`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.workDir, "cwd", "C", "", "Directory to look up the config file in")
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file (default ./"+config.FileName+" if present)")
	flags.StringVar(&a.overrides.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.overrides.HostSelector, "host-selector", "", "Selector for the elements to patch")
	flags.StringVar(&a.overrides.SlotAttribute, "slot-attribute", "", "Attribute naming a child's slot")
	flags.StringVar(&a.overrides.SlotIDAttribute, "slot-id-attribute", "", "Attribute identifying slot elements")
	flags.StringVar(&a.overrides.ShadowIDAttribute, "shadow-id-attribute", "", "Attribute holding a host's shadow id")
	flags.StringVar(&a.overrides.DefaultSlot, "default-slot", "", "Name of the default slot")

	rootCmd.AddCommand(
		renderCmd(a),
		inspectCmd(a),
		versionCmd(),
	)
	return rootCmd
}

func (a *app) load(stderr io.Writer) error {
	cfg, err := config.Load(config.LoadInput{
		WorkDir:    a.workDir,
		ConfigPath: a.configPath,
		Overrides:  a.overrides,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logrus.New()
	a.log.SetOutput(stderr)
	a.log.SetLevel(cfg.Level())
	if cfg.Source != "" {
		a.log.WithField("path", cfg.Source).Debug("config: loaded")
	}
	return nil
}

// page is a parsed document with its hosts patched.
type page struct {
	url    string
	doc    *dom.Document
	loader *source.Loader
	shim   *slot.Shim
	hosts  []*slot.Host
}

// openPage loads and parses the page at ref, a path or URL, and patches
// every element matching the configured host selector, discovering the
// slots present in the markup.
func (a *app) openPage(ctx context.Context, ref string, timeout time.Duration) (*page, error) {
	loader := source.New(source.WithTimeout(timeout), source.WithLogger(a.log))
	res, err := loader.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	doc, err := dom.ParseHTML(res.AsString())
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", ref)
	}

	p := &page{
		url:    res.URL,
		doc:    doc,
		loader: loader,
		shim:   slot.New(a.cfg.SlotOptions(a.log)),
	}
	for _, n := range doc.QuerySelectorAll(a.cfg.HostSelector).Slice() {
		h := p.shim.Patch(n.AsElement())
		h.DiscoverSlots()
		p.hosts = append(p.hosts, h)
	}
	a.log.WithFields(logrus.Fields{
		"page":  ref,
		"hosts": len(p.hosts),
	}).Debug("page: patched hosts")
	return p, nil
}

// describe names a host for output: its tag followed by #id when it has one.
func describe(el *dom.Element) string {
	name := el.LocalName()
	if id := el.Id(); id != "" {
		name += "#" + id
	}
	return name
}
