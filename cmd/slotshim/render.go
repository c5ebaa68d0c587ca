package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/slotshim/js"
)

func renderCmd(a *app) *cobra.Command {
	var (
		script      string
		pageScripts bool
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "render <page>",
		Short: "Print the logical outerHTML of every host",
		Long: `Load an HTML page from a path or URL, patch every element matching the
host selector and print each host's logical outerHTML, one per line.

With --page-scripts, the page's own classic scripts run first, in document
order. With --script, the given script runs after them. Scripts can call
patch(element) to turn further elements into hosts.

Examples:
  slotshim render page.html
  slotshim render https://example.com/cards.html --page-scripts
  slotshim render page.html --script app.js`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := a.openPage(ctx, args[0], timeout)
			if err != nil {
				return err
			}

			if pageScripts || script != "" {
				r := js.NewRuntime(a.log)
				js.NewDOMBinder(r, p.shim).BindDocument(p.doc)

				if pageScripts {
					scripts, err := p.loader.Scripts(ctx, p.doc, p.url)
					if err != nil {
						return err
					}
					for _, s := range scripts {
						if err := r.ExecuteScript(s.Content, s.Name); err != nil {
							return errors.Wrapf(err, "running %s", s.Name)
						}
					}
				}

				if script != "" {
					res, err := p.loader.Load(ctx, script)
					if err != nil {
						return err
					}
					if err := r.ExecuteScript(res.AsString(), script); err != nil {
						return errors.Wrapf(err, "running %s", script)
					}
				}
			}

			out := cmd.OutOrStdout()
			for _, h := range p.hosts {
				fmt.Fprintln(out, h.OuterHTML())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&script, "script", "s", "", "JavaScript file or URL to run against the patched document")
	cmd.Flags().BoolVar(&pageScripts, "page-scripts", false, "Run the page's own scripts first")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for fetching URLs")
	return cmd
}
