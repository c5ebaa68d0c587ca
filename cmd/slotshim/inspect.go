package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/slotshim/dom"
)

func inspectCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "inspect <page>",
		Short: "List each host's slots and logical children",
		Long: `Load an HTML page from a path or URL, patch every element matching the
host selector and list, per host, the slots found in its markup and the
logical children each slot holds.

Example:
  slotshim inspect page.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.openPage(cmd.Context(), args[0], timeout)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, h := range p.hosts {
				fmt.Fprintf(out, "%s shadow-id=%q\n", describe(h.Element()), h.ShadowID())
				for _, info := range h.Slots() {
					if info.Element == nil {
						fmt.Fprintf(out, "  slot %s (missing)\n", info.Name)
						continue
					}
					children := info.Element.AsNode().ChildNodes().Slice()
					fmt.Fprintf(out, "  slot %s -> %s (%d)\n", info.Name, describe(info.Element), len(children))
					for _, child := range children {
						fmt.Fprintf(out, "    %s\n", summarize(child))
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Timeout for fetching URLs")
	return cmd
}

// summarize renders a logical child on one line.
func summarize(n *dom.Node) string {
	if el := n.AsElement(); el != nil {
		return "<" + describe(el) + ">"
	}
	return fmt.Sprintf("%s %q", n.NodeName(), n.TextContent())
}
