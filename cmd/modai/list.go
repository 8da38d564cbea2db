package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/germanamz/modai/cmd/modai/internal/tui"
	"github.com/germanamz/modai/pkg/engine"
)

func runCommands(g *globalOptions) error {
	if err := loadDotEnv(g.envFile); err != nil {
		return err
	}

	cfg, _, err := loadSettings(g, false)
	if err != nil {
		return err
	}

	ws, err := newFileWorkspace("", "")
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg, engine.Host{Workspace: ws, Frontend: tui.New(nil, os.Stderr, true)})
	if err != nil {
		return err
	}

	return printCommands(os.Stdout, eng.Commands())
}

func printCommands(w io.Writer, cmds []engine.Command) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range cmds {
		fmt.Fprintf(tw, "%s\t%s\n", c.ID, c.Name)
	}
	return tw.Flush()
}

func printModels(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PREFIX\tPROVIDER")
	for _, r := range engine.Families() {
		fmt.Fprintf(tw, "%s*\t%s\n", r.Prefix, r.Family)
	}
	_ = tw.Flush()
}
