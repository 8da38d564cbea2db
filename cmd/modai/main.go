package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const usage = `Usage: modai <command> [flags]

Commands:
  init       Create a .modai directory with a settings file
  roles      List, add, edit or remove roles
  commands   List the commands built from the current settings
  models     Show which model prefixes map to which provider
  run        Rewrite a file (or a range of it) with a role
  custom     Rewrite or ask about a file with your own instructions

Run "modai <command> -h" for the flags of a command.
`

// globalOptions are the flags every subcommand accepts.
type globalOptions struct {
	configPath string
	modaiDir   string
	envFile    string
	verbose    bool
}

func registerGlobal(fs *flag.FlagSet) *globalOptions {
	o := &globalOptions{}
	fs.StringVar(&o.configPath, "config", "", "path to settings file (default: .modai/config.yaml or modai.yaml)")
	fs.StringVar(&o.modaiDir, "modai-dir", ".modai", "path to .modai directory")
	fs.StringVar(&o.envFile, "env", ".env", "path to .env file (ignored if missing)")
	fs.BoolVar(&o.verbose, "verbose", false, "also log to stderr at debug level")
	return o
}

func newFlagSet(name, summary string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: modai %s [flags]\n\n%s\n\nFlags:\n", name, summary)
		fs.PrintDefaults()
	}
	return fs
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := dispatch(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "init":
		fs := newFlagSet("init", "Create a .modai directory with a settings file.")
		g := registerGlobal(fs)
		force := fs.Bool("force", false, "overwrite an existing settings file")
		_ = fs.Parse(args)
		return runInit(g, *force)

	case "roles":
		fs := newFlagSet("roles", "List roles, or: roles add <name> | roles set <name> | roles rm <name>.")
		g := registerGlobal(fs)
		instructions := fs.String("instructions", "", "instructions for roles add/set (prompted when empty)")
		_ = fs.Parse(args)
		return runRoles(g, fs.Args(), *instructions)

	case "commands":
		fs := newFlagSet("commands", "List the commands built from the current settings.")
		g := registerGlobal(fs)
		_ = fs.Parse(args)
		return runCommands(g)

	case "models":
		fs := newFlagSet("models", "Show which model prefixes map to which provider.")
		_ = fs.Parse(args)
		printModels(os.Stdout)
		return nil

	case "run", "custom":
		summary := "Rewrite a file (or a range of it) with a role."
		if name == "custom" {
			summary = "Rewrite or ask about a file with your own instructions."
		}
		fs := newFlagSet(name, summary)
		o := documentOptions{globalOptions: registerGlobal(fs)}
		if name == "run" {
			fs.StringVar(&o.role, "role", "", "role to apply (required)")
		}
		fs.StringVar(&o.file, "file", "", "document to process (required)")
		fs.StringVar(&o.selection, "select", "", "range to process as LINE:CH-LINE:CH, 0-based")
		fs.BoolVar(&o.stdout, "stdout", false, "print the accepted document instead of writing the file")
		fs.BoolVar(&o.plain, "plain", false, "mark diffs with [-removed-]{+added+} instead of colour")
		_ = fs.Parse(args)
		o.custom = name == "custom"
		return runDocument(ctx, o)

	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", name)
	}
}
