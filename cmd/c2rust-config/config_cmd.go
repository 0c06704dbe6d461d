package main

import (
	"fmt"
	"io"

	config "github.com/lixenwraith/c2rust-config"
	"github.com/lixenwraith/c2rust-config/internal/log"
	"github.com/spf13/cobra"
)

// configOptions holds the flags of the config command.
type configOptions struct {
	global bool
	model  bool
	make   bool

	feature string

	set   bool
	unset bool
	add   bool
	del   bool
	list  bool

	revision string
}

// choice is one flag of a group where exactly one must be given.
type choice[T any] struct {
	flag  string
	set   bool
	value T
}

// exactlyOne returns the value of the single set choice.
func exactlyOne[T any](missing string, choices ...choice[T]) (T, error) {
	var picked []choice[T]
	for _, c := range choices {
		if c.set {
			picked = append(picked, c)
		}
	}

	var zero T
	switch len(picked) {
	case 0:
		return zero, usageError{msg: missing}
	case 1:
		return picked[0].value, nil
	default:
		return zero, usageError{msg: fmt.Sprintf("--%s cannot be used with --%s", picked[0].flag, picked[1].flag)}
	}
}

func (o *configOptions) scope() (config.Scope, error) {
	return exactlyOne("Exactly one of --global, --model, or --make must be specified",
		choice[config.Scope]{"global", o.global, config.ScopeGlobal},
		choice[config.Scope]{"model", o.model, config.ScopeModel},
		choice[config.Scope]{"make", o.make, config.ScopeMake},
	)
}

func (o *configOptions) verb() (config.Verb, error) {
	return exactlyOne("Exactly one of --set, --unset, --add, --del, or --list must be specified",
		choice[config.Verb]{"set", o.set, config.VerbSet},
		choice[config.Verb]{"unset", o.unset, config.VerbUnset},
		choice[config.Verb]{"add", o.add, config.VerbAdd},
		choice[config.Verb]{"del", o.del, config.VerbDel},
		choice[config.Verb]{"list", o.list, config.VerbList},
	)
}

func newConfigCmd(root *rootOptions) *cobra.Command {
	opts := &configOptions{}

	configCmd := &cobra.Command{
		Use:   "config (--global|--model|--make) [--feature NAME] (--set|--unset|--add|--del|--list) [KEY] [VALUES...]",
		Short: "Read or modify configuration values",
		Long: `Read or modify one value of .c2rust/config.toml.

Exactly one section mode and exactly one operation must be given.
--set with one value stores a string, with several an array.
--add and --del treat a string as a one-element array.
After a change to a feature, the feature is checked for a complete set of
clean/test/build keys and for build.files.<i> entries beyond build.options;
findings are printed as warnings and never fail the command.
Values starting with '-' must follow a "--" separator.

Examples:
  c2rust-config config --make --set build.dir build
  c2rust-config config --make --feature debug --add build.options -- -O0 -g
  c2rust-config config --model --list`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, root, opts, args)
		},
	}

	f := configCmd.Flags()
	f.BoolVar(&opts.global, "global", false, "Operate on the [global] section")
	f.BoolVar(&opts.model, "model", false, "Operate on the [model] section")
	f.BoolVar(&opts.make, "make", false, "Operate on a [feature.<name>] section")
	f.StringVar(&opts.feature, "feature", "", `Feature name for --make (default "default")`)

	f.BoolVar(&opts.set, "set", false, "Set key to value(s): a string for one value, an array for several")
	f.BoolVar(&opts.unset, "unset", false, "Remove key")
	f.BoolVar(&opts.add, "add", false, "Append value(s) to the array at key, skipping duplicates")
	f.BoolVar(&opts.del, "del", false, "Remove value(s) from the array at key")
	f.BoolVar(&opts.list, "list", false, "Show the value at key, or every entry of the section")

	f.StringVar(&opts.revision, "revision", "", "Validator revision: bare, cmd or files (default files)")

	return configCmd
}

func runConfig(cmd *cobra.Command, root *rootOptions, opts *configOptions, args []string) error {
	scope, err := opts.scope()
	if err != nil {
		return err
	}
	verb, err := opts.verb()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("feature") && scope != config.ScopeMake {
		return usageError{msg: "--feature can only be used with --make"}
	}

	rev, err := config.LookupRevision(root.loaded.Settings.Revision)
	if err != nil {
		return err
	}

	logger := log.WithComponent("config")
	if rev.Name == config.RevisionBare.Name {
		logger.Debug().
			Strs("required", rev.Required).
			Msg("revision bare requires build and build.dir, which cannot coexist; a complete feature is impossible")
	}

	loc, err := config.Locate(root.loaded.Settings.ProjectRoot)
	if err != nil {
		return err
	}
	cfg, err := config.Load(loc.File)
	if err != nil {
		return err
	}
	logger.Debug().Str("file", loc.File).Strs("features", cfg.Features()).Msg("configuration loaded")

	req := config.Request{
		Scope:   scope,
		Feature: opts.feature,
		Verb:    verb,
	}
	if len(args) > 0 {
		req.Key = args[0]
		req.Values = args[1:]
	}

	result, err := cfg.Apply(req, rev)
	if err != nil {
		return err
	}
	logger.Debug().
		Str("verb", string(verb)).
		Str("section", result.Section).
		Str("key", req.Key).
		Bool("changed", result.Changed).
		Int("warnings", len(result.Warnings)).
		Msg("operation applied")

	for _, w := range result.Warnings {
		fmt.Fprintf(root.stderr, "Warning: %s\n", w.Message)
	}

	if verb == config.VerbList {
		return printEntries(root.stdout, req.Key != "", result.Entries)
	}

	if result.Changed {
		if err := cfg.Save(loc.File); err != nil {
			return err
		}
		logger.Debug().Str("file", loc.File).Msg("configuration saved")
	}
	return nil
}

// printEntries writes list output: the bare value for a keyed list,
// otherwise one "key = value" line per entry.
func printEntries(w io.Writer, keyed bool, entries []config.Entry) error {
	for _, e := range entries {
		line := e.Line()
		if keyed {
			rendered, err := e.Value.Render()
			if err != nil {
				return err
			}
			line = rendered
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
