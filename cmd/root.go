package cmd

import (
	"fmt"
	"os"
	"strings"

	"urimap/internal/config"
	"urimap/internal/errors"
	"urimap/internal/rules"

	"github.com/spf13/cobra"
)

var cfg = &config.Config{}

var rootCmd = &cobra.Command{
	Use:   "urimap [options] <rules-file> <file|directory>...",
	Short: "Rewrite remote URIs in .git/config and .gitmodules files",
	Long: `Urimap recursively searches directories for .git/config files (and
optionally .gitmodules files) and rewrites all remote URIs matching the
search rules of a rules file. The rules file provides two regex fragments
(search.hostname and search.path), the components of the replacement URI
(replace.hostname, replace.protocol and an optional replace.username) and a
substitution table mapping old project names to their new paths. JSON is the
default rules format; .yaml/.yml and .toml files are also accepted.

The search fragments are part of a bigger expression and must not contain
anchors like '^' and '$'. Matched projects without a substitution entry are
left untouched and reported on stderr.

Hostname, protocol and username can all be overridden from the command line.
With the protocol 'relative' the hostname may be a prefix like '../..' and
the username is ignored. Use --list-configs, --list-projects or --dry-run to
test the rules before changing any file.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runUrimap,
}

// Execute runs the root command and handles top-level error reporting.
// This function serves as the main entry point for the CLI, providing
// consistent error formatting and exit code management for all command failures.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if ue, ok := err.(*errors.UrimapError); ok {
			fmt.Fprintf(os.Stderr, "Error: %s\n", ue.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVar(&cfg.ListConfigs, "list-configs", false, "List all matching config files and do nothing else")
	flags.BoolVar(&cfg.ListProjects, "list-projects", false, "List all projects found in all matching files and do nothing else")
	flags.BoolVar(&cfg.ListCategorised, "list-categorised", false, "When listing projects, print them indented under the file they are found in")
	flags.StringVar(&cfg.ShowNewPath, "show-new-path", "", "When listing projects, also show their new paths, separated by a delimiter (default \" → \")")
	flags.BoolVarP(&cfg.DryRun, "dry-run", "d", false, "Instead of rewriting files just print what would have been done")
	flags.VarP((*protocolFlag)(&cfg.Protocol), "protocol", "p", "Protocol to use in the new URI (overrides rules file)")
	flags.StringVarP(&cfg.Username, "username", "u", "", "Username to use in the new URI (overrides rules file)")
	flags.StringVar(&cfg.Hostname, "hostname", "", "Hostname in the new URI (overrides rules file)")
	flags.BoolVarP(&cfg.Modules, "modules", "m", false, "Rewrite/inspect URIs in .gitmodules files as well")
	flags.BoolVar(&cfg.ModulesOnly, "modules-only", false, "Rewrite/inspect URIs in .gitmodules files only")
	flags.BoolVar(&cfg.Backup, "backup", false, "Create timestamped .bak copies before rewriting files")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose mode (prints a run summary on stderr)")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Quiet mode")

	flags.Lookup("show-new-path").NoOptDefVal = " → "

	rootCmd.MarkFlagsMutuallyExclusive("list-configs", "list-projects", "dry-run")
	rootCmd.MarkFlagsMutuallyExclusive("modules", "modules-only")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

func runUrimap(cmd *cobra.Command, args []string) error {
	cfg.RulesFile = args[0]
	cfg.Targets = args[1:]

	if err := cfg.Validate(); err != nil {
		return err
	}

	return executeUrimap(cfg)
}

type protocolFlag rules.Protocol

func (f *protocolFlag) String() string {
	return string(*f)
}

func (f *protocolFlag) Set(v string) error {
	p := rules.Protocol(v)
	if !p.Valid() {
		return fmt.Errorf("must be one of: %s", strings.Join(rules.ValidProtocolNames(), ", "))
	}
	*f = protocolFlag(p)
	return nil
}

func (f *protocolFlag) Type() string {
	return "string"
}
