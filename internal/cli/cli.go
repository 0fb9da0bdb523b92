// Package cli implements the chirp command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chirp/pkg/buildinfo"
	"github.com/matzehuels/chirp/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "chirp"

	// envPrefix prefixes the environment variables that override the config file.
	envPrefix = "CHIRP_"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Global flags
	configPath string
	profile    string
	noCache    bool
	jsonOutput bool

	// Flag overrides applied on top of the config file and environment.
	apiURL    string
	uploadURL string
	timeout   string
	insecure  bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level, HTTP and cache
// events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetHTTPHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "chirp talks to the Twitter REST API from the terminal",
		Long:         `chirp is a command-line client for the Twitter REST API v1.1. It signs every request with OAuth 1.0a, caches reads on disk, Redis or MongoDB, and falls back to cached data when the service is unreachable.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/chirp/config.toml)")
	flags.StringVar(&c.profile, "profile", "", "session profile used for stored logins")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the response cache")
	flags.BoolVar(&c.jsonOutput, "json", false, "print results as JSON")
	flags.StringVar(&c.apiURL, "api-url", "", "override the REST API base URL")
	flags.StringVar(&c.uploadURL, "upload-url", "", "override the media upload base URL")
	flags.StringVar(&c.timeout, "timeout", "", "request timeout (e.g. 20s)")
	flags.BoolVar(&c.insecure, "insecure", false, "skip TLS certificate verification")

	// Register all subcommands
	root.AddCommand(c.postCommand())
	root.AddCommand(c.uploadCommand())
	root.AddCommand(c.dmCommand())
	root.AddCommand(c.followCommand())
	root.AddCommand(c.unfollowCommand())
	root.AddCommand(c.timelineCommand())
	root.AddCommand(c.userCommand())
	root.AddCommand(c.followersCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.destroyCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.loginCommand())
	root.AddCommand(c.logoutCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// versionCommand creates the version command.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
