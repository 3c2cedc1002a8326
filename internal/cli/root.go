// Package cli implements the wordstat command line tool.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"wordstat-go/internal/config"
	"wordstat-go/pkg/logger"
	"wordstat-go/pkg/wordstat"
)

// app carries the state shared by every subcommand of one invocation
type app struct {
	viper      *viper.Viper
	configPath string
	debug      bool
	jsonOutput bool
	config     *config.Config
}

// NewRootCommand builds the command tree. Output goes to the command's
// out stream, so tests can capture it with SetOut.
func NewRootCommand() *cobra.Command {
	a := &app{viper: viper.New()}

	root := &cobra.Command{
		Use:   "wordstat",
		Short: "Query keyword search statistics from the Wordstat API",
		Long: `wordstat creates, lists, fetches and deletes Wordstat reports.

The API token is read from --token, WORDSTAT_API_TOKEN, a .env file or the
api.token key of the config file, in that order.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (yaml, json or toml)")
	flags.String("token", "", "API token")
	flags.String("url", "", "API endpoint (default production)")
	flags.BoolVar(&a.debug, "debug", false, "log requests at debug level")
	flags.BoolVar(&a.jsonOutput, "json", false, "print JSON instead of tables")

	_ = a.viper.BindPFlag("api.token", flags.Lookup("token"))
	_ = a.viper.BindPFlag("api.url", flags.Lookup("url"))

	root.AddCommand(
		a.regionsCommand(),
		a.reportsCommand(),
		a.createCommand(),
		a.reportCommand(),
		a.deleteCommand(),
		a.sandboxCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewManagerWithViper(a.viper).Load(a.configPath)
	if err != nil {
		return err
	}
	if a.debug {
		cfg.Logger.Level = "debug"
	}
	logger.SetLogger(logger.New(cfg.Logger))
	a.config = cfg
	return nil
}

// client builds an API client from the loaded config
func (a *app) client() (*wordstat.Client, error) {
	if err := a.config.RequireToken(); err != nil {
		return nil, err
	}
	transport := wordstat.NewHTTPTransport(a.config.API.URL, a.config.Connection)
	return wordstat.NewClientWithTransport(a.config.API.Token, transport), nil
}

// render prints v as indented JSON when --json is set, otherwise calls table
func (a *app) render(w io.Writer, v any, table func(io.Writer) error) error {
	if a.jsonOutput {
		return writeJSON(w, v)
	}
	if err := table(w); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
