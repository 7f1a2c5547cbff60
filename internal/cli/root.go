// Package cli wires the task-api commands: the HTTP service itself and a
// small client for driving a running instance from the terminal.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"task-api/internal/client"
	"task-api/internal/config"
)

// app carries state shared by all subcommands of one root command.
type app struct {
	v   *viper.Viper
	cfg config.Config
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:   "task-api",
		Short: "In-memory task HTTP service",
		Long: `task-api serves a JSON API for creating, listing, updating and deleting
tasks kept in memory, and ships a client for talking to a running instance.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (YAML)")
	flags.String("log-level", "INFO", "log level: DEBUG, INFO, WARN, ERROR")
	flags.String("log-format", "json", "log format: json or text")
	flags.String("base-url", "http://localhost:8000", "base URL of a running task-api (client commands)")
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("client.base_url", flags.Lookup("base-url"))

	root.AddCommand(
		newServeCmd(a),
		newTasksCmd(a),
		newHealthCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) client() (*client.Client, error) {
	return client.New(a.cfg.Client.BaseURL, client.WithTimeout(a.cfg.Client.Timeout))
}
