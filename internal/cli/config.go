package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/splice/internal/config"
)

// ConfigOptions holds flags for the config command.
type ConfigOptions struct {
	*RootOptions
	Config string
}

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConfigOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration a compose run would use: the compiled-in defaults
overlaid with the --config file, if any. The YAML output is a valid config
file and a starting point for customizing markers and rules.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "config file (.yaml, .yml or .cue)")

	return cmd
}

func runConfig(opts *ConfigOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return outputComposeError(formatter, ErrCodeConfig, err.Error(), ExitCommandError, nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(cfg)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return outputComposeError(formatter, ErrCodeGeneric, err.Error(), ExitCommandError, nil)
	}
	_, err = formatter.Writer.Write(data)
	return err
}
