package main

import (
	"rockbot/internal/di"
	"rockbot/internal/structures"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newCmd(flags *structures.CliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rockbot",
		Short:         "Rock identification trivia bot for chat channels.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := di.InitApp(flags)
			return err
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML config file")
	fs.BoolVarP(&flags.DebugMode, "debug", "d", false, "log to the console as well as the log file")

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("rockbot v{{.Version}}\n")
	cmd.SilenceUsage = true

	return cmd
}
