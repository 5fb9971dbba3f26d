package geoascii

import (
	"fmt"

	"github.com/arthur-debert/geoascii/pkg/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var (
		format   string
		defaults bool
	)

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GenerateConfigContent())
				return err
			}
			out, err := config.Marshal(config.Get(), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "toml", MsgFlagFormat)
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
