package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pascal910107/objectid/internal/config"
)

func newConfigCmd() *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.RenderDefaultTOML())
				return err
			}
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), config.RenderTOML(a.v))
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print a starter config with default values")
	return cmd
}
