package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hex",
		Short: "Print ids as 24 lowercase hex characters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			return printHex(cmd, a)
		},
	}
}

func newSlimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slim",
		Short: "Print ids in the compact 64-symbol encoding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			return printSlim(cmd, a)
		},
	}
}

func printHex(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()
	for i := 0; i < a.cfg.Count; i++ {
		if _, err := fmt.Fprintln(out, a.gen.Hex(a.create...)); err != nil {
			return err
		}
	}
	return nil
}

func printSlim(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()
	for i := 0; i < a.cfg.Count; i++ {
		s, err := a.gen.Slim(a.cfg.Alphabet, a.create...)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, s); err != nil {
			return err
		}
	}
	return nil
}
