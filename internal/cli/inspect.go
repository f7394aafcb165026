package cli

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pascal910107/objectid"
)

type inspection struct {
	Hex       string `json:"hex"`
	Slim      string `json:"slim"`
	Timestamp string `json:"timestamp"`
	Unix      uint32 `json:"unix"`
	Machine   string `json:"machine"`
	Process   string `json:"process"`
	Counter   uint32 `json:"counter"`
}

func newInspectCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect <id>",
		Short: "Decode a hex or slim id into its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			id, err := parseAny(args[0], a.cfg.Alphabet)
			if err != nil {
				return err
			}
			slim, err := id.Slim(a.cfg.Alphabet)
			if err != nil {
				return err
			}

			secs, machine, process, counter := id.Decode()
			info := inspection{
				Hex:       id.Hex(),
				Slim:      slim,
				Timestamp: id.Timestamp().Format(time.RFC3339),
				Unix:      secs,
				Machine:   fmt.Sprintf("%06x", machine),
				Process:   fmt.Sprintf("%04x", process),
				Counter:   counter,
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err = fmt.Fprintf(out,
				"hex:       %s\nslim:      %s\ntimestamp: %s (%d)\nmachine:   %s\nprocess:   %s\ncounter:   %d\n",
				info.Hex, info.Slim, info.Timestamp, info.Unix, info.Machine, info.Process, info.Counter)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

// parseAny accepts hex (24 chars) or slim (16 chars in the configured alphabet).
func parseAny(s, alphabet string) (objectid.ID, error) {
	if utf8.RuneCountInString(s) == 2*objectid.Size {
		return objectid.ParseHex(s)
	}
	return objectid.ParseSlim(s, alphabet)
}
