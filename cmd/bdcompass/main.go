// Command bdcompass runs the routing, scoring, outreach and digest contracts
// offline against JSON files.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bdcompass/internal/api"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "bdcompass",
		Short:        "BD connection routing, scoring and outreach",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("in", "-", "input JSON file (- for stdin)")

	root.AddCommand(
		jsonCmd("routes", "Find the best introduction route to each target", api.Routes),
		jsonCmd("score", "Score one opportunity", api.Score),
		jsonCmd("outbound", "Compose a cold outbound message", api.Outbound),
		jsonCmd("followups", "Compose follow-ups for a waiting opportunity", api.FollowUps),
		jsonCmd("digest", "Analyze a week of activity", api.Digest),
	)
	return root
}

// jsonCmd decodes --in into Req, runs fn and prints the response as JSON.
func jsonCmd[Req, Resp any](use, short string, fn func(Req) (Resp, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := cmd.Flags().GetString("in")
			if err != nil {
				return err
			}
			var req Req
			if err := readJSON(cmd.InOrStdin(), path, &req); err != nil {
				return err
			}
			resp, err := fn(req)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(resp)
		},
	}
}

func readJSON(stdin io.Reader, path string, dst any) error {
	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
