package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sourcelike.dev/typegen/devserver"
	"sourcelike.dev/typegen/hub"
	"sourcelike.dev/typegen/hub/wshub"
	"sourcelike.dev/typegen/log"
)

// newTailCmd connects to a running "typegen watch" dev socket as a plain
// wshub.Client and prints every rendered/render_error notification it
// receives, for following a watch session from a second terminal instead
// of reading its own console output.
func newTailCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow a running watch session's render notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			cl := wshub.NewClient(cmd.Context(), wshub.Config{URL: wshub.WSURL("http://" + addr + "/ws"), Log: log.Root})
			msgs := make(chan *hub.Msg, 8)
			if err := cl.Start(msgs); err != nil {
				return err
			}
			pterm.Info.Printfln("tailing %s", addr)
			for m := range msgs {
				printNotification(m)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8931", "dev socket address to follow")
	return cmd
}

func printNotification(m *hub.Msg) {
	switch m.Subj {
	case devserver.SubjRendered:
		var n devserver.RenderedMsg
		if err := m.Unmarshal(&n); err != nil {
			pterm.Error.Println(err)
			return
		}
		pterm.Success.Printfln("%s -> %s", n.Source, n.Out)
	case devserver.SubjError:
		var n devserver.ErrorMsg
		if err := m.Unmarshal(&n); err != nil {
			pterm.Error.Println(err)
			return
		}
		pterm.Error.Printfln("%s: %s", n.Source, n.Err)
	}
}
