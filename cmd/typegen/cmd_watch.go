package main

import (
	"net/http"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sourcelike.dev/typegen/devserver"
	"sourcelike.dev/typegen/log"
	"sourcelike.dev/typegen/schema"
)

func newWatchCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "watch [schema...]",
		Short: "Re-render schemas on change and push updates to connected clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := schema.LoadProject(projectDir())
			if err != nil {
				return err
			}
			srcs, err := pr.FilterSources(args...)
			if err != nil {
				return err
			}
			paths := make([]string, len(srcs))
			bySource := make(map[string]schema.Source, len(srcs))
			for i, s := range srcs {
				path := pr.Path(s)
				paths[i] = path
				bySource[path] = s
			}

			srv := devserver.NewServer(log.Root)
			render := func(path string) {
				src, ok := bySource[path]
				if !ok {
					return
				}
				out, err := renderSource(pr, src)
				if err != nil {
					pterm.Error.Printfln("%s: %v", src.Name, err)
					srv.NotifyError(src.Name, err)
					return
				}
				pterm.Success.Printfln("%s -> %s", src.Name, out)
				srv.NotifyRendered(src.Name, out)
			}
			for _, p := range paths {
				render(p)
			}

			w, err := devserver.NewWatcher(paths, log.Root, render)
			if err != nil {
				return err
			}
			defer w.Close()

			mux := http.NewServeMux()
			mux.Handle("/ws", srv)
			pterm.Info.Printfln("watching %d schema(s), dev socket on %s/ws", len(paths), addr)
			httpSrv := &http.Server{Addr: addr, Handler: mux}
			go func() {
				if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					pterm.Error.Println(err)
				}
			}()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt)
			<-sig
			return httpSrv.Close()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8931", "dev socket listen address")
	return cmd
}
