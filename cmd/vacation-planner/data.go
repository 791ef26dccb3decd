package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/vacation-planner/internal/daemon"
	"github.com/username/vacation-planner/internal/persistence"
	"github.com/username/vacation-planner/internal/server"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planner HTTP API",
		Long: `Run the planner HTTP API until interrupted. With unsaved changes the
first interrupt is refused; send a second one to quit anyway.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			handler := server.NewHandler(a.session, logger)
			d := daemon.NewDaemon(addr, handler.Routes(), handler, a.cfg.Server.GetShutdownTimeout(), logger)

			logger.Info("Starting planner", zap.String("addr", addr), zap.String("storage", a.cfg.Storage.Backend))
			return d.Start()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}

func exportCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the planner state as " + persistence.ExportFileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if dir == "" {
				dir = a.cfg.Export.Dir
			}
			if err := a.session.Export(cmd.Context(), persistence.DirSaver{Dir: dir}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Target directory (overrides export.dir)")
	return cmd
}

func importCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the planner state with an exported document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			confirm := func() bool { return true }
			if !yes {
				confirm = promptConfirm(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			if err := a.session.Import(cmd.Context(), persistence.FileSource{Path: args[0]}, confirm); err != nil {
				return err
			}

			data := a.session.Data()
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d users and %d holidays\n", len(data.Users), len(data.Holidays))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Replace without asking")
	return cmd
}

func promptConfirm(in io.Reader, out io.Writer) func() bool {
	return func() bool {
		fmt.Fprint(out, "Esto reemplazará todos los datos actuales. ¿Continuar? [s/N] ")
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "s", "si", "sí", "y", "yes":
			return true
		default:
			return false
		}
	}
}
