package main

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/app/routes"
	"github.com/tracechain/tracechain/app/services"
	"github.com/tracechain/tracechain/config"
	"github.com/tracechain/tracechain/internal/server"
	"github.com/tracechain/tracechain/pkg/router"
)

// tracechain run — start the HTTP server.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the HTTP server (alias: serve)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// tracechain route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		r := router.New()
		dir := repositories.DefaultDirectory()
		routes.RegisterAPI(r, dir, services.NewActivityBroker(), config.ActivityWindow())

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No routes registered.")
			return nil
		}

		// Sort by path then method.
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

// tracechain build — compile the server binary.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the tracechain server binary (outputs ./tracechain-server)",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Building tracechain…")
		c := exec.Command("go", "build", "-o", "tracechain-server", "./cmd/server")
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
		fmt.Println("✅  Built: ./tracechain-server")
		return nil
	},
}

// tracechain serve — alias kept for muscle memory.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}
