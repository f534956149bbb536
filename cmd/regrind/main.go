package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aggcycle/regrind/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "regrind",
		Short: "Crusher-versus-grinder decision engine for recycled construction material",
	}

	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(sweepCmd())
	rootCmd.AddCommand(investCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func simulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate [project-path]",
		Short: "Run the flow simulation and scenario analysis for a study",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSimulate(args[0])
		},
	}
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep [project-path]",
		Short: "Run the sensitivity grid and emit the full result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSweep(args[0])
		},
	}
}

func investCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invest [project-path]",
		Short: "Evaluate the grinder investment against the crusher baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInvest(args[0])
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a study file without running any engine",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return server.New(port).Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
