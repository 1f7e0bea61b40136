package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	addrFlag    string
	envFileFlag string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "studio-backend",
		Short:         "Design studio backend API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), addrFlag, envFileFlag)
		},
	}

	cmd.Flags().StringVar(&addrFlag, "addr", "", "HTTP listen address, overrides HTTP_ADDR")
	cmd.Flags().StringVar(&envFileFlag, "env-file", ".env", "dotenv file loaded before reading the environment")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
