package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "auditbotd",
		Short: "Audit assistant daemon",
		Long:  "Daemon for the ISO/IEC 27001 and ANSSI hygiene audit assistant API",
	}

	rootCmd.AddCommand(admin.ServeCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
