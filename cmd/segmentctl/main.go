// cmd/segmentctl/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "segmentctl",
	Short: "Customer segmentation from the command line",
	Long:  `segmentctl runs the same K-Means segmentation pipeline as the web dashboard against a local CSV file, without starting a server.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}
