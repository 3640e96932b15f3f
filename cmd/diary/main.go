package main

import (
	"fmt"
	"os"

	"timer_diary/internal/client"

	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "diary",
	Short: "Timer diary client: run countdown sessions and browse your logs",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func newClient() *client.Client {
	return client.New(serverURL)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "http://localhost:8080", "diary server base URL")

	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(datesCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
