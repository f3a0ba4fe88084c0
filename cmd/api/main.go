package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/homeboard/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "homeboard",
		Short: "HomeBoard dashboard server",
		Long:  `HomeBoard is a family dashboard backend serving time, weather, tasks, countdown events, a calendar, and rotating trivia to a wall-mounted display.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewResetCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
