// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mutreserve",
	Short: "MUT Reserve is the backend for the room-booking dashboard",
	Long: `MUT Reserve is the backend service for the meeting-room booking
dashboard. It serves the JSON API for employees, rooms, reservations
and role-based access menus.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
