package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var postLeaderboard bool

func init() {
	leaderboardCmd.Flags().BoolVar(&postLeaderboard, "post", false, "Post the leaderboard to Slack")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(reservationsCmd)
	rootCmd.AddCommand(reservationCmd)
	rootCmd.AddCommand(pitchesCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(waitlistCmd)
	rootCmd.AddCommand(syncCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var reservationsCmd = &cobra.Command{
	Use:   "reservations",
	Short: "List all reservations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/reservations")
	},
}

var reservationCmd = &cobra.Command{
	Use:   "reservation <id>",
	Short: "Show a single reservation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/reservations/" + url.PathEscape(args[0]))
	},
}

var pitchesCmd = &cobra.Command{
	Use:   "pitches",
	Short: "List the pitch catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/pitches")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the player leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if postLeaderboard {
			return performGetRequest("/leaderboard?post=true")
		}
		return performGetRequest("/leaderboard")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <userID>",
	Short: "Show the stats of a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/users/" + url.PathEscape(args[0]) + "/stats")
	},
}

var waitlistCmd = &cobra.Command{
	Use:   "waitlist <userID>",
	Short: "Show the reservations a player is waiting for",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/users/" + url.PathEscape(args[0]) + "/waitlist")
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull reservations and pitches from the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/sync")
	},
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint)
}

func performRequest(method, endpoint string) error {
	target := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, target)

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
