package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var healthServerURL string

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of a running templatesd daemon",
	Long: `Check the health status of a running templatesd web daemon.

Examples:
  # Check the default local daemon
  templatesd health

  # Check a different server
  templatesd health --server http://localhost:9000`,
	RunE: runHealth,
}

func init() {
	healthCmd.Flags().StringVar(&healthServerURL, "server", "http://localhost:8000", "templatesd server URL")
}

func runHealth(cmd *cobra.Command, args []string) error {
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(healthServerURL + "/health")
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server unhealthy: status %d: %s", resp.StatusCode, body)
	}

	var health struct {
		Status string `json:"status"`
		Server string `json:"server"`
	}
	if err := json.Unmarshal(body, &health); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	fmt.Printf("Server:  %s\n", health.Server)
	fmt.Printf("Status:  %s\n", health.Status)
	return nil
}
