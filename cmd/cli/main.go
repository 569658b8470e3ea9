package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/okosach/bankd/internal/infrastructure/config"
	"github.com/okosach/bankd/internal/infrastructure/postgres"
)

var (
	baseURL   string
	timeout   time.Duration
	authToken string
)

// bcryptGenerate is swapped out in tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "bankd",
		Short: "bankd CLI tool",
		Long:  `A command line interface for operating a bankd deployment.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the bankd API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "Bearer token for authenticated endpoints")

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}
	ledgerCmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check that account balances match the completed transaction log",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	})
	rootCmd.AddCommand(ledgerCmd)

	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}
	accountCmd.AddCommand(&cobra.Command{
		Use:   "get <account-id>",
		Short: "Show a single account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return apiGet("/api/v1/accounts/" + args[0])
		},
	})
	accountCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the token owner's accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return apiGet("/api/v1/accounts")
		},
	})
	accountCmd.AddCommand(&cobra.Command{
		Use:   "transactions <account-id>",
		Short: "Show an account's transaction history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return apiGet("/api/v1/accounts/" + args[0] + "/transactions")
		},
	})
	rootCmd.AddCommand(accountCmd)

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
		},
	})
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath)
		},
	})
	rootCmd.AddCommand(migrateCmd)

	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// hashPasswordCmd hashes a password for seeding users directly in the
// database.
func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\n", resp.StatusCode)
		if message, ok := result["message"].(string); ok {
			fmt.Printf("Message: %s\n", truncate(message, 200))
		}
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	printJSON(result)
}

// apiGet fetches an authenticated API endpoint and pretty-prints the JSON
// response. Non-2xx responses become errors after printing the body.
func apiGet(path string) error {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		return err
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	printJSON(result)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render output: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
