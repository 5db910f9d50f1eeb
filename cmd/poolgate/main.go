package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"poolgate/internal/cli"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// loadRuntime loads the configuration and installs the logger
func loadRuntime() (*cli.Runtime, error) {
	config, err := cli.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cli.SetupLogging(config.Logging, os.Stderr)
	return cli.NewRuntime(config), nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "poolgate",
		Short: "Poolgate - safe links to Raydium pool creation",
		Long: `Poolgate validates Solana token mint addresses and builds Raydium
liquidity pool creation links that can only point at Raydium.

Every link is checked against a fixed list of trusted hosts and opened
only after you confirm it.

Quick Start:
  poolgate validate <mint>   # Check a token mint address
  poolgate url <mint>        # Print the pool creation link
  poolgate open <mint>       # Confirm and open the pool creation page
  poolgate form              # Interactive pool creation form`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Validate command
	validateCmd := &cobra.Command{
		Use:   "validate <mint>",
		Short: "Validate a token mint address",
		Long: `Check that a token mint address is a well-formed Solana address.

The strictness is taken from the config:
  structural   - length and base58 alphabet checks (default)
  checksummed  - also decodes the address to a 32-byte public key`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRuntime()
			if err != nil {
				return err
			}
			return r.Validate(args[0])
		},
	}

	// URL command
	urlCmd := &cobra.Command{
		Use:   "url <mint>",
		Short: "Print the pool creation link",
		Long:  `Build the Raydium pool creation link for a token mint without opening it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, _ := cmd.Flags().GetString("network")
			r, err := loadRuntime()
			if err != nil {
				return err
			}
			return r.URL(args[0], network)
		},
	}
	urlCmd.Flags().StringP("network", "n", "", "Cluster to build the link for (mainnet or devnet)")

	// Open command
	openCmd := &cobra.Command{
		Use:   "open <mint>",
		Short: "Open the pool creation page",
		Long: `Build the Raydium pool creation link for a token mint and open it in
your browser after confirmation.

The confirmation prompt always shows the exact destination. Without a
terminal the prompt declines and nothing is opened.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, _ := cmd.Flags().GetString("network")
			r, err := loadRuntime()
			if err != nil {
				return err
			}
			return r.Open(args[0], network)
		},
	}
	openCmd.Flags().StringP("network", "n", "", "Cluster to build the link for (mainnet or devnet)")

	// Visit command
	visitCmd := &cobra.Command{
		Use:   "visit",
		Short: "Open the Raydium website",
		Long:  `Open the official Raydium website in your browser after confirmation.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRuntime()
			if err != nil {
				return err
			}
			return r.Visit()
		},
	}

	// Form command
	formCmd := &cobra.Command{
		Use:   "form",
		Short: "Interactive pool creation form",
		Long: `Fill in the token mint and initial liquidity amounts with live
validation, then open the pool creation page after confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			network, _ := cmd.Flags().GetString("network")
			r, err := loadRuntime()
			if err != nil {
				return err
			}
			return r.RunForm(network)
		},
	}
	formCmd.Flags().StringP("network", "n", "", "Cluster to build the link for (mainnet or devnet)")

	// Hosts command
	hostsCmd := &cobra.Command{
		Use:   "hosts",
		Short: "List trusted hosts",
		Long:  `Display the hosts outbound links may point at and the pool creation page for each cluster.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRuntime()
			if err != nil {
				return err
			}
			return r.Hosts()
		},
	}

	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP API",
		Long: `Serve address validation, link building and link checks over HTTP.

Endpoints:
  GET  /health
  POST /v1/address/validate
  POST /v1/pool-url
  POST /v1/links/check
  GET  /v1/hosts

The API never opens links itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bind, _ := cmd.Flags().GetString("bind")
			port, _ := cmd.Flags().GetInt("port")
			r, err := loadRuntime()
			if err != nil {
				return err
			}
			return r.Serve(cmd.Context(), bind, port)
		},
	}
	serveCmd.Flags().String("bind", "", "Address to bind (default from config)")
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config)")

	// Config command
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage Poolgate configuration",
		Long: `View and modify Poolgate configuration settings.

Examples:
  poolgate config get                 Show all config
  poolgate config get api             Show api config
  poolgate config set network mainnet
  poolgate config set strictness checksummed

Available keys:
  network         - Default cluster (mainnet/devnet)
  strictness      - Address checks (structural/checksummed)
  api.bind        - API bind address
  api.port        - API port
  logging.level   - Log level (debug/info/warn/error)
  logging.format  - Log format (text/json)`,
	}

	configGetCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get configuration value",
		Long: `Get a configuration value using dot notation.

If no key is provided, displays all configuration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) > 0 {
				key = args[0]
			}
			return cli.ConfigGet(key)
		},
	}

	configSetCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set configuration value",
		Long:  `Set a configuration value using dot notation.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ConfigSet(args[0], args[1])
		},
	}

	configCmd.AddCommand(configGetCmd, configSetCmd)

	// Add all commands
	rootCmd.AddCommand(
		validateCmd,
		urlCmd,
		openCmd,
		visitCmd,
		formCmd,
		hostsCmd,
		serveCmd,
		configCmd,
	)

	// Execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
