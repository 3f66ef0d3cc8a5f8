package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

var (
	errNotLoggedIn     = errors.New("no player selected: run 'classquiz login' or pass --player")
	errConfirmRequired = errors.New("refusing to reset every student without --yes")
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "classquiz",
		Short: "CLI tool for the classquiz API",
		Long: `classquiz is a CLI tool for the classroom quiz JSON API.

Students log in with their name and classroom, then record validated
questions and levels. The students commands give the teacher's view:
listing a classroom and resetting progress.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load the remembered player if not provided via flag/env
			if err := cfg.LoadPlayerID(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CLASSQUIZ_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayerID, "player", cfg.PlayerID, "Player id (env: CLASSQUIZ_PLAYER)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayerFile, "player-file", cfg.PlayerFile, "Player id file path (env: CLASSQUIZ_PLAYER_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newProgressCmd())
	rootCmd.AddCommand(newStudentsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// requirePlayer returns the selected player id
func requirePlayer() (string, error) {
	if cfg.PlayerID == "" {
		return "", errNotLoggedIn
	}
	return cfg.PlayerID, nil
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
