package cli

import (
	"github.com/spf13/cobra"
)

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Progress commands for the logged-in student",
	}

	cmd.AddCommand(newProgressShowCmd())
	cmd.AddCommand(newProgressAddCmd())
	cmd.AddCommand(newProgressResetCmd())
	cmd.AddCommand(newProgressResetChapterCmd())

	return cmd
}

func newProgressShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show validated levels and questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayer()
			if err != nil {
				return err
			}

			var result Progress
			if err := client.Get(StudentPath(id, "progress"), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newProgressAddCmd() *cobra.Command {
	var kind, value string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Mark a question or level as validated",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayer()
			if err != nil {
				return err
			}

			req := map[string]string{"kind": kind, "value": value}
			var result ProgressUpdate

			if err := client.Post(StudentPath(id, "progress"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "question", "What was validated: question or level")
	cmd.Flags().StringVar(&value, "value", "", "Question or level id (required)")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newProgressResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear all progress of the student",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayer()
			if err != nil {
				return err
			}

			var result Player
			if err := client.Post(StudentPath(id, "reset"), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newProgressResetChapterCmd() *cobra.Command {
	var levels []string

	cmd := &cobra.Command{
		Use:   "reset-chapter",
		Short: "Clear some levels and their questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requirePlayer()
			if err != nil {
				return err
			}

			req := map[string][]string{"level_ids": levels}
			var result Player

			if err := client.Post(StudentPath(id, "reset-chapter"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&levels, "level", nil, "Level id to reset (repeatable, required)")
	_ = cmd.MarkFlagRequired("level")

	return cmd
}
