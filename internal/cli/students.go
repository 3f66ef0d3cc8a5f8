package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newStudentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Teacher dashboard commands",
	}

	cmd.AddCommand(newStudentsListCmd())
	cmd.AddCommand(newStudentsStatsCmd())
	cmd.AddCommand(newStudentsResetAllCmd())

	return cmd
}

func newStudentsListCmd() *cobra.Command {
	var classroom string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the students of a classroom",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/students"
			if classroom != "" {
				path += "?classroom=" + url.QueryEscape(classroom)
			}

			var result StudentList
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&classroom, "classroom", "", "Classroom to list (default: all)")

	return cmd
}

func newStudentsStatsCmd() *cobra.Command {
	var classroom string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count the students of a classroom and who connected today",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/students/stats"
			if classroom != "" {
				path += "?classroom=" + url.QueryEscape(classroom)
			}

			var result ClassStats
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&classroom, "classroom", "", "Classroom to summarise (default: all)")

	return cmd
}

func newStudentsResetAllCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset-all",
		Short: "Clear the progress of every student",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errConfirmRequired
			}

			var result ResetAllResult
			if err := client.Post("/api/v1/students/reset", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm resetting every student")

	return cmd
}
