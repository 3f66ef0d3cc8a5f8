package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const codeStudentNotFound = "STUDENT_NOT_FOUND"

func newLoginCmd() *cobra.Command {
	var first, last, classroom string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a student of a classroom",
		Long: `Log in with a first name, last name and classroom.

Spelling is forgiving: accents, hyphens and letter case are ignored, and
classroom labels such as "2de" and "2D" are equivalent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"first_name": first,
				"last_name":  last,
				"classroom":  classroom,
			}
			var result Player

			if err := client.Post("/api/v1/students/login", req, &result); err != nil {
				if IsCode(err, codeStudentNotFound) {
					return fmt.Errorf("%w: check the spelling and ask your teacher if you are enrolled in %s", err, classroom)
				}
				return err
			}

			// Remember the player for progress commands
			if err := cfg.SavePlayerID(result.ID); err != nil {
				return fmt.Errorf("failed to save player id: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&first, "first", "", "First name (required)")
	cmd.Flags().StringVar(&last, "last", "", "Last name (required)")
	cmd.Flags().StringVar(&classroom, "classroom", "", "Classroom, e.g. 2de or 6e (required)")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")
	_ = cmd.MarkFlagRequired("classroom")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the logged-in student",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ClearPlayerID(); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}
