package cmd

import (
	"errors"
	"fmt"

	"github.com/marcus/dialog/internal/output"
	"github.com/marcus/dialog/internal/store"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [submission-id]",
	Short: "Display a saved submission",
	Long: `Display a submission or draft. IDs may be abbreviated to any unique prefix.
Without an ID the most recently updated submission is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		jsonOutput, _ := cmd.Flags().GetBool("json")

		sub, err := lookupSubmission(st, args)
		if err != nil {
			if jsonOutput {
				output.JSONError(err)
			} else {
				output.Error("%v", err)
			}
			return err
		}

		if jsonOutput {
			return output.JSON(sub)
		}

		md := output.SubmissionMarkdown(sub, nil)
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Print(md)
			return nil
		}

		rendered, err := output.Markdown(md, output.TermWidth())
		if err != nil {
			// Fall back to the plain markdown
			fmt.Print(md)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func lookupSubmission(st *store.Store, args []string) (*store.Submission, error) {
	if len(args) == 1 {
		return st.Submission(args[0])
	}
	subs, err := st.ListSubmissions("")
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, errors.New("no submissions yet")
	}
	return &subs[0], nil
}

func init() {
	rootCmd.AddCommand(showCmd)

	addJSONFlag(showCmd.Flags())
	showCmd.Flags().Bool("raw", false, "Print markdown without rendering")
}
