package cmd

import (
	"fmt"

	"github.com/marcus/dialog/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List submissions and drafts, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		form, _ := cmd.Flags().GetString("form")
		subs, err := st.ListSubmissions(form)
		if err != nil {
			output.Error("failed to list submissions: %v", err)
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(subs)
		}

		if len(subs) == 0 {
			fmt.Println("No submissions")
			return nil
		}
		for i := range subs {
			fmt.Println(output.FormatSubmissionShort(&subs[i]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	addFormFlag(listCmd.Flags())
	addJSONFlag(listCmd.Flags())
}
