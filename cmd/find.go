package cmd

import (
	"fmt"
	"strings"

	"github.com/marcus/dialog/internal/output"
	"github.com/marcus/dialog/internal/search"
	"github.com/spf13/cobra"
)

const snippetWidth = 60

var findCmd = &cobra.Command{
	Use:   "find <text>",
	Short: "Search saved values",
	Long: `Search every saved field value. Values containing the text are listed first,
followed by fuzzy matches ranked by score.`,
	Args: cobra.MinimumNArgs(1),
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

		hits := search.Find(subs, strings.Join(args, " "))

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			type jsonHit struct {
				ID    string `json:"id"`
				Form  string `json:"form"`
				Key   string `json:"key"`
				Value string `json:"value"`
				Exact bool   `json:"exact"`
				Score int    `json:"score"`
			}
			result := make([]jsonHit, len(hits))
			for i, h := range hits {
				result[i] = jsonHit{h.Submission.ID, h.Submission.Form, h.Key, h.Value, h.Exact, h.Score}
			}
			return output.JSON(result)
		}

		if len(hits) == 0 {
			fmt.Println("No matches")
			return nil
		}
		for _, h := range hits {
			fmt.Printf("%s\n    %s: %s\n", output.FormatSubmissionShort(h.Submission), h.Key, search.Snippet(h, snippetWidth))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)

	addFormFlag(findCmd.Flags())
	addJSONFlag(findCmd.Flags())
}
