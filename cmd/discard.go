package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/marcus/dialog/internal/output"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// confirm asks a yes/no question. Tests replace it.
var confirm = func(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Discard").
		Negative("Keep").
		Value(&ok).
		Run()
	return ok, err
}

var discardCmd = &cobra.Command{
	Use:   "discard <form>",
	Short: "Delete the saved draft of a form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		form := args[0]
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				err := errors.New("refusing to discard without --yes when stdin is not a terminal")
				output.Error("%v", err)
				return err
			}
			ok, err := confirm(fmt.Sprintf("Discard the draft of %s?", form))
			if err != nil {
				output.Error("%v", err)
				return err
			}
			if !ok {
				fmt.Println("Kept")
				return nil
			}
		}

		removed, err := st.DiscardDraft(form)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if !removed {
			output.Warning("no draft for %s", form)
			return nil
		}
		fmt.Printf("DISCARDED draft of %s\n", form)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(discardCmd)

	discardCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
}
