package cmd

import (
	"fmt"

	"github.com/marcus/dialog/internal/formdef"
	"github.com/marcus/dialog/internal/output"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <form-file>",
	Short: "Validate a form definition and print its outline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := formdef.Load(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(def)
		}

		depth, _ := cmd.Flags().GetInt("depth")
		fmt.Printf("%s [%s]\n", def.Title, def.Name)
		fmt.Println(output.RenderTree(outline(def), output.TreeRenderOptions{
			MaxDepth: depth,
			ShowKind: true,
			ShowKey:  true,
		}))
		return nil
	},
}

// outline converts a definition into a section/field tree.
func outline(def *formdef.Definition) output.TreeNode {
	root := output.TreeNode{Title: def.Title}
	for _, s := range def.Sections {
		sec := output.TreeNode{Title: s.Header, Kind: "section"}
		for _, f := range s.Fields {
			sec.Children = append(sec.Children, output.TreeNode{Key: f.Key, Title: f.Caption, Kind: f.Type})
		}
		root.Children = append(root.Children, sec)
	}
	return root
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Int("depth", 0, "Limit outline depth (0 = unlimited)")
	addJSONFlag(inspectCmd.Flags())
}
