package cli

import (
	"fmt"

	"github.com/mvp-joe/jsxtract/internal/extract"
	"github.com/spf13/cobra"
)

var nameCmd = &cobra.Command{
	Use:   "name DEST",
	Short: "Print the component name derived from a destination path",
	Long: `Name prints the component name jsxtract would give a unit extracted into
DEST: the basename without extension, split on "-", each part capitalized.

Example:
  jsxtract name src/user-profile-card.tsx   # UserProfileCard`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := extract.DeriveName(args[0])
		if err := extract.ValidateName(name); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nameCmd)
}
