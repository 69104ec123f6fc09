package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cchalm/geminichat/internal/roles"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the preset system roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		return printRoles(cmd, verbose)
	},
}

func init() {
	rolesCmd.Flags().BoolP("verbose", "v", false, "Print the full text of each role")
	rootCmd.AddCommand(rolesCmd)
}

func printRoles(cmd *cobra.Command, verbose bool) error {
	out := cmd.OutOrStdout()
	if verbose {
		for _, r := range roles.All() {
			fmt.Fprintf(out, "%s (%s)\n%s\n\n", r.Name, r.Label, r.Text)
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range roles.All() {
		fmt.Fprintf(w, "%s\t%s\n", r.Name, r.Label)
	}
	return w.Flush()
}
