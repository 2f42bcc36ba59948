package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a medicine",
		Long:  "Archive a medicine you no longer keep. Its pending reminder is cancelled. Use --undo to restore it.",
		Args:  cobra.ExactArgs(1),
		Run:   runArchive,
	}

	cmd.Flags().Bool("undo", false, "Unarchive and reschedule the reminder")

	RootCmd.AddCommand(cmd)
}

func runArchive(cmd *cobra.Command, args []string) {
	undo, _ := cmd.Flags().GetBool("undo")

	a := openApp()
	defer a.Close()

	m, err := a.store.SetArchived(cmd.Context(), args[0], !undo)
	if err != nil {
		exitErr("archive", err)
	}

	a.afterSave(cmd, *m)
}
