package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a medicine and its reminder",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	id := args[0]

	a := openApp()
	defer a.Close()

	m, err := a.store.GetMedicine(cmd.Context(), id)
	if err != nil {
		exitErr("rm", err)
	}
	if err := a.store.DeleteMedicine(cmd.Context(), id); err != nil {
		exitErr("rm", err)
	}
	a.coordinator.OnMedicineDeleted(cmd.Context(), *m)

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (%s)\n", m.Name, id)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", id)
}
