package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/medtrack/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export medicines as JSON",
		Long:  "Export every medicine, archived ones included, as a JSON array. Pipe the output into import to restore it.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	meds, err := a.store.ExportAll(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}
	if meds == nil {
		meds = []model.Medicine{}
	}

	printJSON(cmd.OutOrStdout(), meds)
}
