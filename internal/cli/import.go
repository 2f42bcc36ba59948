package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/medtrack/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import medicines from JSON",
		Long:  "Import medicines from JSON (file or stdin). Expects the format produced by export. Reminders are scheduled for the imported medicines.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var data []byte
	var err error
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read input", err)
	}

	var meds []model.Medicine
	if err := json.Unmarshal(data, &meds); err != nil {
		exitErr("parse json", err)
	}

	a := openApp()
	defer a.Close()

	imported, importErr := a.store.Import(cmd.Context(), meds)
	// Records stored before a failure still get their reminders.
	if _, err := a.coordinator.Resync(cmd.Context(), imported); err != nil {
		warn("reminders", err)
	}
	if importErr != nil {
		exitErr(fmt.Sprintf("import (stored %d of %d)", len(imported), len(meds)), importErr)
	}

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d medicines\n", len(imported))
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"imported":%d}`+"\n", len(imported))
}
