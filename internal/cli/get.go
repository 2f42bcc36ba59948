package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a medicine",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	cmd.Flags().Bool("image", false, "Include the photo (base64) in JSON output")

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	withImage, _ := cmd.Flags().GetBool("image")

	a := openApp()
	defer a.Close()

	m, err := a.store.GetMedicine(cmd.Context(), args[0])
	if err != nil {
		exitErr("get", err)
	}

	v := viewOf(*m, time.Now(), withImage)
	if textOutput() {
		writeMedicineDetail(cmd.OutOrStdout(), v)
		return
	}
	printJSON(cmd.OutOrStdout(), v)
}
