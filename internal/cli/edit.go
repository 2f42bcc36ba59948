package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/medtrack/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a medicine",
		Long:  "Edit a medicine. Only the flags given are changed. The expiry reminder is rescheduled.",
		Args:  cobra.ExactArgs(1),
		Run:   runEdit,
	}

	cmd.Flags().StringP("name", "n", "", "New name")
	cmd.Flags().StringP("purpose", "p", "", "New purpose")
	cmd.Flags().String("dosage", "", "New dosage (empty string clears it)")
	cmd.Flags().StringP("expiry", "e", "", "New expiry date, YYYY-MM-DD")
	cmd.Flags().Bool("clear-expiry", false, "Remove the expiry date")
	cmd.Flags().String("image", "", "Path to a new photo")

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	p := store.UpdateParams{ID: args[0]}
	flags := cmd.Flags()

	if flags.Changed("name") {
		v, _ := flags.GetString("name")
		p.Name = &v
	}
	if flags.Changed("purpose") {
		v, _ := flags.GetString("purpose")
		p.Purpose = &v
	}
	if flags.Changed("dosage") {
		v, _ := flags.GetString("dosage")
		p.Dosage = &v
	}
	p.ClearExpiry, _ = flags.GetBool("clear-expiry")
	if flags.Changed("expiry") {
		if p.ClearExpiry {
			exitErr("edit", fmt.Errorf("--expiry and --clear-expiry are mutually exclusive"))
		}
		v, _ := flags.GetString("expiry")
		p.ExpiryDate = parseExpiryFlag(v)
	}
	if flags.Changed("image") {
		v, _ := flags.GetString("image")
		p.Image = readImage(v)
	}

	a := openApp()
	defer a.Close()

	m, err := a.store.UpdateMedicine(cmd.Context(), p)
	if err != nil {
		exitErr("edit", err)
	}

	a.afterSave(cmd, *m)
}
