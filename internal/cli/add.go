package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/medtrack/internal/expiry"
	"github.com/rcliao/medtrack/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a medicine",
		Long:  "Add a medicine to the cabinet. A reminder is queued seven days before the expiry date.",
		Run:   runAdd,
	}

	cmd.Flags().StringP("name", "n", "", "Medicine name (or positional arg)")
	cmd.Flags().StringP("purpose", "p", "", "What it is for (required)")
	cmd.Flags().String("dosage", "", "Dosage, e.g. 500mg")
	cmd.Flags().StringP("expiry", "e", "", "Expiry date, YYYY-MM-DD")
	cmd.Flags().String("image", "", "Path to a photo of the package")

	cmd.MarkFlagRequired("purpose")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")
	purpose, _ := cmd.Flags().GetString("purpose")
	dosage, _ := cmd.Flags().GetString("dosage")
	expiryStr, _ := cmd.Flags().GetString("expiry")
	imagePath, _ := cmd.Flags().GetString("image")

	if name == "" && len(args) > 0 {
		name = strings.Join(args, " ")
	}
	if strings.TrimSpace(name) == "" {
		exitErr("add", fmt.Errorf("name is required (positional arg or --name)"))
	}

	expiryDate := parseExpiryFlag(expiryStr)
	image := readImage(imagePath)

	a := openApp()
	defer a.Close()

	m, err := a.store.AddMedicine(cmd.Context(), store.AddParams{
		Name:       name,
		Purpose:    purpose,
		Dosage:     dosage,
		ExpiryDate: expiryDate,
		Image:      image,
	})
	if err != nil {
		exitErr("add", err)
	}

	a.afterSave(cmd, *m)
}

// parseExpiryFlag parses a YYYY-MM-DD flag value; empty means no expiry.
func parseExpiryFlag(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t, err := expiry.ParseDate(s, time.Local)
	if err != nil {
		exitErr("expiry", err)
	}
	return &t
}

func readImage(path string) []byte {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		exitErr("read image", err)
	}
	return b
}
