package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rcliao/medtrack/internal/expiry"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cabinet statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	stats, err := a.store.Stats(cmd.Context(), a.cfg.DB, time.Now())
	if err != nil {
		exitErr("stats", err)
	}

	if !textOutput() {
		printJSON(cmd.OutOrStdout(), stats)
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database:      %s (%s)\n", stats.DBPath, humanize.Bytes(uint64(stats.DBSizeBytes)))
	fmt.Fprintf(out, "Medicines:     %d (%d active, %d archived)\n", stats.TotalMedicines, stats.ActiveMedicines, stats.ArchivedMedicine)
	for _, st := range []expiry.State{expiry.Fresh, expiry.ExpiringSoon, expiry.Expired} {
		fmt.Fprintf(out, "  %-13s %d\n", st+":", stats.States[st])
	}
	fmt.Fprintf(out, "Reminders:     %d pending\n", stats.PendingReminders)
}
