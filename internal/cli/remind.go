package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rcliao/medtrack/internal/model"
	"github.com/rcliao/medtrack/internal/notify"
)

func init() {
	remindCmd := &cobra.Command{
		Use:   "remind",
		Short: "Expiry reminders",
	}

	pendingCmd := &cobra.Command{
		Use:   "pending",
		Short: "List reminders waiting to fire",
		Run:   runRemindPending,
	}

	dueCmd := &cobra.Command{
		Use:   "due",
		Short: "Fire reminders that have come due",
		Long:  "Fire every pending reminder whose time has passed. Run it from cron or launchd to get notified.",
		Run:   runRemindDue,
	}

	resyncCmd := &cobra.Command{
		Use:   "resync",
		Short: "Rebuild reminders for every medicine",
		Run:   runRemindResync,
	}

	remindCmd.AddCommand(pendingCmd, dueCmd, resyncCmd)
	RootCmd.AddCommand(remindCmd)
}

func runRemindPending(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	pending, err := a.store.PendingReminders(cmd.Context())
	if err != nil {
		exitErr("pending reminders", err)
	}
	writeReminders(cmd, pending)
}

func runRemindDue(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	var sink notify.Sink
	if textOutput() {
		sink = notify.WriterSink{W: cmd.OutOrStdout()}
	}
	delivered, err := notify.NewDispatcher(a.store, sink, a.logger).Dispatch(cmd.Context(), time.Now())
	if err != nil {
		warn("remind due", err)
	}
	if !textOutput() {
		if delivered == nil {
			delivered = []model.Reminder{}
		}
		printJSON(cmd.OutOrStdout(), delivered)
	}
}

func runRemindResync(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	meds, err := a.store.ExportAll(cmd.Context())
	if err != nil {
		exitErr("resync", err)
	}
	results, err := a.coordinator.Resync(cmd.Context(), meds)
	if err != nil {
		warn("resync", err)
	}

	if textOutput() {
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-14s %s\n", r.MedicineID, r.State, reminderText(r))
		}
		return
	}
	printJSON(cmd.OutOrStdout(), results)
}

func writeReminders(cmd *cobra.Command, reminders []model.Reminder) {
	out := cmd.OutOrStdout()
	if !textOutput() {
		if reminders == nil {
			reminders = []model.Reminder{}
		}
		printJSON(out, reminders)
		return
	}
	if len(reminders) == 0 {
		fmt.Fprintln(out, "no pending reminders")
		return
	}
	for _, r := range reminders {
		fmt.Fprintf(out, "%s (%s)  %s  %s\n",
			r.FireAt.Local().Format("2006-01-02"), humanize.Time(r.FireAt), r.Body, r.MedicineID)
	}
}
