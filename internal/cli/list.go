package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/medtrack/internal/expiry"
	"github.com/rcliao/medtrack/internal/model"
	"github.com/rcliao/medtrack/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List medicines, soonest expiry first",
		Run:   runList,
	}

	cmd.Flags().StringP("state", "s", "", "Filter by state: fresh, expiring_soon, expired")
	cmd.Flags().BoolP("archived", "a", false, "List archived medicines instead")
	cmd.Flags().Bool("all", false, "Include archived medicines")
	cmd.Flags().IntP("limit", "l", 100, "Max results")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	state, _ := cmd.Flags().GetString("state")
	archived, _ := cmd.Flags().GetBool("archived")
	all, _ := cmd.Flags().GetBool("all")
	limit, _ := cmd.Flags().GetInt("limit")

	if state != "" && !expiry.State(state).Valid() {
		exitErr("list", fmt.Errorf("unknown state %q", state))
	}

	a := openApp()
	defer a.Close()

	meds, err := a.store.ListMedicines(cmd.Context(), store.ListParams{
		IncludeArchived: all,
		ArchivedOnly:    archived,
		Limit:           limit,
	})
	if err != nil {
		exitErr("list", err)
	}

	writeMedicines(cmd, filterState(meds, expiry.State(state), time.Now()))
}

func filterState(meds []model.Medicine, state expiry.State, now time.Time) []medicineView {
	views := viewsOf(meds, now)
	if state == "" {
		return views
	}
	out := views[:0]
	for _, v := range views {
		if v.State == state {
			out = append(out, v)
		}
	}
	return out
}

func writeMedicines(cmd *cobra.Command, views []medicineView) {
	out := cmd.OutOrStdout()
	if textOutput() {
		if len(views) == 0 {
			fmt.Fprintln(out, "no medicines")
			return
		}
		for _, v := range views {
			writeMedicineLine(out, v)
		}
		return
	}
	printJSON(out, views)
}
