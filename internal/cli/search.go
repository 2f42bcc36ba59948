package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/medtrack/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search medicines by name or purpose",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().Bool("all", false, "Include archived medicines")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	all, _ := cmd.Flags().GetBool("all")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	a := openApp()
	defer a.Close()

	results, err := a.store.SearchMedicines(cmd.Context(), store.SearchParams{
		Query:           query,
		IncludeArchived: all,
		Limit:           limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	writeMedicines(cmd, viewsOf(results, time.Now()))
}
