package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rcliao/medtrack/internal/expiry"
	"github.com/rcliao/medtrack/internal/model"
	"github.com/rcliao/medtrack/internal/reminder"
)

// medicineView is a medicine plus the values derived from it at display time.
type medicineView struct {
	model.Medicine
	State    expiry.State `json:"state"`
	DaysLeft *int         `json:"days_left,omitempty"`
	HasImage bool         `json:"has_image"`
}

func viewOf(m model.Medicine, now time.Time, withImage bool) medicineView {
	v := medicineView{
		Medicine: m,
		State:    expiry.Classify(now, m.ExpiryDate),
		HasImage: len(m.Image) > 0,
	}
	if m.ExpiryDate != nil {
		d := expiry.DaysLeft(now, *m.ExpiryDate)
		v.DaysLeft = &d
	}
	if !withImage {
		v.Image = nil
	}
	return v
}

func viewsOf(meds []model.Medicine, now time.Time) []medicineView {
	views := make([]medicineView, 0, len(meds))
	for _, m := range meds {
		views = append(views, viewOf(m, now, false))
	}
	return views
}

func expiryText(v medicineView) string {
	if v.ExpiryDate == nil {
		return "no expiry"
	}
	date := v.ExpiryDate.Format(expiry.DateLayout)
	switch {
	case *v.DaysLeft == 0:
		return date + " (today)"
	case *v.DaysLeft == 1:
		return date + " (tomorrow)"
	default:
		return fmt.Sprintf("%s (%s)", date, humanize.Time(*v.ExpiryDate))
	}
}

func writeMedicineLine(w io.Writer, v medicineView) {
	name := v.Name
	if v.Dosage != "" {
		name += " " + v.Dosage
	}
	flag := ""
	if v.Archived {
		flag = " [archived]"
	}
	fmt.Fprintf(w, "%-14s %-28s %-18s %s%s  %s\n", v.State, name, v.Purpose, expiryText(v), flag, v.ID)
}

func writeMedicineDetail(w io.Writer, v medicineView) {
	fmt.Fprintf(w, "ID:       %s\n", v.ID)
	fmt.Fprintf(w, "Name:     %s\n", v.Name)
	fmt.Fprintf(w, "Purpose:  %s\n", v.Purpose)
	if v.Dosage != "" {
		fmt.Fprintf(w, "Dosage:   %s\n", v.Dosage)
	}
	fmt.Fprintf(w, "Expiry:   %s\n", expiryText(v))
	fmt.Fprintf(w, "State:    %s\n", v.State)
	fmt.Fprintf(w, "Added:    %s (%s)\n", v.AddedDate.Local().Format("2006-01-02 15:04"), humanize.Time(v.AddedDate))
	if v.HasImage {
		fmt.Fprintf(w, "Image:    %s\n", humanize.Bytes(uint64(len(v.Medicine.Image))))
	}
	if v.Archived {
		fmt.Fprintln(w, "Archived: yes")
	}
}

// savedOutput is printed after a medicine is written.
type savedOutput struct {
	Medicine medicineView     `json:"medicine"`
	Reminder *reminder.Result `json:"reminder,omitempty"`
}

// afterSave runs the reminder coordinator for a medicine that was just
// written and prints the result. Scheduling problems are warnings; the save
// already happened.
func (a *app) afterSave(cmd *cobra.Command, m model.Medicine) {
	res, err := a.coordinator.OnMedicineSaved(cmd.Context(), m)
	if err != nil {
		warn("reminder", err)
	}

	out := cmd.OutOrStdout()
	v := viewOf(m, time.Now(), false)
	if textOutput() {
		writeMedicineDetail(out, v)
		fmt.Fprintf(out, "Reminder: %s\n", reminderText(res))
		return
	}
	printJSON(out, savedOutput{Medicine: v, Reminder: &res})
}

func reminderText(res reminder.Result) string {
	switch res.Outcome {
	case reminder.Scheduled:
		return "scheduled for " + res.FireAt.Format(expiry.DateLayout)
	case "":
		return "not scheduled"
	default:
		return strings.ReplaceAll(string(res.Outcome), "_", " ")
	}
}
