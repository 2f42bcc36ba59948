package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/medtrack/internal/expiry"
	"github.com/rcliao/medtrack/internal/model"
	"github.com/rcliao/medtrack/internal/units"
)

func init() {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Personal health profile",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the profile in its display units",
		Run:   runProfileShow,
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Long: `Update profile fields. Only the flags given are changed.

Height and weight are read in the profile's display unit, after any
--height-unit/--weight-unit change in the same call:

  medtrack profile set --height-unit ftin --height "5 ft 11 in"
  medtrack profile set --weight-unit lb --weight 160`,
		Run: runProfileSet,
	}
	addProfileFlags(setCmd)

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase the profile",
		Run:   runProfileClear,
	}

	profileCmd.AddCommand(showCmd, setCmd, clearCmd)
	RootCmd.AddCommand(profileCmd)
}

func addProfileFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("name", "", "Name")
	f.String("dob", "", "Date of birth, YYYY-MM-DD")
	f.String("gender", "", "male, female or other")
	f.String("email", "", "Email address")
	f.String("blood-type", "", "A+, A-, B+, B-, AB+, AB-, O+ or O-")
	f.String("height", "", "Height in the display unit")
	f.String("height-unit", "", "Height display unit: cm or ftin")
	f.String("weight", "", "Weight in the display unit")
	f.String("weight-unit", "", "Weight display unit: kg or lb")
	f.String("allergies", "", "Allergies (free text)")
	f.String("conditions", "", "Medical conditions (free text)")
	f.String("photo", "", "Path to a profile photo")
}

// profileView adds display strings derived from the canonical values.
type profileView struct {
	model.Profile
	Age    int    `json:"age,omitempty"`
	Height string `json:"height"`
	Weight string `json:"weight"`
}

func viewOfProfile(p model.Profile, now time.Time) profileView {
	return profileView{
		Profile: p,
		Age:     p.Age(now),
		Height:  units.FormatHeight(p.HeightCm, p.HeightUnit),
		Weight:  units.FormatWeight(p.WeightKg, p.WeightUnit),
	}
}

func runProfileShow(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	p, err := a.store.GetProfile(cmd.Context())
	if err != nil {
		exitErr("profile", err)
	}
	writeProfile(cmd.OutOrStdout(), viewOfProfile(*p, time.Now()))
}

// applyProfileFlags copies the changed flags onto p. Height and weight text
// is converted to canonical units using p's display unit after any unit
// change has been applied.
func applyProfileFlags(cmd *cobra.Command, p *model.Profile) error {
	flags := cmd.Flags()
	str := func(name string) (string, bool) {
		if !flags.Changed(name) {
			return "", false
		}
		v, _ := flags.GetString(name)
		return v, true
	}

	if v, ok := str("name"); ok {
		p.Name = v
	}
	if v, ok := str("dob"); ok {
		if v == "" {
			p.DateOfBirth = nil
		} else {
			dob, err := expiry.ParseDate(v, time.Local)
			if err != nil {
				return fmt.Errorf("date of birth: %w", err)
			}
			p.DateOfBirth = &dob
		}
	}
	if v, ok := str("gender"); ok {
		p.Gender = v
	}
	if v, ok := str("email"); ok {
		p.Email = v
	}
	if v, ok := str("blood-type"); ok {
		p.BloodType = v
	}
	if v, ok := str("height-unit"); ok {
		p.HeightUnit = units.ParseHeightUnit(v)
	}
	if v, ok := str("height"); ok {
		p.HeightCm = units.ParseHeight(v, p.HeightUnit)
	}
	if v, ok := str("weight-unit"); ok {
		p.WeightUnit = units.ParseWeightUnit(v)
	}
	if v, ok := str("weight"); ok {
		p.WeightKg = units.ParseWeight(v, p.WeightUnit)
	}
	if v, ok := str("allergies"); ok {
		p.Allergies = v
	}
	if v, ok := str("conditions"); ok {
		p.Conditions = v
	}
	if v, ok := str("photo"); ok {
		p.Photo = readImage(v)
	}
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	p, err := a.store.GetProfile(cmd.Context())
	if err != nil {
		exitErr("profile", err)
	}
	if err := applyProfileFlags(cmd, p); err != nil {
		exitErr("profile set", err)
	}

	saved, err := a.store.SaveProfile(cmd.Context(), *p)
	if err != nil {
		exitErr("profile set", err)
	}
	writeProfile(cmd.OutOrStdout(), viewOfProfile(*saved, time.Now()))
}

func runProfileClear(cmd *cobra.Command, args []string) {
	a := openApp()
	defer a.Close()

	if err := a.store.ClearProfile(cmd.Context()); err != nil {
		exitErr("profile clear", err)
	}
	if textOutput() {
		fmt.Fprintln(cmd.OutOrStdout(), "profile cleared")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), `{"ok":true}`)
}

func writeProfile(w io.Writer, v profileView) {
	if !textOutput() {
		v.Photo = nil
		printJSON(w, v)
		return
	}
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-11s %s\n", label+":", value)
		}
	}
	line("Name", v.Name)
	if v.DateOfBirth != nil {
		line("Born", fmt.Sprintf("%s (age %d)", v.DateOfBirth.Format(expiry.DateLayout), v.Age))
	}
	line("Gender", v.Gender)
	line("Email", v.Email)
	line("Blood type", v.BloodType)
	line("Height", v.Height)
	line("Weight", v.Weight)
	line("Allergies", v.Allergies)
	line("Conditions", v.Conditions)
}
