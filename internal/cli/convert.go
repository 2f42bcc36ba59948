package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/medtrack/internal/model"
	"github.com/rcliao/medtrack/internal/units"
)

func init() {
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert height or weight between metric and imperial",
	}

	heightCmd := &cobra.Command{
		Use:     "height <value>",
		Short:   "Convert a height",
		Example: "  medtrack convert height 180\n  medtrack convert height --from ftin \"5 ft 11 in\"",
		Args:    cobra.MinimumNArgs(1),
		Run:     runConvertHeight,
	}
	heightCmd.Flags().String("from", model.HeightUnitCm, "Unit of the value: cm or ftin")

	weightCmd := &cobra.Command{
		Use:     "weight <value>",
		Short:   "Convert a weight",
		Example: "  medtrack convert weight 72.5\n  medtrack convert weight --from lb 160",
		Args:    cobra.MinimumNArgs(1),
		Run:     runConvertWeight,
	}
	weightCmd.Flags().String("from", model.WeightUnitKg, "Unit of the value: kg or lb")

	convertCmd.AddCommand(heightCmd, weightCmd)
	RootCmd.AddCommand(convertCmd)
}

type heightConversion struct {
	Cm       float64 `json:"cm"`
	Feet     int     `json:"feet"`
	Inches   float64 `json:"inches"`
	Metric   string  `json:"metric"`
	Imperial string  `json:"imperial"`
}

type weightConversion struct {
	Kg       float64 `json:"kg"`
	Lb       float64 `json:"lb"`
	Metric   string  `json:"metric"`
	Imperial string  `json:"imperial"`
}

func runConvertHeight(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")

	cm := units.ParseHeight(strings.Join(args, " "), from)
	feet, inches := units.CmToFeetInches(cm)
	res := heightConversion{
		Cm:       cm,
		Feet:     feet,
		Inches:   inches,
		Metric:   units.FormatHeight(cm, model.HeightUnitCm),
		Imperial: units.FormatHeight(cm, model.HeightUnitFtIn),
	}

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", res.Metric, res.Imperial)
		return
	}
	printJSON(cmd.OutOrStdout(), res)
}

func runConvertWeight(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")

	kg := units.ParseWeight(strings.Join(args, " "), from)
	res := weightConversion{
		Kg:       kg,
		Lb:       units.KgToLb(kg),
		Metric:   units.FormatWeight(kg, model.WeightUnitKg),
		Imperial: units.FormatWeight(kg, model.WeightUnitLb),
	}

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", res.Metric, res.Imperial)
		return
	}
	printJSON(cmd.OutOrStdout(), res)
}
