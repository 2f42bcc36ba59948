// Package units converts profile height and weight between metric and
// imperial units.
//
// Heights are stored in centimeters and weights in kilograms. Every display
// value is derived from the stored value, and every edit is converted back to
// it, so switching units back and forth never compounds rounding error.
// None of the functions fail: malformed numbers are read as 0.
package units

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rcliao/medtrack/internal/model"
)

const (
	CmPerInch = 2.54
	CmPerFoot = 30.48
	// LbPerKg is used in both directions so the weight conversion is an
	// exact inverse up to floating point error.
	LbPerKg = 2.20462
)

// CmToFeetInches splits a height in centimeters into whole feet and the
// remaining inches.
func CmToFeetInches(cm float64) (feet int, inches float64) {
	totalInches := cm / CmPerInch
	feet = int(math.Floor(totalInches / 12))
	inches = totalInches - float64(feet)*12
	return feet, inches
}

// FeetInchesToCm converts feet and inches to centimeters.
func FeetInchesToCm(feet int, inches float64) float64 {
	return float64(feet)*CmPerFoot + inches*CmPerInch
}

// KgToLb converts kilograms to pounds.
func KgToLb(kg float64) float64 {
	return kg * LbPerKg
}

// LbToKg converts pounds to kilograms.
func LbToKg(lb float64) float64 {
	return lb / LbPerKg
}

// ParseNumber reads a decimal number, returning 0 for anything it cannot
// parse or that is not finite.
func ParseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseHeightUnit normalizes a height unit name. Unknown names fall back to cm.
func ParseHeightUnit(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ftin", "ft", "ft/in", "in", "imperial":
		return model.HeightUnitFtIn
	default:
		return model.HeightUnitCm
	}
}

// ParseWeightUnit normalizes a weight unit name. Unknown names fall back to kg.
func ParseWeightUnit(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lb", "lbs", "pound", "pounds", "imperial":
		return model.WeightUnitLb
	default:
		return model.WeightUnitKg
	}
}

// FormatHeight renders a canonical height for display in unit.
func FormatHeight(cm float64, unit string) string {
	if ParseHeightUnit(unit) == model.HeightUnitCm {
		return strconv.FormatFloat(round1(cm), 'f', 1, 64) + " cm"
	}
	feet, inches := CmToFeetInches(cm)
	inches = round1(inches)
	if inches >= 12 {
		feet++
		inches -= 12
	}
	return fmt.Sprintf("%d ft %.1f in", feet, inches)
}

var numberRe = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// ParseHeight converts a height typed in unit back to centimeters. Imperial
// input takes the first number as feet and the second as inches, so 5'10",
// "5 ft 10 in" and "5 10" are all read the same way.
func ParseHeight(text string, unit string) float64 {
	if ParseHeightUnit(unit) == model.HeightUnitCm {
		return ParseNumber(firstNumber(text))
	}
	nums := numberRe.FindAllString(text, 2)
	var feet, inches float64
	if len(nums) > 0 {
		feet = ParseNumber(nums[0])
	}
	if len(nums) > 1 {
		inches = ParseNumber(nums[1])
	}
	return FeetInchesToCm(0, feet*12+inches)
}

// FormatWeight renders a canonical weight for display in unit.
func FormatWeight(kg float64, unit string) string {
	if ParseWeightUnit(unit) == model.WeightUnitLb {
		return strconv.FormatFloat(round1(KgToLb(kg)), 'f', 1, 64) + " lb"
	}
	return strconv.FormatFloat(round1(kg), 'f', 1, 64) + " kg"
}

// ParseWeight converts a weight typed in unit back to kilograms.
func ParseWeight(text string, unit string) float64 {
	v := ParseNumber(firstNumber(text))
	if ParseWeightUnit(unit) == model.WeightUnitLb {
		return LbToKg(v)
	}
	return v
}

func firstNumber(text string) string {
	return numberRe.FindString(text)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
