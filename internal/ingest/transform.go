package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndmlabs/dealfeed/internal/affiliate"
	"github.com/ndmlabs/dealfeed/internal/domain"
)

// truthyTokens is the set of string values that map to boolean true.
// Everything else, including "N/A" and empty, is false.
var truthyTokens = map[string]struct{}{
	"true": {},
	"1":    {},
	"yes":  {},
	"y":    {},
}

func parseBool(v string) bool {
	_, ok := truthyTokens[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// parseFloat strips currency symbols and thousands separators before
// parsing. The bool is false for empty, "N/A" or unparseable input.
func parseFloat(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "n/a") {
		return 0, false
	}
	f, err := strconv.ParseFloat(stripMoney(v), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseFloatOr(v string, def float64) float64 {
	if f, ok := parseFloat(v); ok {
		return f
	}
	return def
}

func parseOptionalFloat(v string) *float64 {
	if f, ok := parseFloat(v); ok {
		return &f
	}
	return nil
}

func parseOptionalInt(v string) *int {
	if f, ok := parseFloat(v); ok {
		n := int(f)
		return &n
	}
	return nil
}

// toProduct transforms a validated row into a catalog record. The deal URL
// is rewritten to its canonical tagged form; the tag present in the input,
// if any, is never kept.
func toProduct(row rawRow, tag string, now time.Time) (domain.Product, error) {
	dealURL, err := affiliate.CleanProductURL(row.DealURL, tag)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID: uuid.NewString(),

		Brand:       row.Brand,
		ModelNumber: row.ModelNumber,
		Title:       row.Title,
		Description: row.Description,

		Price:   parseFloatOr(row.Price, 0),
		Reviews: parseFloatOr(row.Reviews, 0),

		ImageURL: row.ImageURL,
		DealURL:  dealURL,

		SuctionPower:   parseOptionalInt(row.SuctionPower),
		BatteryMinutes: parseOptionalInt(row.BatteryMinutes),
		NavigationType: row.NavigationType,
		NoiseLevel:     parseOptionalInt(row.NoiseLevel),

		SelfEmpty:    parseBool(row.SelfEmpty),
		Mopping:      parseBool(row.Mopping),
		HepaFilter:   parseBool(row.HepaFilter),
		EdgeCleaning: parseBool(row.EdgeCleaning),
		SideBrush:    parseBool(row.SideBrush),
		DualBrush:    parseBool(row.DualBrush),
		TangleFree:   parseBool(row.TangleFree),

		Wifi:         parseBool(row.Wifi),
		AppControl:   parseBool(row.AppControl),
		VoiceControl: parseBool(row.VoiceControl),
		Scheduling:   parseBool(row.Scheduling),
		ZoneCleaning: parseBool(row.ZoneCleaning),
		SpotCleaning: parseBool(row.SpotCleaning),
		NoGoZones:    parseBool(row.NoGoZones),
		AutoBoost:    parseBool(row.AutoBoost),

		ObjectRecognition:    parseBool(row.ObjectRecognition),
		FurnitureRecognition: parseBool(row.FurnitureRecognition),
		PetRecognition:       parseBool(row.PetRecognition),
		ThreeDMapping:        parseBool(row.ThreeDMapping),
		ObstacleAvoidance:    parseBool(row.ObstacleAvoidance),
		UVSterilization:      parseBool(row.UVSterilization),

		MaintenanceReminder:        parseBool(row.MaintenanceReminder),
		FilterReplacementIndicator: parseBool(row.FilterReplacementIndicator),
		BrushCleaningIndicator:     parseBool(row.BrushCleaningIndicator),
		LargeDustbin:               parseBool(row.LargeDustbin),
		AutoEmptyBase:              parseBool(row.AutoEmptyBase),
		WashableDustbin:            parseBool(row.WashableDustbin),
		WashableFilter:             parseBool(row.WashableFilter),
		EasyBrushRemoval:           parseBool(row.EasyBrushRemoval),
		SelfCleaningBrushroll:      parseBool(row.SelfCleaningBrushroll),
		DustbinFullIndicator:       parseBool(row.DustbinFullIndicator),

		CleaningScore:    parseOptionalFloat(row.CleaningScore),
		NavigationScore:  parseOptionalFloat(row.NavigationScore),
		SmartScore:       parseOptionalFloat(row.SmartScore),
		MaintenanceScore: parseOptionalFloat(row.MaintenanceScore),
		BatteryScore:     parseOptionalFloat(row.BatteryScore),
		PetFamilyScore:   parseOptionalFloat(row.PetFamilyScore),
		ReviewScore:      parseOptionalFloat(row.ReviewScore),
		CleanIQScore:     parseOptionalFloat(row.CleanIQScore),

		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
