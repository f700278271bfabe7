package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ndmlabs/dealfeed/internal/affiliate"
)

// Issue is one validation failure on one field of one row.
type Issue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

type requiredField struct {
	name string
	get  func(rawRow) string
}

var requiredFields = []requiredField{
	{"title", func(r rawRow) string { return r.Title }},
	{"brand", func(r rawRow) string { return r.Brand }},
	{"model_number", func(r rawRow) string { return r.ModelNumber }},
	{"price", func(r rawRow) string { return r.Price }},
	{"reviews", func(r rawRow) string { return r.Reviews }},
	{"dealUrl", func(r rawRow) string { return r.DealURL }},
}

type scoreField struct {
	name string
	get  func(rawRow) string
}

var scoreFields = []scoreField{
	{"cleaning_score", func(r rawRow) string { return r.CleaningScore }},
	{"navigation_score", func(r rawRow) string { return r.NavigationScore }},
	{"smart_score", func(r rawRow) string { return r.SmartScore }},
	{"maintenance_score", func(r rawRow) string { return r.MaintenanceScore }},
	{"battery_score", func(r rawRow) string { return r.BatteryScore }},
	{"pet_family_score", func(r rawRow) string { return r.PetFamilyScore }},
	{"review_score", func(r rawRow) string { return r.ReviewScore }},
	{"cleaniq_score", func(r rawRow) string { return r.CleanIQScore }},
}

// validateRow checks a row against the product schema and returns every
// issue found, not just the first. A row with zero issues is a candidate
// for upload.
func validateRow(row rawRow, tag string) []Issue {
	var issues []Issue

	add := func(field, code, msg string) {
		issues = append(issues, Issue{Field: field, Code: code, Message: msg})
	}

	for _, f := range requiredFields {
		if strings.TrimSpace(f.get(row)) == "" {
			add(f.name, "required", f.name+" is required")
		}
	}

	if row.Price != "" {
		price, err := strconv.ParseFloat(stripMoney(row.Price), 64)
		if err != nil || math.IsInf(price, 0) || math.IsNaN(price) || price <= 0 {
			add("price", "invalid_price", "price must be a positive number")
		}
	}

	if row.Reviews != "" {
		reviews, err := strconv.ParseFloat(row.Reviews, 64)
		if err != nil || reviews < 0 || reviews > 5 {
			add("reviews", "invalid_reviews", "reviews must be between 0 and 5")
		}
	}

	if row.DealURL != "" {
		if _, err := affiliate.CleanProductURL(row.DealURL, tag); err != nil {
			add("dealUrl", "invalid_deal_url", err.Error())
		}
	}

	if row.ImageURL != "" && !strings.HasPrefix(row.ImageURL, "http") {
		add("imageUrl", "invalid_image_url", "image URL must be a valid URL")
	}

	checkNonNegativeInt(&issues, "suction_power", row.SuctionPower)
	checkNonNegativeInt(&issues, "battery_minutes", row.BatteryMinutes)
	checkNonNegativeInt(&issues, "noise_level", row.NoiseLevel)

	for _, f := range scoreFields {
		v := f.get(row)
		if v == "" || strings.TrimSpace(v) == "N/A" {
			continue
		}
		score, err := strconv.ParseFloat(v, 64)
		if err != nil || score < 0 || score > 10 {
			issues = append(issues, Issue{
				Field:   f.name,
				Code:    "invalid_score",
				Message: strings.ReplaceAll(f.name, "_", " ") + " must be between 0 and 10",
			})
		}
	}

	return issues
}

func checkNonNegativeInt(issues *[]Issue, field, value string) {
	if value == "" || strings.TrimSpace(value) == "N/A" {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		*issues = append(*issues, Issue{
			Field:   field,
			Code:    "invalid_number",
			Message: strings.ReplaceAll(field, "_", " ") + " must be a positive number",
		})
	}
}

func stripMoney(v string) string {
	return strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(v))
}
