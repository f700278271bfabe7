package store

import (
	"fmt"
	"strings"

	"github.com/ndmlabs/dealfeed/internal/domain"
)

// productColumns is the canonical column order shared by every SQL backend.
// productValues and product scan destinations must stay in the same order.
var productColumns = []string{
	"id", "brand", "model_number", "title", "description",
	"price", "reviews", "image_url", "deal_url",
	"suction_power", "battery_minutes", "navigation_type", "noise_level",
	"self_empty", "mopping", "hepa_filter", "edge_cleaning", "side_brush", "dual_brush", "tangle_free",
	"wifi", "app_control", "voice_control", "scheduling", "zone_cleaning", "spot_cleaning", "no_go_zones", "auto_boost",
	"object_recognition", "furniture_recognition", "pet_recognition", "three_d_mapping", "obstacle_avoidance", "uv_sterilization",
	"maintenance_reminder", "filter_replacement_indicator", "brush_cleaning_indicator",
	"large_dustbin", "auto_empty_base", "washable_dustbin", "washable_filter",
	"easy_brush_removal", "self_cleaning_brushroll", "dustbin_full_indicator",
	"cleaning_score", "navigation_score", "smart_score", "maintenance_score",
	"battery_score", "pet_family_score", "review_score", "cleaniq_score",
	"created_at", "updated_at",
}

var postColumns = []string{
	"id", "slug", "title", "date", "excerpt", "featured_image",
	"content", "html_content", "created_at",
}

func productValues(p domain.Product) []any {
	return []any{
		p.ID, p.Brand, p.ModelNumber, p.Title, p.Description,
		p.Price, p.Reviews, p.ImageURL, p.DealURL,
		p.SuctionPower, p.BatteryMinutes, p.NavigationType, p.NoiseLevel,
		p.SelfEmpty, p.Mopping, p.HepaFilter, p.EdgeCleaning, p.SideBrush, p.DualBrush, p.TangleFree,
		p.Wifi, p.AppControl, p.VoiceControl, p.Scheduling, p.ZoneCleaning, p.SpotCleaning, p.NoGoZones, p.AutoBoost,
		p.ObjectRecognition, p.FurnitureRecognition, p.PetRecognition, p.ThreeDMapping, p.ObstacleAvoidance, p.UVSterilization,
		p.MaintenanceReminder, p.FilterReplacementIndicator, p.BrushCleaningIndicator,
		p.LargeDustbin, p.AutoEmptyBase, p.WashableDustbin, p.WashableFilter,
		p.EasyBrushRemoval, p.SelfCleaningBrushroll, p.DustbinFullIndicator,
		p.CleaningScore, p.NavigationScore, p.SmartScore, p.MaintenanceScore,
		p.BatteryScore, p.PetFamilyScore, p.ReviewScore, p.CleanIQScore,
		p.CreatedAt, p.UpdatedAt,
	}
}

func productScanDests(p *domain.Product) []any {
	return []any{
		&p.ID, &p.Brand, &p.ModelNumber, &p.Title, &p.Description,
		&p.Price, &p.Reviews, &p.ImageURL, &p.DealURL,
		&p.SuctionPower, &p.BatteryMinutes, &p.NavigationType, &p.NoiseLevel,
		&p.SelfEmpty, &p.Mopping, &p.HepaFilter, &p.EdgeCleaning, &p.SideBrush, &p.DualBrush, &p.TangleFree,
		&p.Wifi, &p.AppControl, &p.VoiceControl, &p.Scheduling, &p.ZoneCleaning, &p.SpotCleaning, &p.NoGoZones, &p.AutoBoost,
		&p.ObjectRecognition, &p.FurnitureRecognition, &p.PetRecognition, &p.ThreeDMapping, &p.ObstacleAvoidance, &p.UVSterilization,
		&p.MaintenanceReminder, &p.FilterReplacementIndicator, &p.BrushCleaningIndicator,
		&p.LargeDustbin, &p.AutoEmptyBase, &p.WashableDustbin, &p.WashableFilter,
		&p.EasyBrushRemoval, &p.SelfCleaningBrushroll, &p.DustbinFullIndicator,
		&p.CleaningScore, &p.NavigationScore, &p.SmartScore, &p.MaintenanceScore,
		&p.BatteryScore, &p.PetFamilyScore, &p.ReviewScore, &p.CleanIQScore,
		&p.CreatedAt, &p.UpdatedAt,
	}
}

func postValues(p domain.Post) []any {
	return []any{
		p.ID, p.Slug, p.Title, p.Date, p.Excerpt, p.FeaturedImage,
		p.Content, p.HTMLContent, p.CreatedAt,
	}
}

func postScanDests(p *domain.Post) []any {
	return []any{
		&p.ID, &p.Slug, &p.Title, &p.Date, &p.Excerpt, &p.FeaturedImage,
		&p.Content, &p.HTMLContent, &p.CreatedAt,
	}
}

// questionMarks renders "?, ?, ..." for MySQL and SQLite.
func questionMarks(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// dollarMarks renders "$1, $2, ..." for Postgres.
func dollarMarks(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}
