package ingest

// rawRow is one CSV data row after header mapping, still all strings.
// The schema is fixed: headers not present in the lookup table are dropped
// instead of being carried through as dynamic keys.
type rawRow struct {
	Brand       string
	ModelNumber string
	Title       string
	Description string

	Price    string
	Reviews  string
	ImageURL string
	DealURL  string

	SuctionPower   string
	BatteryMinutes string
	NavigationType string
	NoiseLevel     string

	SelfEmpty    string
	Mopping      string
	HepaFilter   string
	EdgeCleaning string
	SideBrush    string
	DualBrush    string
	TangleFree   string

	Wifi         string
	AppControl   string
	VoiceControl string
	Scheduling   string
	ZoneCleaning string
	SpotCleaning string
	NoGoZones    string
	AutoBoost    string

	ObjectRecognition    string
	FurnitureRecognition string
	PetRecognition       string
	ThreeDMapping        string
	ObstacleAvoidance    string
	UVSterilization      string

	MaintenanceReminder        string
	FilterReplacementIndicator string
	BrushCleaningIndicator     string
	LargeDustbin               string
	AutoEmptyBase              string
	WashableDustbin            string
	WashableFilter             string
	EasyBrushRemoval           string
	SelfCleaningBrushroll      string
	DustbinFullIndicator       string

	CleaningScore    string
	NavigationScore  string
	SmartScore       string
	MaintenanceScore string
	BatteryScore     string
	PetFamilyScore   string
	ReviewScore      string
	CleanIQScore     string
}

// fields is the strict header-to-field lookup table.
func (r *rawRow) fields() map[string]*string {
	return map[string]*string{
		"brand":        &r.Brand,
		"model_number": &r.ModelNumber,
		"title":        &r.Title,
		"description":  &r.Description,

		"price":    &r.Price,
		"reviews":  &r.Reviews,
		"imageUrl": &r.ImageURL,
		"dealUrl":  &r.DealURL,

		"suction_power":   &r.SuctionPower,
		"battery_minutes": &r.BatteryMinutes,
		"navigation_type": &r.NavigationType,
		"noise_level":     &r.NoiseLevel,

		"self_empty":    &r.SelfEmpty,
		"mopping":       &r.Mopping,
		"hepa_filter":   &r.HepaFilter,
		"edge_cleaning": &r.EdgeCleaning,
		"side_brush":    &r.SideBrush,
		"dual_brush":    &r.DualBrush,
		"tangle_free":   &r.TangleFree,

		"wifi":          &r.Wifi,
		"app_control":   &r.AppControl,
		"voice_control": &r.VoiceControl,
		"scheduling":    &r.Scheduling,
		"zone_cleaning": &r.ZoneCleaning,
		"spot_cleaning": &r.SpotCleaning,
		"no_go_zones":   &r.NoGoZones,
		"auto_boost":    &r.AutoBoost,

		"object_recognition":    &r.ObjectRecognition,
		"furniture_recognition": &r.FurnitureRecognition,
		"pet_recognition":       &r.PetRecognition,
		"three_d_mapping":       &r.ThreeDMapping,
		"obstacle_avoidance":    &r.ObstacleAvoidance,
		"uv_sterilization":      &r.UVSterilization,

		"maintenance_reminder":         &r.MaintenanceReminder,
		"filter_replacement_indicator": &r.FilterReplacementIndicator,
		"brush_cleaning_indicator":     &r.BrushCleaningIndicator,
		"large_dustbin":                &r.LargeDustbin,
		"auto_empty_base":              &r.AutoEmptyBase,
		"washable_dustbin":             &r.WashableDustbin,
		"washable_filter":              &r.WashableFilter,
		"easy_brush_removal":           &r.EasyBrushRemoval,
		"self_cleaning_brushroll":      &r.SelfCleaningBrushroll,
		"dustbin_full_indicator":       &r.DustbinFullIndicator,

		"cleaning_score":    &r.CleaningScore,
		"navigation_score":  &r.NavigationScore,
		"smart_score":       &r.SmartScore,
		"maintenance_score": &r.MaintenanceScore,
		"battery_score":     &r.BatteryScore,
		"pet_family_score":  &r.PetFamilyScore,
		"review_score":      &r.ReviewScore,
		"cleaniq_score":     &r.CleanIQScore,
	}
}

// rowFromValues builds a rawRow from normalized headers and an equal-length
// value slice. Values under unknown headers are ignored.
func rowFromValues(headers []string, values []string) rawRow {
	var row rawRow
	fields := row.fields()
	for i, h := range headers {
		if dst, ok := fields[h]; ok {
			*dst = values[i]
		}
	}
	return row
}

// unknownHeaders reports normalized headers that the row schema does not
// recognize, in input order.
func unknownHeaders(headers []string) []string {
	known := (&rawRow{}).fields()
	var out []string
	for _, h := range headers {
		if _, ok := known[h]; !ok {
			out = append(out, h)
		}
	}
	return out
}
