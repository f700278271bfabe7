package domain

import "time"

// Product is the canonical robot vacuum record persisted to the catalog.
// ModelNumber is the unique key; uniqueness is enforced by a read-then-write
// check during import, not by the store.
type Product struct {
	ID string `json:"id"`

	Brand       string `json:"brand"`
	ModelNumber string `json:"model_number"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	Price   float64 `json:"price"`
	Reviews float64 `json:"reviews"`

	ImageURL string `json:"image_url,omitempty"`
	DealURL  string `json:"deal_url"`

	SuctionPower   *int   `json:"suction_power,omitempty"`
	BatteryMinutes *int   `json:"battery_minutes,omitempty"`
	NavigationType string `json:"navigation_type,omitempty"`
	NoiseLevel     *int   `json:"noise_level,omitempty"`

	SelfEmpty    bool `json:"self_empty"`
	Mopping      bool `json:"mopping"`
	HepaFilter   bool `json:"hepa_filter"`
	EdgeCleaning bool `json:"edge_cleaning"`
	SideBrush    bool `json:"side_brush"`
	DualBrush    bool `json:"dual_brush"`
	TangleFree   bool `json:"tangle_free"`

	Wifi         bool `json:"wifi"`
	AppControl   bool `json:"app_control"`
	VoiceControl bool `json:"voice_control"`
	Scheduling   bool `json:"scheduling"`
	ZoneCleaning bool `json:"zone_cleaning"`
	SpotCleaning bool `json:"spot_cleaning"`
	NoGoZones    bool `json:"no_go_zones"`
	AutoBoost    bool `json:"auto_boost"`

	ObjectRecognition    bool `json:"object_recognition"`
	FurnitureRecognition bool `json:"furniture_recognition"`
	PetRecognition       bool `json:"pet_recognition"`
	ThreeDMapping        bool `json:"three_d_mapping"`
	ObstacleAvoidance    bool `json:"obstacle_avoidance"`
	UVSterilization      bool `json:"uv_sterilization"`

	MaintenanceReminder        bool `json:"maintenance_reminder"`
	FilterReplacementIndicator bool `json:"filter_replacement_indicator"`
	BrushCleaningIndicator     bool `json:"brush_cleaning_indicator"`
	LargeDustbin               bool `json:"large_dustbin"`
	AutoEmptyBase              bool `json:"auto_empty_base"`
	WashableDustbin            bool `json:"washable_dustbin"`
	WashableFilter             bool `json:"washable_filter"`
	EasyBrushRemoval           bool `json:"easy_brush_removal"`
	SelfCleaningBrushroll      bool `json:"self_cleaning_brushroll"`
	DustbinFullIndicator       bool `json:"dustbin_full_indicator"`

	CleaningScore    *float64 `json:"cleaning_score,omitempty"`
	NavigationScore  *float64 `json:"navigation_score,omitempty"`
	SmartScore       *float64 `json:"smart_score,omitempty"`
	MaintenanceScore *float64 `json:"maintenance_score,omitempty"`
	BatteryScore     *float64 `json:"battery_score,omitempty"`
	PetFamilyScore   *float64 `json:"pet_family_score,omitempty"`
	ReviewScore      *float64 `json:"review_score,omitempty"`
	CleanIQScore     *float64 `json:"cleaniq_score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
