package health

// MetricDefinition describes one known metric family: which export files
// belong to it, what the unified output file is called, and which columns
// it drops beyond the universal defaults.
type MetricDefinition struct {
	ID               string
	SourcePattern    string
	OutputName       string
	ExtraDropColumns []string
}

// DefaultDropColumns are removed from every metric. They carry vendor
// version stamps, sync/device metadata and other payload that has no
// analytical value after the export.
var DefaultDropColumns = []string{
	"create_sh_ver", "modify_sh_ver", "update_time", "datauuid", "pkg_name", "deviceuuid",
	"client_data_ver", "client_data_id", "time_offset", "comment", "custom", "data_version",
	"extra_data", "binning_data", "source", "tag_id", "day_time",
}

// Registry holds the static set of known metric definitions. It is built
// once at process start and never mutated afterwards.
type Registry struct {
	defs []MetricDefinition
	byID map[string]MetricDefinition
}

// NewRegistry builds a registry from the given definitions. Metric IDs
// must be unique; a duplicate definition panics since the table is static
// program data, not runtime input.
func NewRegistry(defs []MetricDefinition) *Registry {
	byID := make(map[string]MetricDefinition, len(defs))
	for _, def := range defs {
		if _, dup := byID[def.ID]; dup {
			panic("health: duplicate metric definition " + def.ID)
		}
		byID[def.ID] = def
	}
	return &Registry{defs: defs, byID: byID}
}

// Lookup returns the definition for a metric ID.
func (r *Registry) Lookup(id string) (MetricDefinition, bool) {
	def, ok := r.byID[id]
	return def, ok
}

// Definitions returns all metric definitions in registration order.
func (r *Registry) Definitions() []MetricDefinition {
	return r.defs
}

// DefaultRegistry returns the registry of all supported Samsung Health
// export metrics.
func DefaultRegistry() *Registry {
	return NewRegistry([]MetricDefinition{
		{
			ID:            "vitality",
			SourcePattern: "com.samsung.shealth.vitality_score.*.csv",
			OutputName:    "vitality_score.csv",
			ExtraDropColumns: []string{
				"shr_calculation_index", "shrv_calculation_index",
			},
		},
		{
			ID:            "sleep",
			SourcePattern: "com.samsung.shealth.sleep.*.csv",
			OutputName:    "sleep.csv",
			ExtraDropColumns: []string{
				"total_sleep_time_weight", "original_efficiency", "has_sleep_data", "combined_id",
				"is_integrated", "integrated_id", "original_wake_up_time", "original_bed_time",
			},
		},
		{
			ID:            "sleep_stage",
			SourcePattern: "com.samsung.health.sleep_stage.*.csv",
			OutputName:    "sleep_stage.csv",
			ExtraDropColumns: []string{
				"sleep_id",
			},
		},
		{
			ID:            "sleep_goal",
			SourcePattern: "com.samsung.shealth.sleep_goal.*.csv",
			OutputName:    "sleep_goal.csv",
		},
		{
			ID:            "sleep_snoring",
			SourcePattern: "com.samsung.shealth.sleep_snoring.*.csv",
			OutputName:    "sleep_snoring.csv",
			ExtraDropColumns: []string{
				"file_path", "sleep_id",
			},
		},
		{
			ID:            "oxygen_saturation",
			SourcePattern: "com.samsung.shealth.tracker.oxygen_saturation.*.csv",
			OutputName:    "oxygen_saturation.csv",
			ExtraDropColumns: []string{
				"end_time", "heart_rate", "start_time", "integrated_id", "binning",
			},
		},
		{
			ID:            "heart_rate",
			SourcePattern: "com.samsung.shealth.tracker.heart_rate.*.csv",
			OutputName:    "heart_rate.csv",
			ExtraDropColumns: []string{
				"heart_beat_count", "start_time", "end_time",
			},
		},
		{
			ID:            "respiratory_rate",
			SourcePattern: "com.samsung.health.respiratory_rate.*.csv",
			OutputName:    "respiratory_rate.csv",
			ExtraDropColumns: []string{
				"start_time", "end_time",
			},
		},
		{
			ID:            "pedometer_day_summary",
			SourcePattern: "com.samsung.shealth.tracker.pedometer_day_summary.*.csv",
			OutputName:    "pedometer_day_summary.csv",
			ExtraDropColumns: []string{
				"source_package_name", "source_info", "achievement",
			},
		},
		{
			ID:            "weight",
			SourcePattern: "com.samsung.health.weight.*.csv",
			OutputName:    "weight.csv",
			ExtraDropColumns: []string{
				"start_time",
			},
		},
		{
			ID:            "exercise",
			SourcePattern: "com.samsung.shealth.exercise.*.csv",
			OutputName:    "exercise.csv",
			ExtraDropColumns: []string{
				"live_data", "location_data", "additional_internal", "program_id", "sensing_status",
			},
		},
		{
			ID:            "ecg",
			SourcePattern: "com.samsung.health.ecg.*.csv",
			OutputName:    "ecg.csv",
			ExtraDropColumns: []string{
				"start_time", "end_time", "ecg_version", "sample_frequency", "shm_data_id", "shm_device_uuid",
				"shm_update_time", "chart_data", "shm_create_time", "data_mime", "data",
				"sample_count",
			},
		},
		{
			ID:            "food_intake",
			SourcePattern: "com.samsung.health.food_intake.*.csv",
			OutputName:    "food_intake.csv",
			ExtraDropColumns: []string{
				"food_info_id",
			},
		},
		{
			ID:            "food_info",
			SourcePattern: "com.samsung.health.food_info.*.csv",
			OutputName:    "food_info.csv",
			ExtraDropColumns: []string{
				"start_time", "end_time", "description", "provider_food_id", "info_provider",
			},
		},
		{
			ID:            "floors_climbed",
			SourcePattern: "com.samsung.health.floors_climbed.*.csv",
			OutputName:    "floors_climbed.csv",
			ExtraDropColumns: []string{
				"start_time", "end_time", "raw_data",
			},
		},
		{
			ID:            "mean_arterial_pressure",
			SourcePattern: "com.samsung.shealth.tracker.mean_arterial_pressure.*.csv",
			OutputName:    "mean_arterial_pressure.csv",
		},
		{
			ID:            "advanced_glycation_endproduct",
			SourcePattern: "com.samsung.health.advanced_glycation_endproduct.*.csv",
			OutputName:    "advanced_glycation_endproduct.csv",
			ExtraDropColumns: []string{
				"start_time", "end_time", "level_boundary", "version",
			},
		},
		{
			ID:            "antioxidant",
			SourcePattern: "com.samsung.health.antioxidant.*.csv",
			OutputName:    "antioxidant.csv",
			ExtraDropColumns: []string{
				"start_time", "end_time",
			},
		},
	})
}
