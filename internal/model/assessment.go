package model

// LoadAssessment holds the quantities derived from a rating and its feeder legs.
// It has no identity and is recomputed from scratch on every call.
// Units: currents in A, percentages 0..100.
type LoadAssessment struct {
	RatedLoad float64 `json:"rated_load"`

	RedPhaseBulkLoad    float64 `json:"red_phase_bulk_load"`
	YellowPhaseBulkLoad float64 `json:"yellow_phase_bulk_load"`
	BluePhaseBulkLoad   float64 `json:"blue_phase_bulk_load"`

	AverageCurrent            float64 `json:"average_current"`
	PercentageLoad            float64 `json:"percentage_load"`
	TenPercentFullLoadNeutral float64 `json:"ten_percent_full_load_neutral"`
	CalculatedNeutral         float64 `json:"calculated_neutral"`

	MaxPhaseCurrent     float64 `json:"max_phase_current"`
	MinPhaseCurrent     float64 `json:"min_phase_current"`
	AvgPhaseCurrent     float64 `json:"avg_phase_current"`
	ImbalancePercentage float64 `json:"imbalance_percentage"`

	NeutralWarningLevel     WarningLevel `json:"neutral_warning_level"`
	NeutralWarningMessage   string       `json:"neutral_warning_message"`
	ImbalanceWarningLevel   WarningLevel `json:"imbalance_warning_level"`
	ImbalanceWarningMessage string       `json:"imbalance_warning_message"`
}

// EmptyAssessment is returned when there is nothing to assess.
func EmptyAssessment() LoadAssessment {
	return LoadAssessment{
		NeutralWarningLevel:   LevelNormal,
		ImbalanceWarningLevel: LevelNormal,
	}
}

// BulkLoads returns the three bulk loads in reporting order.
func (a LoadAssessment) BulkLoads() [3]float64 {
	return [3]float64{a.RedPhaseBulkLoad, a.YellowPhaseBulkLoad, a.BluePhaseBulkLoad}
}
