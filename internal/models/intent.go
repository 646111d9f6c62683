package models

// Intent tags come from a fixed closed vocabulary. IntentUnknown is the
// terminal fallback.
const (
	IntentUnknown = "unknown"

	IntentWhen             = "when"
	IntentWhenDetailed     = "when_detailed"
	IntentDuration         = "duration"
	IntentDurationDetailed = "duration_detailed"

	IntentProgrammeByDate         = "programme_by_date"
	IntentProgrammeByDateDetailed = "programme_by_date_detailed"
	IntentProgrammeEnfant         = "programme_enfant"
	IntentProgrammeEnfantDetailed = "programme_enfant_detailed"
	IntentAllProgrammes           = "all_programmes"

	IntentLocations         = "locations"
	IntentLocationsDetailed = "locations_detailed"
	IntentHours             = "hours"
	IntentHoursDetailed     = "hours_detailed"

	IntentEditorsCount         = "editors_count"
	IntentEditorsCountDetailed = "editors_count_detailed"
	IntentEditorsCountries     = "editors_countries"

	IntentPrice         = "price"
	IntentPriceDetailed = "price_detailed"

	IntentDatesRange         = "dates_range"
	IntentDatesRangeDetailed = "dates_range_detailed"

	// Fast-path manual intents. These never come out of the classifier.
	IntentManualFoireStart         = "manual_foire_start"
	IntentManualFoireEnd           = "manual_foire_end"
	IntentManualDureeGlobale       = "manual_duree_globale"
	IntentManualHorairesEvenements = "manual_horaires_evenements"
	IntentManualLieuxEvenements    = "manual_lieux_evenements"
	IntentManualNbEditeurs         = "manual_nb_editeurs"
)

// EntityDate is the entity slot a fast-path date match fills, encoded
// downstream as "programme_by_date::<DD> <Month> <YYYY>".
const EntityDate = "date"

// EntityUserInput echoes the raw question for the corrected-echo fallback.
const EntityUserInput = "user_input"

// IntentResult pairs an intent tag with the matcher's confidence and any
// extracted entity slots. Entities may be nil; downstream handlers must
// tolerate absence.
type IntentResult struct {
	Intent     string            `json:"intent"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities,omitempty"`
	Source     string            `json:"source"` // "fast_path", "classifier", "override"
}

// Entity reads a slot, returning "" when the set is nil or the slot absent.
func (r IntentResult) Entity(name string) string {
	if r.Entities == nil {
		return ""
	}
	return r.Entities[name]
}
