package visits

// VisitType classifies the reason for a home visit.
type VisitType string

const (
	VisitTypeRoutineCheckup VisitType = "routine_checkup"
	VisitTypeEmergency      VisitType = "emergency"
	VisitTypeFollowUp       VisitType = "follow_up"
)

// SymptomSeverity is the extractor's coarse severity label.
type SymptomSeverity string

const (
	SeverityMild     SymptomSeverity = "mild"
	SeverityModerate SymptomSeverity = "moderate"
	SeveritySevere   SymptomSeverity = "severe"
)

// BloodPressure is a systolic/diastolic pair in mmHg.
type BloodPressure struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

// Vitals holds measurements the worker may have spoken aloud. All fields
// are optional; a missing measurement stays nil.
type Vitals struct {
	BloodPressure      *BloodPressure `json:"blood_pressure"`
	WeightKg           *float64       `json:"weight_kg"`
	TemperatureCelsius *float64       `json:"temperature_celsius"`
}

// Record is the fixed-shape visit record carved out of a transcription.
// Every field carries a type-correct default so callers never see a
// partially shaped object: slices are non-nil and empty, unknown scalars
// are nil, booleans are false.
type Record struct {
	PatientName          *string          `json:"patient_name"`
	VisitType            *VisitType       `json:"visit_type"`
	Vitals               Vitals           `json:"vitals"`
	Symptoms             []string         `json:"symptoms"`
	SymptomSeverity      *SymptomSeverity `json:"symptom_severity"`
	ServicesProvided     []string         `json:"services_provided"`
	MedicinesDistributed []string         `json:"medicines_distributed"`
	CounselingTopics     []string         `json:"counseling_topics"`
	Observations         *string          `json:"observations"`
	ConcernsNoted        *string          `json:"concerns_noted"`
	FollowUpRequired     bool             `json:"follow_up_required"`
	NextVisitDate        *string          `json:"next_visit_date"`
	ReferralNeeded       bool             `json:"referral_needed"`
	ReferralReason       *string          `json:"referral_reason"`
}

// EmptyRecord returns the schema-complete default every failure path
// resolves to.
func EmptyRecord() Record {
	return Record{
		Symptoms:             []string{},
		ServicesProvided:     []string{},
		MedicinesDistributed: []string{},
		CounselingTopics:     []string{},
	}
}

// Normalize repairs a freshly unmarshalled record in place: nil slices
// become empty and out-of-enum labels are dropped back to nil.
func (r *Record) Normalize() {
	if r.Symptoms == nil {
		r.Symptoms = []string{}
	}
	if r.ServicesProvided == nil {
		r.ServicesProvided = []string{}
	}
	if r.MedicinesDistributed == nil {
		r.MedicinesDistributed = []string{}
	}
	if r.CounselingTopics == nil {
		r.CounselingTopics = []string{}
	}
	if r.VisitType != nil && !r.VisitType.valid() {
		r.VisitType = nil
	}
	if r.SymptomSeverity != nil && !r.SymptomSeverity.valid() {
		r.SymptomSeverity = nil
	}
}

func (v VisitType) valid() bool {
	switch v {
	case VisitTypeRoutineCheckup, VisitTypeEmergency, VisitTypeFollowUp:
		return true
	}
	return false
}

func (s SymptomSeverity) valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}
