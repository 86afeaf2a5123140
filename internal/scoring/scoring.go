// Package scoring maps survey answers to a burnout risk score and label.
//
// Two policies exist side by side. Simple is the two-input formula used by the predict and survey
// endpoints; it is not clamped and has three bands. Extended is the five-input weighted formula used
// when the AI scoring service is unavailable; it is clamped to [0, 100] and has four bands.
package scoring

import "math"

// Risk labels.
const (
	LabelUrgent = "Urgent"
	LabelHigh   = "High"
	LabelMedium = "Medium"
	LabelLow    = "Low"
)

// Defaults substituted for missing answers.
const (
	DefaultWorkHours = 40
	DefaultStress    = 5
	DefaultWorkload  = 5
	DefaultSupport   = 5
	DefaultSleep     = 7
)

// SimpleInput is the request shape shared by the predict and survey endpoints.
type SimpleInput struct {
	WorkHours Value `json:"work_hours"`
	Stress    Value `json:"stress"`
}

// Resolve returns the integer hours and stress with defaults applied.
func (in SimpleInput) Resolve() (hours, stress int) {
	return in.WorkHours.Int(DefaultWorkHours), in.Stress.Int(DefaultStress)
}

// Simple returns round((hours/40)*50 + (stress/10)*50), rounding half to even.
// The result is not clamped: 80 hours at stress 10 scores 150.
func Simple(hours, stress int) int {
	raw := float64(hours)/40*50 + float64(stress)/10*50
	return int(math.RoundToEven(raw))
}

// SimpleLabel bands a Simple score: >=70 High, >=40 Medium, else Low.
func SimpleLabel(score int) string {
	switch {
	case score >= 70:
		return LabelHigh
	case score >= 40:
		return LabelMedium
	default:
		return LabelLow
	}
}

// Answers is the five-input questionnaire scored by Extended.
type Answers struct {
	WorkHours Value `json:"work_hours"`
	Stress    Value `json:"stress"`
	Workload  Value `json:"workload"`
	Support   Value `json:"support"`
	Sleep     Value `json:"sleep"`
}

// Extended returns the weighted five-input score clamped to [0, 100].
// It is non-decreasing in hours, stress and workload and non-increasing in support and sleep.
func Extended(a Answers) int {
	hours := float64(a.WorkHours.Int(DefaultWorkHours))
	stress := float64(a.Stress.Int(DefaultStress))
	workload := float64(a.Workload.Int(DefaultWorkload))
	support := float64(a.Support.Int(DefaultSupport))
	sleep := float64(a.Sleep.Int(DefaultSleep))

	hoursScore := math.Min(hours/40*35, 35)
	stressScore := stress / 10 * 30
	workloadScore := workload / 10 * 20
	supportPenalty := math.Max(0, (10-support)/10*10)
	sleepPenalty := math.Max(0, (7-sleep)/7*5)

	score := int(math.RoundToEven(hoursScore + stressScore + workloadScore + supportPenalty + sleepPenalty))
	return Clamp(score)
}

// ExtendedLabel bands an Extended score: >80 Urgent, >60 High, >40 Medium, else Low.
func ExtendedLabel(score int) string {
	switch {
	case score > 80:
		return LabelUrgent
	case score > 60:
		return LabelHigh
	case score > 40:
		return LabelMedium
	default:
		return LabelLow
	}
}

// Clamp limits score to [0, 100].
func Clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
