// Package classify maps fused scores to levels, recommendations and alerts.
//
// Level boundaries (>=) and recommendation/alert boundaries (>) are separate
// policies and deliberately differ.
package classify

import "github.com/okian/mindscan/internal/domain/model"

// Level boundaries, inclusive.
const (
	severeFrom             = 0.76
	highFrom               = 0.51
	stressModerateFrom     = 0.26
	depressionModerateFrom = 0.24
)

// Recommendation and alert boundaries, exclusive.
const (
	urgentAbove    = 0.75
	elevatedAbove  = 0.5
	counselorAbove = 0.75
	proctorAbove   = 0.6
)

var (
	urgentStress = []string{
		"Consider speaking with a counselor immediately",
		"Take regular breaks between study sessions",
		"Practice deep breathing exercises",
	}
	elevatedStress = []string{
		"Try to maintain a balanced study schedule",
		"Consider reducing social media usage",
		"Ensure you get enough sleep",
	}
	urgentDepression = []string{
		"Please seek professional help",
		"Connect with friends and family",
		"Maintain a regular daily routine",
	}
	elevatedDepression = []string{
		"Consider joining student support groups",
		"Engage in physical activities",
		"Set achievable daily goals",
	}
	healthyRoutine = []string{
		"Keep maintaining your current healthy routine",
		"Stay connected with friends and family",
		"Regular exercise helps maintain mental health",
	}
)

// StressLevel categorizes a fused stress score.
func StressLevel(s float64) model.Level {
	return level(s, stressModerateFrom)
}

// DepressionLevel categorizes a fused depression score.
func DepressionLevel(s float64) model.Level {
	return level(s, depressionModerateFrom)
}

func level(s, moderateFrom float64) model.Level {
	switch {
	case s >= severeFrom:
		return model.LevelSevere
	case s >= highFrom:
		return model.LevelHigh
	case s >= moderateFrom:
		return model.LevelModerate
	default:
		return model.LevelNormal
	}
}

// Recommendations returns the stress list followed by the depression list,
// or the healthy-routine list when neither score is elevated.
func Recommendations(stress, depression float64) []string {
	var out []string
	out = append(out, band(stress, urgentStress, elevatedStress)...)
	out = append(out, band(depression, urgentDepression, elevatedDepression)...)
	if len(out) == 0 {
		out = append(out, healthyRoutine...)
	}
	return out
}

func band(s float64, urgent, elevated []string) []string {
	switch {
	case s > urgentAbove:
		return urgent
	case s > elevatedAbove:
		return elevated
	default:
		return nil
	}
}

// Alerts reports whether a counselor and a proctor should be notified.
func Alerts(stress, depression float64) (counselor, proctor bool) {
	counselor = stress > counselorAbove || depression > counselorAbove
	proctor = stress > proctorAbove || depression > proctorAbove
	return counselor, proctor
}

// Classify builds the full Result for a pair of fused scores.
func Classify(stress, depression float64) model.Result {
	counselor, proctor := Alerts(stress, depression)
	return model.Result{
		StressScore:     stress,
		DepressionScore: depression,
		StressLevel:     StressLevel(stress),
		DepressionLevel: DepressionLevel(depression),
		Recommendations: Recommendations(stress, depression),
		AlertCounselor:  counselor,
		AlertProctor:    proctor,
	}
}
