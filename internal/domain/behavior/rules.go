package behavior

import "github.com/okian/mindscan/internal/domain/model"

// Rule band contributions. Only the higher band of a factor fires.
const (
	highBand       = 0.4
	lowBand        = 0.3
	sleepHighDepr  = 0.5
	sleepLowDepr   = 0.4
	idleRuleCap    = 0.1
	studyHighHours = 9
	studyLowHours  = 7
	socialHigh     = 6
	socialLow      = 4
	sleepShort     = 5
	sleepLow       = 7
	deadlineHigh   = 6
	deadlineLow    = 4
	deprDeadlineHi = 7
	deprDeadlineLo = 5
)

// band returns hi when highHit, lo when lowHit, else 0.
func band(highHit, lowHit bool, hi, lo float64) float64 {
	switch {
	case highHit:
		return hi
	case lowHit:
		return lo
	default:
		return 0
	}
}

// ruleStress sums the stress points for in. The sum is not capped here.
func ruleStress(in model.BehaviorInput) float64 {
	s := band(in.StudyTime > studyHighHours, in.StudyTime > studyLowHours, highBand, lowBand)
	s += band(in.SocialMediaHours > socialHigh, in.SocialMediaHours > socialLow, highBand, lowBand)
	s += band(in.SleepHours < sleepShort, in.SleepHours < sleepLow, highBand, lowBand)
	s += band(in.DeadlinePressure > deadlineHigh, in.DeadlinePressure > deadlineLow, highBand, lowBand)
	return s
}

// ruleDepression sums the depression points for in.
func ruleDepression(in model.BehaviorInput) float64 {
	d := band(in.SleepHours < sleepShort, in.SleepHours < sleepLow, sleepHighDepr, sleepLowDepr)
	d += band(in.SocialMediaHours > in.StudyTime, in.SocialMediaHours > in.StudyTime/2, highBand, lowBand)
	d += band(in.DeadlinePressure > deprDeadlineHi, in.DeadlinePressure > deprDeadlineLo, highBand, lowBand)
	return d
}

// idle reports a no-workload tuple: nothing studied and nothing due.
func idle(in model.BehaviorInput) bool {
	return in.StudyTime == 0 && in.DeadlinePressure == 0
}
