// Package model contains domain models passed between layers.
package model

import "time"

// Sentiment is the label attached to a text channel score.
type Sentiment string

// Text sentiment labels.
const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// EmotionUnknown labels a face score that carries no detected emotion.
const EmotionUnknown = "Unknown"

// Level is the four-step category assigned to a final score.
type Level string

// Score categories, lowest first.
const (
	LevelNormal   Level = "Normal"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"
	LevelSevere   Level = "Severe"
)

// ChannelScore is one channel's evidence: a value in [0,1] and a label.
type ChannelScore struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// BehaviorInput is the self-reported study-behavior tuple.
type BehaviorInput struct {
	StudyTime        float64 `json:"study_time"`
	SocialMediaHours float64 `json:"social_media_hours"`
	SleepHours       float64 `json:"sleep_hours"`
	DeadlinePressure float64 `json:"deadline_pressure"`
}

// Vector returns the tuple in its canonical field order.
func (b BehaviorInput) Vector() [4]float64 {
	return [4]float64{b.StudyTime, b.SocialMediaHours, b.SleepHours, b.DeadlinePressure}
}

// BehaviorFromVector builds a BehaviorInput from the canonical field order.
func BehaviorFromVector(v [4]float64) BehaviorInput {
	return BehaviorInput{
		StudyTime:        v[0],
		SocialMediaHours: v[1],
		SleepHours:       v[2],
		DeadlinePressure: v[3],
	}
}

// BehaviorScore is the behavior channel's output.
type BehaviorScore struct {
	Stress     float64 `json:"stress_score"`
	Depression float64 `json:"depression_score"`
}

// Request is one assessment submission.
type Request struct {
	StudentID string
	Text      string
	Behavior  BehaviorInput
	Image     []byte
}

// Result is the final decision for a request.
type Result struct {
	StressScore     float64  `json:"stress_score"`
	DepressionScore float64  `json:"depression_score"`
	StressLevel     Level    `json:"stress_level"`
	DepressionLevel Level    `json:"depression_level"`
	Recommendations []string `json:"recommendations"`
	AlertCounselor  bool     `json:"alert_counselor"`
	AlertProctor    bool     `json:"alert_proctor"`
}

// Channels holds every per-channel score computed for a request.
type Channels struct {
	Text         ChannelScore  `json:"text"`
	AdjustedText float64       `json:"adjusted_text"`
	Face         ChannelScore  `json:"face"`
	Behavior     BehaviorScore `json:"behavior"`
}

// Assessment is a completed request: its identity, inputs, evidence and result.
type Assessment struct {
	ID        string        `json:"id"`
	StudentID string        `json:"student_id"`
	CreatedAt time.Time     `json:"created_at"`
	Behavior  BehaviorInput `json:"behavior"`
	Channels  Channels      `json:"channels"`
	Strategy  string        `json:"strategy"`
	Result    Result        `json:"result"`
}
