package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL string        // Base URL of the service
	Rounds  int           // Times each scenario is submitted
	Workers int           // Number of concurrent workers
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every response
}

// Scenario is one known assessment and the outcome the server must produce.
type Scenario struct {
	Name          string
	Text          string
	StudyBehavior string
	StudentID     string
	Expect        Expect
}

// Expect describes the checked parts of a /predict response. Level and
// alert fields are only checked when Status is 200.
type Expect struct {
	Status              int
	StressLevel         string
	DepressionLevel     string // empty skips the check
	AlertCounselor      bool
	AlertProctor        bool
	FirstRecommendation string // empty skips the check
}

// Response is the subset of the /predict body the probe reads.
type Response struct {
	StressScore     float64  `json:"stress_score"`
	DepressionScore float64  `json:"depression_score"`
	StressLevel     string   `json:"stress_level"`
	DepressionLevel string   `json:"depression_level"`
	Recommendations []string `json:"recommendations"`
	AlertCounselor  bool     `json:"alert_counselor"`
	AlertProctor    bool     `json:"alert_proctor"`
	TextSentiment   float64  `json:"text_sentiment"`
}

// Stats holds probe statistics.
type Stats struct {
	Submitted  int
	Passed     int
	Mismatched int
	Failed     int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
