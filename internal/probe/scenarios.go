package probe

// Scenarios returns the known assessments replayed by the probe.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name:          "overwhelmed student",
			Text:          "I feel terrible and overwhelmed",
			StudyBehavior: "[9,7,4,8]",
			StudentID:     "probe-severe",
			Expect: Expect{
				Status:         StatusOK,
				StressLevel:    "Severe",
				AlertCounselor: true,
				AlertProctor:   true,
			},
		},
		{
			Name:          "healthy routine",
			StudyBehavior: "[1,1,8,1]",
			StudentID:     "probe-healthy",
			Expect: Expect{
				Status:              StatusOK,
				StressLevel:         "Moderate",
				DepressionLevel:     "Moderate",
				FirstRecommendation: "Keep maintaining your current healthy routine",
			},
		},
		{
			Name:          "malformed behavior",
			Text:          "fine",
			StudyBehavior: "[1,2]",
			StudentID:     "probe-invalid",
			Expect:        Expect{Status: StatusBadRequest},
		},
		{
			Name:          "negative behavior",
			StudyBehavior: "[1,-2,8,1]",
			StudentID:     "probe-negative",
			Expect:        Expect{Status: StatusBadRequest},
		},
	}
}
