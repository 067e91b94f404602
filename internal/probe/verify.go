package probe

import (
	"fmt"
	"strings"
)

// verify compares a /predict outcome with its scenario and returns every
// difference found, or nil.
func verify(s Scenario, status int, resp *Response) error {
	if status != s.Expect.Status {
		return fmt.Errorf("%s: %w: status %d, want %d", s.Name, ErrMismatch, status, s.Expect.Status)
	}
	if status != StatusOK {
		return nil
	}
	if resp == nil {
		return fmt.Errorf("%s: %w: empty body", s.Name, ErrMismatch)
	}

	var diffs []string
	if resp.StressLevel != s.Expect.StressLevel {
		diffs = append(diffs, fmt.Sprintf("stress_level %q, want %q", resp.StressLevel, s.Expect.StressLevel))
	}
	if s.Expect.DepressionLevel != "" && resp.DepressionLevel != s.Expect.DepressionLevel {
		diffs = append(diffs, fmt.Sprintf("depression_level %q, want %q", resp.DepressionLevel, s.Expect.DepressionLevel))
	}
	if resp.AlertCounselor != s.Expect.AlertCounselor {
		diffs = append(diffs, fmt.Sprintf("alert_counselor %t, want %t", resp.AlertCounselor, s.Expect.AlertCounselor))
	}
	if resp.AlertProctor != s.Expect.AlertProctor {
		diffs = append(diffs, fmt.Sprintf("alert_proctor %t, want %t", resp.AlertProctor, s.Expect.AlertProctor))
	}
	if want := s.Expect.FirstRecommendation; want != "" {
		if len(resp.Recommendations) == 0 || resp.Recommendations[0] != want {
			diffs = append(diffs, fmt.Sprintf("recommendations %q, want first %q", resp.Recommendations, want))
		}
	}

	if len(diffs) > 0 {
		return fmt.Errorf("%s: %w: %s", s.Name, ErrMismatch, strings.Join(diffs, "; "))
	}
	return nil
}
