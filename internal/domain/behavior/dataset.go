package behavior

import "github.com/okian/mindscan/internal/domain/model"

// Sample is one training row: a behavior tuple and its target stress score.
type Sample struct {
	Input  model.BehaviorInput
	Target float64
}

// seedRows holds (study, social, sleep, deadlines) -> stress.
var seedRows = [...]struct {
	x [4]float64
	y float64
}{
	{[4]float64{2, 6, 4, 3}, 0.85},
	{[4]float64{7, 2, 8, 1}, 0.2},
	{[4]float64{3, 5, 5, 2}, 0.5},
	{[4]float64{8, 1, 7, 1}, 0.15},
	{[4]float64{1, 7, 4, 4}, 0.9},
	{[4]float64{5, 3, 6, 2}, 0.55},
	{[4]float64{9, 1, 8, 2}, 0.1},
	{[4]float64{1, 9, 3, 7}, 0.95},
	{[4]float64{6, 4, 7, 3}, 0.45},
	{[4]float64{2, 8, 4, 6}, 0.88},
	{[4]float64{4, 7, 5, 5}, 0.6},
	{[4]float64{10, 1, 9, 2}, 0.05},
	{[4]float64{1, 10, 3, 8}, 0.98},
	{[4]float64{12, 8, 0, 10}, 1.0},
	{[4]float64{0, 2, 8, 0}, 0.0},
}

// SeedDataset returns a fresh copy of the fixed 15-row training table.
func SeedDataset() []Sample {
	out := make([]Sample, len(seedRows))
	for i, r := range seedRows {
		out[i] = Sample{Input: model.BehaviorFromVector(r.x), Target: r.y}
	}
	return out
}
