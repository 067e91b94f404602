package behavior

import (
	"fmt"
	"math"
	"sort"
)

const defaultNeighbors = 3

// TrainOption configures model training.
type TrainOption func(*trainConfig)

type trainConfig struct {
	neighbors int
}

// WithNeighbors sets how many nearest samples vote on a prediction.
func WithNeighbors(k int) TrainOption {
	return func(c *trainConfig) {
		if k > 0 {
			c.neighbors = k
		}
	}
}

// Model is a trained, immutable stress regressor. It predicts with a
// distance-weighted k-nearest-neighbour vote over the training rows.
type Model struct {
	xs [][4]float64
	ys []float64
	k  int
}

// Train fits a Model to samples. The samples are copied.
func Train(samples []Sample, opts ...TrainOption) (*Model, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyDataset
	}
	cfg := trainConfig{neighbors: defaultNeighbors}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Model{
		xs: make([][4]float64, len(samples)),
		ys: make([]float64, len(samples)),
		k:  min(cfg.neighbors, len(samples)),
	}
	for i, s := range samples {
		x := s.Input.Vector()
		for j, v := range x {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("sample %d feature %d: %w", i, j, ErrInvalidInput)
			}
		}
		m.xs[i] = x
		m.ys[i] = s.Target
	}
	return m, nil
}

// Size returns the number of training rows.
func (m *Model) Size() int { return len(m.ys) }

// Predict returns the estimated stress for x. Exact matches return the
// mean target of the matching rows.
func (m *Model) Predict(x [4]float64) float64 {
	type neighbor struct {
		dist float64
		y    float64
	}
	ns := make([]neighbor, len(m.xs))
	for i, row := range m.xs {
		var sum float64
		for j := range row {
			d := row[j] - x[j]
			sum += d * d
		}
		ns[i] = neighbor{dist: math.Sqrt(sum), y: m.ys[i]}
	}

	var exactSum float64
	var exact int
	for _, n := range ns {
		if n.dist == 0 {
			exactSum += n.y
			exact++
		}
	}
	if exact > 0 {
		return exactSum / float64(exact)
	}

	sort.SliceStable(ns, func(i, j int) bool { return ns[i].dist < ns[j].dist })
	var num, den float64
	for _, n := range ns[:m.k] {
		w := 1 / n.dist
		num += w * n.y
		den += w
	}
	return num / den
}
