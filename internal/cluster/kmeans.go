// internal/cluster/kmeans.go
package cluster

import (
	"math"
	"math/rand"

	"github.com/viant/vec/search"

	appErrors "github.com/sonalkolhe/customer-segmentation-webapp/internal/errors"
	"github.com/sonalkolhe/customer-segmentation-webapp/internal/model"
)

// Tuning mirrors the marketing team's reference pipeline: five segments by
// default, k-means++ seeding, ten restarts keeping the lowest inertia, and a
// 300 iteration cap per run.
const (
	DefaultK        = 5
	DefaultMaxIter  = 300
	DefaultRestarts = 10

	convergenceTol = 1e-4
)

// Engine fits K-Means over one standardized feature pair of a customer
// dataset. Seed 0 means a fresh random seeding on every call; any other value
// makes runs reproducible.
type Engine struct {
	K        int
	MaxIter  int
	Restarts int
	Seed     int64
}

// New builds an engine with the documented defaults for everything but k.
func New(k int) *Engine {
	return &Engine{
		K:        k,
		MaxIter:  DefaultMaxIter,
		Restarts: DefaultRestarts,
	}
}

// Cluster standardizes the selected features, fits K-Means, and returns one
// assignment per input record, in input order. Cluster IDs are in [0, k).
func (e *Engine) Cluster(customers []model.Customer, pair FeaturePair) ([]model.Assignment, error) {
	if e.K < 2 {
		return nil, appErrors.NewClusteringReason("k must be at least 2, got %d", e.K)
	}
	if len(customers) < e.K {
		return nil, appErrors.NewClustering(len(customers), e.K)
	}

	points := make([][]float32, len(customers))
	for i, c := range customers {
		x, y := pair.Extract(c)
		points[i] = []float32{float32(x), float32(y)}
	}
	standardize(points)

	labels := e.fit(points)

	assignments := make([]model.Assignment, len(customers))
	for i, c := range customers {
		assignments[i] = model.Assignment{Customer: c, ClusterID: labels[i]}
	}
	return assignments, nil
}

// fit runs the restart loop and keeps the labeling with the lowest inertia.
func (e *Engine) fit(points [][]float32) []int {
	restarts := e.Restarts
	if restarts < 1 {
		restarts = 1
	}
	maxIter := e.MaxIter
	if maxIter < 1 {
		maxIter = DefaultMaxIter
	}

	seed := e.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))

	bestInertia := math.Inf(1)
	var bestLabels []int
	for r := 0; r < restarts; r++ {
		labels, inertia := e.lloyd(points, rng, maxIter)
		// NaN inertia never compares lower, so keep the first run
		// unconditionally; fit must always return a full labeling.
		if bestLabels == nil || inertia < bestInertia {
			bestInertia = inertia
			bestLabels = labels
		}
	}
	return bestLabels
}

// lloyd is one K-Means run: k-means++ init, then alternate assignment and
// centroid updates until centroids stop moving or the iteration cap is hit.
func (e *Engine) lloyd(points [][]float32, rng *rand.Rand, maxIter int) ([]int, float64) {
	dims := len(points[0])
	centroids := e.seedCentroids(points, rng)
	labels := make([]int, len(points))

	for iter := 0; iter < maxIter; iter++ {
		for i, p := range points {
			labels[i] = nearest(p, centroids)
		}

		sums := make([][]float64, e.K)
		counts := make([]int, e.K)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, p := range points {
			c := labels[i]
			counts[c]++
			for d, v := range p {
				sums[c][d] += float64(v)
			}
		}

		var moved float32
		for c := 0; c < e.K; c++ {
			if counts[c] == 0 {
				// An emptied cluster keeps its previous centroid so it can
				// recapture points on a later iteration.
				continue
			}
			next := make([]float32, dims)
			for d := range next {
				next[d] = float32(sums[c][d] / float64(counts[c]))
			}
			if delta := search.Float32s(centroids[c]).EuclideanDistance(next); delta > moved {
				moved = delta
			}
			centroids[c] = next
		}
		if moved <= convergenceTol {
			break
		}
	}

	inertia := 0.0
	for i, p := range points {
		labels[i] = nearest(p, centroids)
		d := float64(search.Float32s(p).EuclideanDistance(centroids[labels[i]]))
		inertia += d * d
	}
	return labels, inertia
}

// seedCentroids picks initial centroids with k-means++: the first uniformly,
// each following one weighted by squared distance to the nearest chosen
// centroid.
func (e *Engine) seedCentroids(points [][]float32, rng *rand.Rand) [][]float32 {
	centroids := make([][]float32, 0, e.K)
	centroids = append(centroids, clonePoint(points[rng.Intn(len(points))]))

	dist2 := make([]float64, len(points))
	for len(centroids) < e.K {
		total := 0.0
		for i, p := range points {
			d := float64(nearestDistance(p, centroids))
			dist2[i] = d * d
			total += dist2[i]
		}

		next := 0
		if total > 0 {
			target := rng.Float64() * total
			acc := 0.0
			for i := range dist2 {
				acc += dist2[i]
				if acc >= target {
					next = i
					break
				}
			}
		} else {
			// Every point coincides with a centroid already. Fall back to a
			// uniform pick so duplicate-heavy data still yields k centroids.
			next = rng.Intn(len(points))
		}
		centroids = append(centroids, clonePoint(points[next]))
	}
	return centroids
}

// standardize rescales each feature to zero mean and unit variance in place,
// so income in the tens of thousands cannot drown out a 1-100 score. A
// zero-variance feature collapses to all zeros.
func standardize(points [][]float32) {
	if len(points) == 0 {
		return
	}
	dims := len(points[0])
	n := float64(len(points))

	for d := 0; d < dims; d++ {
		mean := 0.0
		for _, p := range points {
			mean += float64(p[d])
		}
		mean /= n

		variance := 0.0
		for _, p := range points {
			diff := float64(p[d]) - mean
			variance += diff * diff
		}
		std := math.Sqrt(variance / n)

		for _, p := range points {
			if std == 0 {
				p[d] = 0
				continue
			}
			p[d] = float32((float64(p[d]) - mean) / std)
		}
	}
}

func nearest(p []float32, centroids [][]float32) int {
	v := search.Float32s(p)
	best := 0
	bestDist := float32(math.MaxFloat32)
	for i, c := range centroids {
		if d := v.EuclideanDistance(c); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func nearestDistance(p []float32, centroids [][]float32) float32 {
	v := search.Float32s(p)
	best := float32(math.MaxFloat32)
	for _, c := range centroids {
		if d := v.EuclideanDistance(c); d < best {
			best = d
		}
	}
	return best
}

func clonePoint(p []float32) []float32 {
	out := make([]float32, len(p))
	copy(out, p)
	return out
}
