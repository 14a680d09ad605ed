// Package neural implements the feed-forward network forecast strategy.
//
// The network is intentionally small: one hidden layer, sigmoid
// activations, and weights drawn fresh on every invocation. There is no
// training pass, so repeated runs produce different output unless the
// seed is pinned.
package neural

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/staybase/demandcast/internal/stats"
	"github.com/staybase/demandcast/pkg/constants"
	"github.com/staybase/demandcast/pkg/errors"
	"github.com/staybase/demandcast/pkg/models"
)

// Config contains the network architecture and the weight seed.
type Config struct {
	Window int   `json:"window"` // input window, capped at history length
	Hidden int   `json:"hidden"` // hidden layer size
	Seed   int64 `json:"seed"`   // 0 seeds from the wall clock
}

// DefaultConfig returns the reference architecture.
func DefaultConfig() *Config {
	return &Config{
		Window: constants.DefaultNeuralWindow,
		Hidden: constants.DefaultNeuralHidden,
	}
}

// Strategy rolls a trailing window of values through a two-layer net
// for multi-step prediction.
type Strategy struct {
	logger     *logrus.Logger
	config     *Config
	randSource *rand.Rand
}

// New creates a neural strategy.
func New(config *Config, logger *logrus.Logger) *Strategy {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logrus.New()
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Strategy{
		logger:     logger,
		config:     config,
		randSource: rand.New(rand.NewSource(seed)),
	}
}

// Name returns the method name.
func (s *Strategy) Name() string {
	return constants.MethodNeural
}

// Deterministic reports that per-call weight initialization makes
// repeated runs differ.
func (s *Strategy) Deterministic() bool {
	return false
}

// network holds one freshly initialized two-layer net.
type network struct {
	hiddenWeights *mat.Dense
	hiddenBias    *mat.VecDense
	outputWeights *mat.VecDense
	outputBias    float64
}

func (s *Strategy) newNetwork(window, hidden int) *network {
	hiddenWeights := mat.NewDense(hidden, window, nil)
	for i := 0; i < hidden; i++ {
		for j := 0; j < window; j++ {
			hiddenWeights.Set(i, j, s.randSource.NormFloat64())
		}
	}
	hiddenBias := mat.NewVecDense(hidden, nil)
	outputWeights := mat.NewVecDense(hidden, nil)
	for i := 0; i < hidden; i++ {
		hiddenBias.SetVec(i, s.randSource.NormFloat64())
		outputWeights.SetVec(i, s.randSource.NormFloat64())
	}
	return &network{
		hiddenWeights: hiddenWeights,
		hiddenBias:    hiddenBias,
		outputWeights: outputWeights,
		outputBias:    s.randSource.NormFloat64(),
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// forward runs one window through the net, returning a value in (0,1).
func (n *network) forward(input []float64) float64 {
	x := mat.NewVecDense(len(input), input)

	var pre mat.VecDense
	pre.MulVec(n.hiddenWeights, x)
	pre.AddVec(&pre, n.hiddenBias)

	hidden := mat.NewVecDense(pre.Len(), nil)
	for i := 0; i < pre.Len(); i++ {
		hidden.SetVec(i, sigmoid(pre.AtVec(i)))
	}

	return sigmoid(mat.Dot(n.outputWeights, hidden) + n.outputBias)
}

// Forecast normalizes the history to [0,1], feeds the trailing window
// through the net, and rolls each prediction back into the window for
// the next step.
func (s *Strategy) Forecast(ctx context.Context, series *models.DemandSeries, horizon int) ([]models.ForecastPoint, error) {
	if horizon <= 0 {
		return nil, errors.NewValidationError(errors.CodeInvalidHorizon, "forecast horizon must be positive")
	}
	values := series.Values()
	if len(values) < 2 {
		return nil, errors.NewInsufficientDataError(len(values), 2)
	}

	window := s.config.Window
	if window > len(values) {
		window = len(values)
	}
	if window < 1 {
		window = 1
	}

	minValue := values[0]
	maxValue := values[0]
	for _, v := range values {
		minValue = math.Min(minValue, v)
		maxValue = math.Max(maxValue, v)
	}
	span := maxValue - minValue

	normalize := func(v float64) float64 {
		if span == 0 {
			return 0.5
		}
		return (v - minValue) / span
	}
	denormalize := func(v float64) float64 {
		return minValue + v*span
	}

	rolling := make([]float64, window)
	for i := 0; i < window; i++ {
		rolling[i] = normalize(values[len(values)-window+i])
	}

	net := s.newNetwork(window, s.config.Hidden)
	variance := stats.Variance(values)

	timestamps := models.ForecastTimestamps(series.LastTimestamp(), horizon)
	points := make([]models.ForecastPoint, horizon)

	for i := 0; i < horizon; i++ {
		output := net.forward(rolling)
		predicted := math.Max(0, denormalize(output))

		spread := math.Sqrt(variance * float64(i+1))
		halfWidth := constants.ConfidenceZScore * spread

		points[i] = models.ForecastPoint{
			Timestamp:       timestamps[i],
			PredictedDemand: predicted,
			Confidence: models.ConfidenceInterval{
				Lower: math.Max(0, predicted-halfWidth),
				Upper: predicted + halfWidth,
			},
			Volatility: spread,
		}

		copy(rolling, rolling[1:])
		rolling[window-1] = output
	}

	s.logger.WithFields(logrus.Fields{
		"strategy": s.Name(),
		"horizon":  horizon,
		"window":   window,
		"hidden":   s.config.Hidden,
	}).Debug("Completed neural projection")

	return points, nil
}
