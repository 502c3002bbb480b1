// Package pricing implements a Monte Carlo pricing engine for European
// options.
//
// The engine simulates geometric Brownian motion price paths over a
// discretized horizon and tracks the cross-path average call and put payoff
// at every time step. The stored premium is the best such average observed
// across all steps (including the implicit step-0 value of zero), with no
// discounting. This quantity is deliberately not the standard discounted
// terminal expectation; it is the behavior the rest of the system is
// calibrated against and must not be "fixed".
package pricing

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/avnikitin/HSEDerivatives/internal/errors"
	"github.com/avnikitin/HSEDerivatives/internal/models"
	"github.com/avnikitin/HSEDerivatives/internal/performance"
)

// Default simulation dimensions.
const (
	DefaultPaths = 10000
	DefaultSteps = 100
)

// Config holds the simulation parameters.
type Config struct {
	Paths   int   // number of independent price paths
	Steps   int   // number of time steps per path
	Workers int   // 0 means one worker per CPU
	Seed    int64 // 0 means seed from system entropy
}

// DefaultConfig returns the default simulation configuration.
func DefaultConfig() Config {
	return Config{
		Paths: DefaultPaths,
		Steps: DefaultSteps,
	}
}

// Validate checks the simulation parameters. Zero values for any field mean
// "use the default" and are accepted.
func (c Config) Validate() error {
	if c.Paths < 0 {
		return errors.NewValidationError("paths", c.Paths, "must not be negative")
	}
	if c.Steps < 0 {
		return errors.NewValidationError("steps", c.Steps, "must not be negative")
	}
	if c.Workers < 0 {
		return errors.NewValidationError("workers", c.Workers, "must not be negative")
	}
	// Negative seeds are rejected so that derived seeds (base plus a
	// non-negative offset) can never land on zero, the entropy sentinel.
	if c.Seed < 0 {
		return errors.NewValidationError("seed", c.Seed, "must not be negative")
	}
	return nil
}

// normalized fills zero-valued fields with their defaults.
func (c Config) normalized() Config {
	if c.Paths == 0 {
		c.Paths = DefaultPaths
	}
	if c.Steps == 0 {
		c.Steps = DefaultSteps
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Workers > c.Paths {
		c.Workers = c.Paths
	}
	return c
}

// Model prices a European option at a fixed volatility. The full simulation
// runs in NewModel; afterwards the model only exposes read-only accessors.
type Model struct {
	opt  models.EuropeanOption
	vol  float64
	cfg  Config
	seed int64
	call float64
	put  float64
}

// NewModel validates the inputs, runs the full simulation synchronously, and
// returns the finished model.
func NewModel(opt models.EuropeanOption, vol float64, cfg Config) (*Model, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	if vol <= 0 {
		return nil, errors.NewValidationError("vol", vol, "must be positive")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		opt:  opt,
		vol:  vol,
		cfg:  cfg.normalized(),
		seed: resolveSeed(cfg.Seed),
	}
	m.simulate()
	return m, nil
}

// resolveSeed returns seed unchanged when non-zero; otherwise it draws a seed
// from system entropy so that every construction reseeds, matching the
// baseline non-reproducible behavior.
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	var s int64
	if err := binary.Read(cryptoRand.Reader, binary.LittleEndian, &s); err != nil || s == 0 {
		s = time.Now().UnixNano()
	}
	return s
}

// stepSums accumulates per-step payoff sums for one chunk of paths.
type stepSums struct {
	call []float64
	put  []float64
}

func (m *Model) simulate() {
	cfg := m.cfg
	dt := m.opt.TimeToExpiry / float64(cfg.Steps)
	drift := (m.opt.Rate - m.vol*m.vol/2) * dt
	diffusion := m.vol * math.Sqrt(dt)

	// Paths are split into per-worker chunks; each worker owns a private
	// generator and accumulates payoff sums locally, so there is no shared
	// mutable state until the merge below. Per-step averaging commutes with
	// chunked summation, so the result matches the sequential loop.
	chunk := (cfg.Paths + cfg.Workers - 1) / cfg.Workers
	partials := make([]stepSums, cfg.Workers)

	pool := performance.NewWorkerPool(cfg.Workers)
	pool.Start()
	defer pool.Stop()

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		begin := w * chunk
		end := begin + chunk
		if end > cfg.Paths {
			end = cfg.Paths
		}
		if begin >= end {
			continue
		}

		w := w
		n := end - begin
		wg.Add(1)
		task := func() {
			defer wg.Done()
			partials[w] = m.simulateChunk(n, drift, diffusion, m.seed+int64(w))
		}
		if !pool.Submit(task) {
			task()
		}
	}
	wg.Wait()

	// The implicit step-0 payoff of zero is the starting best, covering
	// immediate expiry.
	var bestCall, bestPut float64
	for s := 0; s < cfg.Steps; s++ {
		var callSum, putSum float64
		for _, p := range partials {
			if p.call == nil {
				continue
			}
			callSum += p.call[s]
			putSum += p.put[s]
		}
		bestCall = math.Max(bestCall, callSum/float64(cfg.Paths))
		bestPut = math.Max(bestPut, putSum/float64(cfg.Paths))
	}
	m.call = bestCall
	m.put = bestPut
}

// simulateChunk evolves n paths over the full horizon with a private
// generator, advancing each log-price by a normal draw with mean
// log(prev) + (r − σ²/2)·dt and standard deviation σ·√dt.
func (m *Model) simulateChunk(n int, drift, diffusion float64, seed int64) stepSums {
	rng := rand.New(rand.NewSource(seed))
	sums := stepSums{
		call: make([]float64, m.cfg.Steps),
		put:  make([]float64, m.cfg.Steps),
	}

	prices := make([]float64, n)
	for i := range prices {
		prices[i] = m.opt.Spot
	}

	for s := 0; s < m.cfg.Steps; s++ {
		for i := 0; i < n; i++ {
			logNext := math.Log(prices[i]) + drift + diffusion*rng.NormFloat64()
			prices[i] = math.Exp(logNext)
			sums.call[s] += models.Call.Payoff(prices[i], m.opt.Strike)
			sums.put[s] += models.Put.Payoff(prices[i], m.opt.Strike)
		}
	}
	return sums
}

// Call returns the estimated call premium.
func (m *Model) Call() float64 {
	return m.call
}

// Put returns the estimated put premium.
func (m *Model) Put() float64 {
	return m.put
}

// Price returns the estimated premium for the requested option type.
func (m *Model) Price(typ models.OptionType) (float64, error) {
	switch typ {
	case models.Call:
		return m.call, nil
	case models.Put:
		return m.put, nil
	default:
		return 0, errors.Wrapf(errors.ErrInvalidOptionType, "price for %v", typ)
	}
}

// Seed returns the resolved base seed used for this simulation.
func (m *Model) Seed() int64 {
	return m.seed
}

// Vol returns the volatility the model was priced at.
func (m *Model) Vol() float64 {
	return m.vol
}

// Option returns the contract parameters.
func (m *Model) Option() models.EuropeanOption {
	return m.opt
}
