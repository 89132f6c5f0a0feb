// Package mining searches for a nonce that drives a recipe digest of a
// message under a configurable challenge, in the manner of a proof of work
// sealer: splice a nonce into the message, increment, rehash, stop when the
// challenge holds.
package mining

import (
	"bytes"
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rcrowley/go-metrics"
	"golang.org/x/exp/slog"

	"github.com/qrypu-project/qrypu/crypto"
)

var (
	// ErrBufferTooSmall is returned when the nonce region would not fit
	// inside the message bytes.
	ErrBufferTooSmall = errors.New("mining: nonce does not fit in data")

	// ErrNonceSpaceExhausted is returned when the nonce wrapped back to
	// zero without satisfying the challenge.
	ErrNonceSpaceExhausted = errors.New("mining: nonce space exhausted")
)

// Config describes one nonce search.
type Config struct {
	// NoncePosition selects the region the nonce overwrites.
	NoncePosition NoncePosition `json:"noncePosition"`

	// NonceLength is the region size in bytes, 1 to 255.
	NonceLength int `json:"nonceLength"`

	// NonceInData keeps the winning nonce inside Result.Data. When false
	// the result carries no data blob; the caller's buffer still holds
	// the final mutation.
	NonceInData bool `json:"nonceInData"`

	// NonceFromZero starts the search at the all-zero nonce instead of a
	// random seed.
	NonceFromZero bool `json:"nonceFromZero"`

	// Challenge picks the success predicate; the zero value is
	// LessOrEqual.
	Challenge ChallengeKind `json:"challenge"`

	// ChallengeValue is the target the predicate tests digests against.
	ChallengeValue []byte `json:"challengeValue"`

	// Recipe is the ordered digest chain rehashed every iteration.
	Recipe []crypto.HashID `json:"recipe"`

	// Rand seeds random nonces; nil selects the platform CSPRNG.
	Rand io.Reader `json:"-"`
}

// Result reports a finished search or nonce check.
type Result struct {
	Data         []byte        `json:"data,omitempty"`
	Nonce        []byte        `json:"nonce"`
	Hash         []byte        `json:"hash,omitempty"`
	HashCount    uint64        `json:"hashCount"`
	HashesPerSec float64       `json:"hashesPerSec"`
	Elapsed      time.Duration `json:"elapsed"`
}

// Miner drives nonce searches. The zero value is not usable; construct with
// New. A Miner may run many searches sequentially; its hashrate meter spans
// all of them.
type Miner struct {
	log      *slog.Logger
	hashrate metrics.Meter
}

// New returns a miner logging to the default logger.
func New() *Miner {
	return &Miner{
		log:      slog.Default(),
		hashrate: metrics.NewMeter(),
	}
}

// Hashrate returns the one minute moving rate of digests per second across
// this miner's searches.
func (m *Miner) Hashrate() float64 {
	return m.hashrate.Rate1()
}

// markEvery batches meter updates so the hot loop is not dominated by
// metric bookkeeping.
const markEvery = 1 << 15

// Compute mutates the nonce region of data until the challenge holds and
// returns the winning state. The seeded nonce is incremented before the
// first hash, so the seed itself is never tested; a full wrap of the nonce
// region without success fails with ErrNonceSpaceExhausted.
func (m *Miner) Compute(data []byte, cfg *Config) (*Result, error) {
	recipe, challenge, err := resolve(cfg, len(data))
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, cfg.NonceLength)
	if !cfg.NonceFromZero {
		rng := cfg.Rand
		if rng == nil {
			rng = crand.Reader
		}
		if _, err := io.ReadFull(rng, nonce); err != nil {
			return nil, fmt.Errorf("%w: nonce seed: %v", crypto.ErrIOFailure, err)
		}
	}
	offset := spliceNonce(data, nonce, cfg.NoncePosition)

	m.log.Debug("started nonce search",
		"position", cfg.NoncePosition, "length", cfg.NonceLength,
		"challenge", cfg.Challenge, "recipe", cfg.Recipe)

	var (
		start    = time.Now()
		count    uint64
		unmarked int64
		hash     []byte
	)
	for {
		if incrementNonce(data, offset, cfg.NonceLength) {
			m.hashrate.Mark(unmarked)
			return nil, ErrNonceSpaceExhausted
		}
		if hash, err = recipe.ComputeHash(data); err != nil {
			return nil, err
		}
		count++
		if unmarked++; unmarked == markEvery {
			m.hashrate.Mark(unmarked)
			unmarked = 0
		}
		if challenge(hash, cfg.ChallengeValue) {
			break
		}
	}
	m.hashrate.Mark(unmarked)

	elapsed := time.Since(start)
	res := &Result{
		Nonce:        extractNonce(data, offset, cfg.NonceLength),
		Hash:         hash,
		HashCount:    count,
		HashesPerSec: rate(count, elapsed),
		Elapsed:      elapsed,
	}
	if cfg.NonceInData {
		res.Data = data
	}
	m.log.Debug("nonce found",
		"attempts", count, "nonce", fmt.Sprintf("%x", res.Nonce),
		"hash", fmt.Sprintf("%x", hash), "elapsed", elapsed)
	return res, nil
}

// CheckNonce hashes data exactly as supplied and reports HashCount 1 iff
// the challenge holds and the nonce found at the configured position equals
// the supplied one. The caller is trusted to have embedded the nonce; the
// data is not re-spliced.
func (m *Miner) CheckNonce(data, nonce []byte, cfg *Config) (*Result, error) {
	recipe, challenge, err := resolve(cfg, len(data))
	if err != nil {
		return nil, err
	}
	start := time.Now()
	hash, err := recipe.ComputeHash(data)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	res := &Result{Elapsed: elapsed}
	if !challenge(hash, cfg.ChallengeValue) {
		return res, nil
	}
	res.Hash = hash
	offset := nonceOffset(len(data), cfg.NonceLength, cfg.NoncePosition)
	extracted := extractNonce(data, offset, cfg.NonceLength)
	res.Nonce = extracted
	if bytes.Equal(extracted, nonce) {
		res.HashCount = 1
		res.HashesPerSec = rate(1, elapsed)
	}
	return res, nil
}

// resolve validates a configuration against the data size and builds the
// recipe and predicate.
func resolve(cfg *Config, dataLen int) (*crypto.Recipe, ChallengeFunc, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("%w: nil mining config", crypto.ErrInvalidConfig)
	}
	if cfg.NonceLength < 1 || cfg.NonceLength > 255 {
		return nil, nil, fmt.Errorf("%w: nonce length %d out of range", crypto.ErrInvalidConfig, cfg.NonceLength)
	}
	if cfg.NonceLength > dataLen {
		return nil, nil, fmt.Errorf("%w: %d byte nonce in %d byte data", ErrBufferTooSmall, cfg.NonceLength, dataLen)
	}
	recipe, err := crypto.NewRecipe(cfg.Recipe...)
	if err != nil {
		return nil, nil, err
	}
	challenge, err := cfg.Challenge.Func()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Challenge == LessOrEqual && len(cfg.ChallengeValue) != recipe.Size() {
		return nil, nil, fmt.Errorf("%w: %d byte target against %d byte digest",
			crypto.ErrInvalidConfig, len(cfg.ChallengeValue), recipe.Size())
	}
	return recipe, challenge, nil
}

func rate(count uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(count) / elapsed.Seconds()
}

var defaultMiner = New()

// Compute runs a search on the package default miner.
func Compute(data []byte, cfg *Config) (*Result, error) {
	return defaultMiner.Compute(data, cfg)
}

// CheckNonce checks a nonce on the package default miner.
func CheckNonce(data, nonce []byte, cfg *Config) (*Result, error) {
	return defaultMiner.CheckNonce(data, nonce, cfg)
}
