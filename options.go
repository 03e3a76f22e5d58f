package tresor

import (
	"golang.org/x/time/rate"

	cr "github.com/r4gus/tresor/internal/crypto"
)

// Option configures a Store at construction time. Options are the only
// configuration surface: an embeddable library takes its configuration as
// Go values from its host, not from a file format or environment
// variables (those belong to a caller's own CLI, not to this library).
type Option func(*storeConfig)

type storeConfig struct {
	rng         RNG
	clock       Clock
	logger      Logger
	kdfParams   cr.Argon2idParams
	rehash      RehashPolicy
	openLimiter *rate.Limiter
	keyLockMem  bool
}

func defaultStoreConfig() storeConfig {
	return storeConfig{
		rng:        CryptoRNG{},
		clock:      SystemClock,
		logger:     noopLogger{},
		kdfParams:  cr.DefaultArgon2idParams(),
		rehash:     DefaultRehashPolicy(),
		keyLockMem: true,
	}
}

// WithRNG injects the random source used to seed KDF salts and cipher
// IVs. Tests use this to make Seal deterministic.
func WithRNG(rng RNG) Option {
	return func(c *storeConfig) { c.rng = rng }
}

// WithClock injects the function used for CreatedAt/ModifiedAt/AccessedAt
// and for Data's own timestamps. Tests use this for deterministic output.
func WithClock(clock Clock) Option {
	return func(c *storeConfig) { c.clock = clock }
}

// WithLogger attaches a Logger observing lifecycle events. The default is
// a no-op.
func WithLogger(l Logger) Option {
	return func(c *storeConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithKDFCost overrides the Argon2id cost parameters a new Store seeds on
// its first Seal. It has no effect on Open, which always replays the
// parameters recorded in the opened blob's header.
func WithKDFCost(iterations, memoryKiB uint32, parallelism uint8) Option {
	return func(c *storeConfig) {
		c.kdfParams.Iterations = iterations
		c.kdfParams.MemoryKiB = memoryKiB
		c.kdfParams.Parallelism = parallelism
	}
}

// WithRehashPolicy overrides the target Argon2id cost NeedsRehash compares
// against. Defaults to DefaultRehashPolicy.
func WithRehashPolicy(p RehashPolicy) Option {
	return func(c *storeConfig) { c.rehash = p }
}

// WithOpenRateLimiter attaches a token-bucket limiter Open consults before
// running the KDF, so repeated wrong-password attempts are throttled
// without spending Argon2id's CPU/memory budget. Disabled (nil) by
// default.
func WithOpenRateLimiter(l *rate.Limiter) Option {
	return func(c *storeConfig) { c.openLimiter = l }
}

// WithMemoryLocking controls whether the derived key buffer is pinned
// with mlock(2) on platforms that support it (linux, darwin). Enabled by
// default; WithMemoryLocking(false) disables it, e.g. when the process
// lacks CAP_IPC_LOCK and Store would otherwise only log a warning.
func WithMemoryLocking(enabled bool) Option {
	return func(c *storeConfig) { c.keyLockMem = enabled }
}
