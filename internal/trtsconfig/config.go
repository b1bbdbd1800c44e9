package trtsconfig

import (
	"math/big"

	"github.com/rigbyspace/operation-pretzel/internal/rational"
)

// Config enumerates every recognized option from spec.md §6.
type Config struct {
	PsiMode          PsiMode
	KoppaMode        KoppaMode
	EngineMode       EngineMode
	EngineUpsilon    TrackMode
	EngineBeta       TrackMode
	KoppaTrigger     KoppaTrigger
	PrimeTarget      PrimeTarget
	Mt10Behavior     Mt10Behavior
	RatioTriggerMode RatioTriggerMode
	SignFlipMode     SignFlipMode

	// Feature toggles.
	DualTrack             bool
	TriplePsi             bool
	MultiLevelKoppa       bool
	AsymmetricCascade     bool
	ConditionalTriplePsi  bool
	KoppaGatedEngine      bool
	DeltaCrossPropagation bool
	DeltaKoppaOffset      bool
	RatioThresholdPsi     bool
	StackDepthModes       bool
	EpsilonPhiTriangle    bool
	ModularWrap           bool
	PsiStrengthParameter  bool
	RatioSnapshotLogging  bool
	FeedbackOscillator    bool
	FibonacciGate         bool
	RatioCustomRange      bool
	TwinPrimeTrigger      bool
	FibonacciTrigger      bool
	PerfectPowerTrigger   bool

	// Numerics.
	Ticks             uint64
	InitialUpsilon    rational.Rational
	InitialBeta       rational.Rational
	InitialKoppa      rational.Rational
	RatioCustomLower  rational.Rational
	RatioCustomUpper  rational.Rational
	KoppaWrapThreshold uint64
	ModulusBound      *big.Int // 0 (or nil) means unused
}

// SignFlip reports whether sign-flipping is active at all — derived from
// SignFlipMode != NONE, per spec.md §6.
func (c *Config) SignFlip() bool {
	return c.SignFlipMode != SignFlipNone
}

// Default returns a Config with every feature toggle off, MSTEP/DUMP/ADD
// modes, and seeds at 0/1, matching the minimal scenario 1 of spec.md §8.
func Default() *Config {
	return &Config{
		PsiMode:          PsiModeMstep,
		KoppaMode:        KoppaModeDump,
		EngineMode:       EngineAdd,
		EngineUpsilon:    TrackAdd,
		EngineBeta:       TrackAdd,
		KoppaTrigger:     KoppaTriggerOnPsi,
		PrimeTarget:      PrimeOnNewUpsilon,
		Mt10Behavior:     Mt10ForcedEmissionOnly,
		RatioTriggerMode: RatioNone,
		SignFlipMode:     SignFlipNone,
		Ticks:            1,
		InitialUpsilon:   rational.New(0, 1),
		InitialBeta:      rational.New(0, 1),
		InitialKoppa:     rational.New(0, 1),
		RatioCustomLower: rational.New(0, 1),
		RatioCustomUpper: rational.New(0, 1),
	}
}
