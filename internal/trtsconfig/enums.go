// Package trtsconfig defines the simulator's Config surface and a thin
// JSON loader for it. Config loading itself is an external collaborator
// per spec.md §1 — this package is intentionally small, just enough to
// make the core runnable from a file on disk.
package trtsconfig

// PsiMode selects when ψ is permitted to fire on an M microtick.
type PsiMode int

const (
	PsiModeMstep PsiMode = iota
	PsiModeRhoOnly
	PsiModeMstepRho
	PsiModeInhibitRho
)

func (m PsiMode) String() string {
	switch m {
	case PsiModeMstep:
		return "MSTEP"
	case PsiModeRhoOnly:
		return "RHO_ONLY"
	case PsiModeMstepRho:
		return "MSTEP_RHO"
	case PsiModeInhibitRho:
		return "INHIBIT_RHO"
	default:
		return "UNKNOWN"
	}
}

// KoppaMode selects the ϙ base-reset operation on trigger.
type KoppaMode int

const (
	KoppaModeDump KoppaMode = iota
	KoppaModePop
	KoppaModeAccumulate
)

func (m KoppaMode) String() string {
	switch m {
	case KoppaModeDump:
		return "DUMP"
	case KoppaModePop:
		return "POP"
	case KoppaModeAccumulate:
		return "ACCUMULATE"
	default:
		return "UNKNOWN"
	}
}

// TrackMode is a per-component engine arithmetic mode.
type TrackMode int

const (
	TrackAdd TrackMode = iota
	TrackMulti
	TrackSlide
)

func (m TrackMode) String() string {
	switch m {
	case TrackAdd:
		return "ADD"
	case TrackMulti:
		return "MULTI"
	case TrackSlide:
		return "SLIDE"
	default:
		return "UNKNOWN"
	}
}

// EngineMode is the overall engine arithmetic selector; DeltaAdd has no
// TrackMode equivalent (it's handled as its own code path in §4.3).
type EngineMode int

const (
	EngineAdd EngineMode = iota
	EngineMulti
	EngineSlide
	EngineDeltaAdd
)

func (m EngineMode) String() string {
	switch m {
	case EngineAdd:
		return "ADD"
	case EngineMulti:
		return "MULTI"
	case EngineSlide:
		return "SLIDE"
	case EngineDeltaAdd:
		return "DELTA_ADD"
	default:
		return "UNKNOWN"
	}
}

// KoppaTrigger selects when ϙ accrual runs.
type KoppaTrigger int

const (
	KoppaTriggerOnPsi KoppaTrigger = iota
	KoppaTriggerOnMuAfterPsi
	KoppaTriggerOnAllMu
)

func (t KoppaTrigger) String() string {
	switch t {
	case KoppaTriggerOnPsi:
		return "ON_PSI"
	case KoppaTriggerOnMuAfterPsi:
		return "ON_MU_AFTER_PSI"
	case KoppaTriggerOnAllMu:
		return "ON_ALL_MU"
	default:
		return "UNKNOWN"
	}
}

// PrimeTarget selects which υ snapshot feeds the pattern detector in E.
type PrimeTarget int

const (
	PrimeOnMemory PrimeTarget = iota
	PrimeOnNewUpsilon
)

func (t PrimeTarget) String() string {
	switch t {
	case PrimeOnMemory:
		return "PRIME_ON_MEMORY"
	case PrimeOnNewUpsilon:
		return "PRIME_ON_NEW_UPSILON"
	default:
		return "UNKNOWN"
	}
}

// Mt10Behavior selects what microtick 10 does in the E phase beyond
// setting forced_emission.
type Mt10Behavior int

const (
	Mt10ForcedEmissionOnly Mt10Behavior = iota
	Mt10ForcedPsi
)

func (b Mt10Behavior) String() string {
	switch b {
	case Mt10ForcedEmissionOnly:
		return "FORCED_EMISSION_ONLY"
	case Mt10ForcedPsi:
		return "FORCED_PSI"
	default:
		return "UNKNOWN"
	}
}

// RatioTriggerMode selects the ratio-window battery in use.
type RatioTriggerMode int

const (
	RatioNone RatioTriggerMode = iota
	RatioGolden
	RatioSqrt2
	RatioPlastic
	RatioCustom
)

func (m RatioTriggerMode) String() string {
	switch m {
	case RatioNone:
		return "NONE"
	case RatioGolden:
		return "GOLDEN"
	case RatioSqrt2:
		return "SQRT2"
	case RatioPlastic:
		return "PLASTIC"
	case RatioCustom:
		return "CUSTOM"
	default:
		return "UNKNOWN"
	}
}

// SignFlipMode selects the per-step sign-flip behavior.
type SignFlipMode int

const (
	SignFlipNone SignFlipMode = iota
	SignFlipAlways
	SignFlipAlternate
)

func (m SignFlipMode) String() string {
	switch m {
	case SignFlipNone:
		return "NONE"
	case SignFlipAlways:
		return "ALWAYS"
	case SignFlipAlternate:
		return "ALTERNATE"
	default:
		return "UNKNOWN"
	}
}
