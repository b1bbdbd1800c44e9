package trtsconfig

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/rigbyspace/operation-pretzel/internal/rational"
)

// ConfigError reports a configuration failure: an unparseable seed or an
// unknown enum value. Per spec.md §7 the core is never entered when one
// of these is returned.
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("trtsconfig: %s: %s", e.Key, e.Message)
}

// wireConfig mirrors the JSON keys spec.md §6 says the loader must honor.
// Every field is a pointer (or string) so "absent" is distinguishable
// from "zero value", matching config_loader.c's apply_optional_* pattern.
type wireConfig struct {
	PsiMode          *string `json:"psi_mode"`
	KoppaMode        *string `json:"koppa_mode"`
	EngineMode       *string `json:"engine_mode"`
	UpsilonTrack     *string `json:"upsilon_track"`
	BetaTrack        *string `json:"beta_track"`
	DualTrackSymmetry *bool  `json:"dual_track_symmetry"`
	TriplePsi        *bool   `json:"triple_psi"`
	MultiLevelKoppa  *bool   `json:"multi_level_koppa"`

	EnableAsymmetricCascade     *bool `json:"enable_asymmetric_cascade"`
	EnableConditionalTriplePsi  *bool `json:"enable_conditional_triple_psi"`
	EnableKoppaGatedEngine      *bool `json:"enable_koppa_gated_engine"`
	EnableDeltaCrossPropagation *bool `json:"enable_delta_cross_propagation"`
	EnableDeltaKoppaOffset      *bool `json:"enable_delta_koppa_offset"`
	EnableRatioThresholdPsi     *bool `json:"enable_ratio_threshold_psi"`
	EnableStackDepthModes       *bool `json:"enable_stack_depth_modes"`
	EnableEpsilonPhiTriangle    *bool `json:"enable_epsilon_phi_triangle"`
	EnableModularWrap           *bool `json:"enable_modular_wrap"`
	EnablePsiStrengthParameter  *bool `json:"enable_psi_strength_parameter"`
	EnableRatioSnapshotLogging  *bool `json:"enable_ratio_snapshot_logging"`
	EnableFeedbackOscillator    *bool `json:"enable_feedback_oscillator"`
	EnableFibonacciGate         *bool `json:"enable_fibonacci_gate"`
	EnableRatioCustomRange      *bool `json:"enable_ratio_custom_range"`
	EnableTwinPrimeTrigger      *bool `json:"enable_twin_prime_trigger"`
	EnableFibonacciTrigger      *bool `json:"enable_fibonacci_trigger"`
	EnablePerfectPowerTrigger   *bool `json:"enable_perfect_power_trigger"`

	KoppaTrigger     *string `json:"koppa_trigger"`
	Mt10Behavior     *string `json:"mt10_behavior"`
	RatioTriggerMode *string `json:"ratio_trigger_mode"`
	PrimeTarget      *string `json:"prime_target"`
	SignFlipMode     *string `json:"sign_flip_mode"`

	TickCount         *uint64 `json:"tick_count"`
	KoppaWrapThreshold *uint64 `json:"koppa_wrap_threshold"`
	ModulusBound      *string `json:"modulus_bound"`

	UpsilonSeed      *string `json:"upsilon_seed"`
	BetaSeed         *string `json:"beta_seed"`
	KoppaSeed        *string `json:"koppa_seed"`
	RatioCustomLower *string `json:"ratio_custom_lower"`
	RatioCustomUpper *string `json:"ratio_custom_upper"`
}

// Load reads a JSON configuration file and overlays it on Default().
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trtsconfig: reading %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse overlays JSON bytes on Default(), returning a *ConfigError for
// any unparseable seed or unrecognized enum string.
func Parse(raw []byte) (*Config, error) {
	var wire wireConfig
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("trtsconfig: invalid json: %w", err)
	}

	cfg := Default()

	if err := applyEnum(wire.PsiMode, "psi_mode", psiModeNames, func(v PsiMode) { cfg.PsiMode = v }); err != nil {
		return nil, err
	}
	if err := applyEnum(wire.KoppaMode, "koppa_mode", koppaModeNames, func(v KoppaMode) { cfg.KoppaMode = v }); err != nil {
		return nil, err
	}
	if err := applyEnum(wire.EngineMode, "engine_mode", engineModeNames, func(v EngineMode) { cfg.EngineMode = v }); err != nil {
		return nil, err
	}
	if err := applyEnum(wire.UpsilonTrack, "upsilon_track", trackModeNames, func(v TrackMode) { cfg.EngineUpsilon = v }); err != nil {
		return nil, err
	}
	if err := applyEnum(wire.BetaTrack, "beta_track", trackModeNames, func(v TrackMode) { cfg.EngineBeta = v }); err != nil {
		return nil, err
	}
	if err := applyEnum(wire.KoppaTrigger, "koppa_trigger", koppaTriggerNames, func(v KoppaTrigger) { cfg.KoppaTrigger = v }); err != nil {
		return nil, err
	}
	if err := applyEnum(wire.Mt10Behavior, "mt10_behavior", mt10BehaviorNames, func(v Mt10Behavior) { cfg.Mt10Behavior = v }); err != nil {
		return nil, err
	}
	if err := applyEnum(wire.RatioTriggerMode, "ratio_trigger_mode", ratioTriggerNames, func(v RatioTriggerMode) { cfg.RatioTriggerMode = v }); err != nil {
		return nil, err
	}
	if err := applyEnum(wire.PrimeTarget, "prime_target", primeTargetNames, func(v PrimeTarget) { cfg.PrimeTarget = v }); err != nil {
		return nil, err
	}
	if err := applyEnum(wire.SignFlipMode, "sign_flip_mode", signFlipNames, func(v SignFlipMode) { cfg.SignFlipMode = v }); err != nil {
		return nil, err
	}

	applyBool(wire.DualTrackSymmetry, &cfg.DualTrack)
	applyBool(wire.TriplePsi, &cfg.TriplePsi)
	applyBool(wire.MultiLevelKoppa, &cfg.MultiLevelKoppa)
	applyBool(wire.EnableAsymmetricCascade, &cfg.AsymmetricCascade)
	applyBool(wire.EnableConditionalTriplePsi, &cfg.ConditionalTriplePsi)
	applyBool(wire.EnableKoppaGatedEngine, &cfg.KoppaGatedEngine)
	applyBool(wire.EnableDeltaCrossPropagation, &cfg.DeltaCrossPropagation)
	applyBool(wire.EnableDeltaKoppaOffset, &cfg.DeltaKoppaOffset)
	applyBool(wire.EnableRatioThresholdPsi, &cfg.RatioThresholdPsi)
	applyBool(wire.EnableStackDepthModes, &cfg.StackDepthModes)
	applyBool(wire.EnableEpsilonPhiTriangle, &cfg.EpsilonPhiTriangle)
	applyBool(wire.EnableModularWrap, &cfg.ModularWrap)
	applyBool(wire.EnablePsiStrengthParameter, &cfg.PsiStrengthParameter)
	applyBool(wire.EnableRatioSnapshotLogging, &cfg.RatioSnapshotLogging)
	applyBool(wire.EnableFeedbackOscillator, &cfg.FeedbackOscillator)
	applyBool(wire.EnableFibonacciGate, &cfg.FibonacciGate)
	applyBool(wire.EnableRatioCustomRange, &cfg.RatioCustomRange)
	applyBool(wire.EnableTwinPrimeTrigger, &cfg.TwinPrimeTrigger)
	applyBool(wire.EnableFibonacciTrigger, &cfg.FibonacciTrigger)
	applyBool(wire.EnablePerfectPowerTrigger, &cfg.PerfectPowerTrigger)

	if wire.TickCount != nil && *wire.TickCount > 0 {
		cfg.Ticks = *wire.TickCount
	}
	if wire.KoppaWrapThreshold != nil {
		cfg.KoppaWrapThreshold = *wire.KoppaWrapThreshold
	}
	if wire.ModulusBound != nil {
		bound, ok := new(big.Int).SetString(*wire.ModulusBound, 10)
		if !ok {
			return nil, &ConfigError{Key: "modulus_bound", Message: "not a valid integer"}
		}
		cfg.ModulusBound = bound
	}

	if err := applySeed(wire.UpsilonSeed, "upsilon_seed", &cfg.InitialUpsilon); err != nil {
		return nil, err
	}
	if err := applySeed(wire.BetaSeed, "beta_seed", &cfg.InitialBeta); err != nil {
		return nil, err
	}
	if err := applySeed(wire.KoppaSeed, "koppa_seed", &cfg.InitialKoppa); err != nil {
		return nil, err
	}
	if err := applySeed(wire.RatioCustomLower, "ratio_custom_lower", &cfg.RatioCustomLower); err != nil {
		return nil, err
	}
	if err := applySeed(wire.RatioCustomUpper, "ratio_custom_upper", &cfg.RatioCustomUpper); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseSeed parses a "num/den" string into a Rational, matching
// config_loader.c's parse_rational_string.
func parseSeed(text string) (rational.Rational, error) {
	slash := strings.IndexByte(text, '/')
	if slash < 0 {
		return rational.Rational{}, fmt.Errorf("expected num/den, got %q", text)
	}
	numText, denText := text[:slash], text[slash+1:]
	if numText == "" || denText == "" {
		return rational.Rational{}, fmt.Errorf("expected num/den, got %q", text)
	}
	num, err := strconv.ParseInt(numText, 10, 64)
	if err != nil {
		return rational.Rational{}, fmt.Errorf("invalid numerator %q", numText)
	}
	den, err := strconv.ParseUint(denText, 10, 64)
	if err != nil || den == 0 {
		return rational.Rational{}, fmt.Errorf("invalid denominator %q", denText)
	}
	return rational.New(num, den), nil
}

func applyBool(src *bool, dst *bool) {
	if src != nil {
		*dst = *src
	}
}

// applySeed parses a "num/den" wire string into *dst, wrapping any parse
// failure in a *ConfigError keyed by key. A nil src leaves dst untouched.
func applySeed(src *string, key string, dst *rational.Rational) error {
	if src == nil {
		return nil
	}
	r, err := parseSeed(*src)
	if err != nil {
		return &ConfigError{Key: key, Message: err.Error()}
	}
	*dst = r
	return nil
}

func applyEnum[T ~int](src *string, key string, names map[string]T, assign func(T)) error {
	if src == nil {
		return nil
	}
	v, ok := names[strings.ToUpper(*src)]
	if !ok {
		return &ConfigError{Key: key, Message: fmt.Sprintf("unknown value %q", *src)}
	}
	assign(v)
	return nil
}

var psiModeNames = map[string]PsiMode{
	"MSTEP": PsiModeMstep, "RHO_ONLY": PsiModeRhoOnly,
	"MSTEP_RHO": PsiModeMstepRho, "INHIBIT_RHO": PsiModeInhibitRho,
}

var koppaModeNames = map[string]KoppaMode{
	"DUMP": KoppaModeDump, "POP": KoppaModePop, "ACCUMULATE": KoppaModeAccumulate,
}

var engineModeNames = map[string]EngineMode{
	"ADD": EngineAdd, "MULTI": EngineMulti, "SLIDE": EngineSlide, "DELTA_ADD": EngineDeltaAdd,
}

var trackModeNames = map[string]TrackMode{
	"ADD": TrackAdd, "MULTI": TrackMulti, "SLIDE": TrackSlide,
}

var koppaTriggerNames = map[string]KoppaTrigger{
	"ON_PSI": KoppaTriggerOnPsi, "ON_MU_AFTER_PSI": KoppaTriggerOnMuAfterPsi, "ON_ALL_MU": KoppaTriggerOnAllMu,
}

var primeTargetNames = map[string]PrimeTarget{
	"PRIME_ON_MEMORY": PrimeOnMemory, "PRIME_ON_NEW_UPSILON": PrimeOnNewUpsilon,
}

var mt10BehaviorNames = map[string]Mt10Behavior{
	"FORCED_EMISSION_ONLY": Mt10ForcedEmissionOnly, "FORCED_PSI": Mt10ForcedPsi,
}

var ratioTriggerNames = map[string]RatioTriggerMode{
	"NONE": RatioNone, "GOLDEN": RatioGolden, "SQRT2": RatioSqrt2, "PLASTIC": RatioPlastic, "CUSTOM": RatioCustom,
}

var signFlipNames = map[string]SignFlipMode{
	"NONE": SignFlipNone, "ALWAYS": SignFlipAlways, "ALTERNATE": SignFlipAlternate,
}
