package trtsconfig

import (
	"testing"

	"github.com/rigbyspace/operation-pretzel/internal/rational"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse({}) returned error: %v", err)
	}
	if cfg.PsiMode != PsiModeMstep {
		t.Errorf("default psi_mode = %v, want MSTEP", cfg.PsiMode)
	}
	if cfg.Ticks != 1 {
		t.Errorf("default ticks = %d, want 1", cfg.Ticks)
	}
}

func TestParseRejectsUnknownPsiMode(t *testing.T) {
	raw := []byte(`{
		"psi_mode": "triple",
		"koppa_mode": "POP",
		"engine_mode": "SLIDE",
		"enable_stack_depth_modes": true,
		"tick_count": 25,
		"upsilon_seed": "3/5",
		"beta_seed": "5/7",
		"koppa_seed": "1/1"
	}`)
	// "triple" is not a recognized psi_mode value; this should fail.
	_, err := Parse(raw)
	if err == nil {
		t.Fatal("expected Parse to reject unknown psi_mode value")
	}
	var cfgErr *ConfigError
	if ce, ok := err.(*ConfigError); ok {
		cfgErr = ce
	}
	if cfgErr == nil || cfgErr.Key != "psi_mode" {
		t.Fatalf("expected ConfigError for psi_mode, got %v", err)
	}
}

func TestParseValidOverlay(t *testing.T) {
	raw := []byte(`{
		"psi_mode": "mstep_rho",
		"koppa_mode": "POP",
		"engine_mode": "SLIDE",
		"enable_stack_depth_modes": true,
		"tick_count": 25,
		"upsilon_seed": "3/5",
		"beta_seed": "5/7",
		"koppa_seed": "1/1"
	}`)
	cfg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if cfg.PsiMode != PsiModeMstepRho {
		t.Errorf("psi_mode = %v, want MSTEP_RHO", cfg.PsiMode)
	}
	if cfg.KoppaMode != KoppaModePop {
		t.Errorf("koppa_mode = %v, want POP", cfg.KoppaMode)
	}
	if !cfg.StackDepthModes {
		t.Error("enable_stack_depth_modes not applied")
	}
	if cfg.Ticks != 25 {
		t.Errorf("tick_count = %d, want 25", cfg.Ticks)
	}
	want := rational.New(3, 5)
	if !rational.Equal(cfg.InitialUpsilon, want) {
		t.Errorf("upsilon_seed = %s, want 3/5", cfg.InitialUpsilon)
	}
}

func TestParseSeedRejectsMalformed(t *testing.T) {
	_, err := parseSeed("not-a-rational")
	if err == nil {
		t.Fatal("expected error parsing malformed seed")
	}
	_, err = parseSeed("1/0")
	if err == nil {
		t.Fatal("expected error parsing seed with zero denominator")
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	if err == nil {
		t.Fatal("expected error for invalid json")
	}
}
