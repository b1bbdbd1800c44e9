package simulate

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rigbyspace/operation-pretzel/internal/rational"
)

// eventsHeader and valuesHeader are the exact column orders from
// spec.md §6.
var eventsHeader = []string{
	"tick", "mt", "phase", "rho_event", "psi_fired", "mu_zero", "forced_emission",
	"ratio_triggered", "triple_psi", "dual_engine", "koppa_sample_index",
	"ratio_threshold", "psi_strength", "sign_flip",
}

var valuesHeader = []string{
	"tick", "mt",
	"upsilon_num", "upsilon_den", "beta_num", "beta_den", "koppa_num", "koppa_den",
	"koppa_sample_num", "koppa_sample_den",
	"prev_upsilon_num", "prev_upsilon_den", "prev_beta_num", "prev_beta_den",
	"koppa_stack0_num", "koppa_stack0_den", "koppa_stack1_num", "koppa_stack1_den",
	"koppa_stack2_num", "koppa_stack2_den", "koppa_stack3_num", "koppa_stack3_den",
	"koppa_stack_size",
	"delta_upsilon_num", "delta_upsilon_den", "delta_beta_num", "delta_beta_den",
	"triangle_phi_over_epsilon_num", "triangle_phi_over_epsilon_den",
	"triangle_prev_over_phi_num", "triangle_prev_over_phi_den",
	"triangle_epsilon_over_prev_num", "triangle_epsilon_over_prev_den",
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func pair(r rational.Rational) []string {
	return []string{r.Num.String(), r.Den.String()}
}

// csvWriters bundles the two CSV destinations that Simulate writes.
type csvWriters struct {
	events *csv.Writer
	values *csv.Writer
}

func newCSVWriters(eventsOut, valuesOut io.Writer) (*csvWriters, error) {
	w := &csvWriters{
		events: csv.NewWriter(eventsOut),
		values: csv.NewWriter(valuesOut),
	}
	if err := w.events.Write(eventsHeader); err != nil {
		return nil, err
	}
	if err := w.values.Write(valuesHeader); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *csvWriters) writeObservation(obs Observation) error {
	tick := strconv.FormatUint(obs.Tick, 10)
	mt := strconv.Itoa(obs.Microtick)

	eventsRow := []string{
		tick, mt, string(obs.Phase),
		boolDigit(obs.RhoEvent), boolDigit(obs.PsiFired), boolDigit(obs.MuZero),
		boolDigit(obs.ForcedEmission), boolDigit(obs.RatioTriggered), boolDigit(obs.TriplePsi),
		boolDigit(obs.DualEngine), strconv.Itoa(obs.KoppaSampleIndex),
		boolDigit(obs.RatioThreshold), boolDigit(obs.PsiStrength), boolDigit(obs.SignFlip),
	}
	if err := w.events.Write(eventsRow); err != nil {
		return err
	}

	st := obs.State
	valuesRow := []string{tick, mt}
	valuesRow = append(valuesRow, pair(st.Upsilon)...)
	valuesRow = append(valuesRow, pair(st.Beta)...)
	valuesRow = append(valuesRow, pair(st.Koppa)...)
	valuesRow = append(valuesRow, pair(st.KoppaSample)...)
	valuesRow = append(valuesRow, pair(st.PreviousUpsilon)...)
	valuesRow = append(valuesRow, pair(st.PreviousBeta)...)
	for _, slot := range st.KoppaStack {
		valuesRow = append(valuesRow, pair(slot)...)
	}
	valuesRow = append(valuesRow, strconv.Itoa(st.KoppaStackSize))
	valuesRow = append(valuesRow, pair(st.DeltaUpsilon)...)
	valuesRow = append(valuesRow, pair(st.DeltaBeta)...)
	valuesRow = append(valuesRow, pair(st.TrianglePhiOverEpsilon)...)
	valuesRow = append(valuesRow, pair(st.TrianglePrevOverPhi)...)
	valuesRow = append(valuesRow, pair(st.TriangleEpsilonOverPrev)...)

	return w.values.Write(valuesRow)
}

func (w *csvWriters) flush() error {
	w.events.Flush()
	if err := w.events.Error(); err != nil {
		return err
	}
	w.values.Flush()
	return w.values.Error()
}
