package waterfall

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/paydrift/waterfall/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file persists the engine's two files, both small and human-readable:
//   - the schedule, a single JSON record owned and rewritten by the engine,
//   - the plan, a JSON document written by the user and only read here.
// The schedule is replaced atomically (write to a temp file, then rename) so
// a crash mid-write can never leave a torn record behind: a torn record could
// either duplicate a transfer or permanently skip a cycle.

// jschedule is the persisted form of a Schedule.
type jschedule struct {
	NextPaymentDate date.Date  `json:"nextPaymentDate"`
	LastExecuted    *date.Date `json:"lastExecutedDate,omitempty"`
	Status          string     `json:"status"`
}

// DecodeSchedule reads a schedule record from r.
func DecodeSchedule(r io.Reader) (*Schedule, error) {
	var js jschedule
	if err := json.NewDecoder(r).Decode(&js); err != nil {
		return nil, fmt.Errorf("cannot decode schedule: %w", err)
	}
	status, err := ParseStatus(js.Status)
	if err != nil {
		return nil, fmt.Errorf("cannot decode schedule: %w", err)
	}
	if js.NextPaymentDate.IsZero() {
		return nil, fmt.Errorf("cannot decode schedule: missing nextPaymentDate")
	}
	s := &Schedule{NextPaymentDate: js.NextPaymentDate, Status: status}
	if js.LastExecuted != nil {
		s.LastExecuted = *js.LastExecuted
	}
	return s, nil
}

// EncodeSchedule writes the schedule record to w.
func EncodeSchedule(w io.Writer, s *Schedule) error {
	js := jschedule{NextPaymentDate: s.NextPaymentDate, Status: string(s.Status)}
	if !s.LastExecuted.IsZero() {
		last := s.LastExecuted
		js.LastExecuted = &last
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(js)
}

// LoadSchedule reads the schedule from the given file.
func LoadSchedule(filename string) (*Schedule, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeSchedule(f)
}

// SaveSchedule atomically replaces the schedule file with the given schedule.
func SaveSchedule(filename string, s *Schedule) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	// The temp file lives in the target directory so the final rename stays
	// on one filesystem and therefore atomic.
	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp-*")
	if err != nil {
		return err
	}
	if err := EncodeSchedule(tmp, s); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// DecodePlan reads and validates an allocation plan from r.
func DecodePlan(r io.Reader) (*Plan, error) {
	var p Plan
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("cannot decode plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPlan reads and validates the allocation plan from the given file.
func LoadPlan(filename string) (*Plan, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := DecodePlan(f)
	if err != nil {
		return nil, fmt.Errorf("in %q: %w", filename, err)
	}
	return p, nil
}
