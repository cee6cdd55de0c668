package perf

import "Aeroperf/internal/calc/formula"

// Session is one calculation: an engine plus the quantity record it
// threads through each step. A Session is not safe for concurrent use;
// start one per calculation.
type Session struct {
	engine *Engine
	rec    formula.Record
}

// NewSession starts a session from a copy of the known quantities.
func (e *Engine) NewSession(known formula.Record) *Session {
	rec := known.Clone()
	if rec == nil {
		rec = formula.Record{}
	}
	return &Session{engine: e, rec: rec}
}

func (s *Session) Apply(step string) error {
	rec, err := s.engine.Solve(step, s.rec)
	s.rec = rec
	return err
}

func (s *Session) Run(p Plan) error {
	rec, err := s.engine.Run(p, s.rec)
	s.rec = rec
	return err
}

func (s *Session) Settle(maxPasses int) int {
	rec, n := s.engine.Settle(s.rec, maxPasses)
	s.rec = rec
	return n
}

// Set records a known quantity, replacing any computed value.
func (s *Session) Set(name string, v float64) { s.rec[name] = v }

func (s *Session) Get(name string) (float64, bool) {
	v, ok := s.rec[name]
	return v, ok
}

// Record returns a copy of the current quantities.
func (s *Session) Record() formula.Record { return s.rec.Clone() }
