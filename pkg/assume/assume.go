// Package assume resolves optional inputs against documented defaults and
// records which value was used for each one. Every layer that accepts
// partially-populated configuration (KPI factors, sweep assumptions, the
// expedite-penalty proxy, scenario revenue) resolves through the same
// Trace so a response can report exactly which planning assumptions were
// applied.
package assume

import "fmt"

// Source says where a resolved value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceOverride Source = "override"
)

// Applied is one resolved assumption.
type Applied struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Source Source  `json:"source"`
}

// Trace accumulates resolved assumptions in resolution order.
type Trace struct {
	applied []Applied
}

// Float resolves an optional float against its default and records the
// outcome.
func (t *Trace) Float(name string, override *float64, def float64) float64 {
	if override != nil {
		t.record(name, *override, SourceOverride)
		return *override
	}
	t.record(name, def, SourceDefault)
	return def
}

func (t *Trace) record(name string, value float64, source Source) {
	t.applied = append(t.applied, Applied{Name: name, Value: value, Source: source})
}

// Applied returns the resolution log in order.
func (t *Trace) Applied() []Applied {
	return t.applied
}

// Defaults returns the names of assumptions that fell back to their
// default value.
func (t *Trace) Defaults() []string {
	var names []string
	for _, a := range t.applied {
		if a.Source == SourceDefault {
			names = append(names, a.Name)
		}
	}
	return names
}

// String summarizes the trace for log output.
func (t *Trace) String() string {
	return fmt.Sprintf("%d assumptions (%d defaulted)", len(t.applied), len(t.Defaults()))
}
