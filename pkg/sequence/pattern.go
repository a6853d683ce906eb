package sequence

// NoteEvent is a note to be triggered at a pattern step: a frequency in
// Hz, a velocity in [0,1], and an optional duration in seconds (nil
// means "held until the next note-off", left to the caller to enforce).
type NoteEvent struct {
	FrequencyHz float64
	Velocity    float64
	Duration    *float64
}

type stepEvent struct {
	step  int
	event NoteEvent
}

// Pattern is a step-based sequence of note events. Patterns carry no
// tempo information of their own — a step is just an index; the
// Metronome driving a Sequencer decides what musical duration each step
// represents.
type Pattern struct {
	name        string
	description string
	length      int
	events      []stepEvent
}

// NewPattern creates an empty pattern with the given number of steps.
func NewPattern(length int) *Pattern {
	if length <= 0 {
		panic("sequence: pattern length must be greater than 0")
	}
	return &Pattern{length: length}
}

// SetName sets the pattern's display name.
func (p *Pattern) SetName(name string) { p.name = name }

// Name returns the pattern's display name, or "" if unset.
func (p *Pattern) Name() string { return p.name }

// SetDescription sets the pattern's description.
func (p *Pattern) SetDescription(description string) { p.description = description }

// Description returns the pattern's description, or "" if unset.
func (p *Pattern) Description() string { return p.description }

// Length returns the number of steps in the pattern.
func (p *Pattern) Length() int { return p.length }

// EventCount returns the total number of events across all steps.
func (p *Pattern) EventCount() int { return len(p.events) }

// AddEvent adds an event at the given step. Multiple events may occupy
// the same step. Panics if step is out of [0, Length()) range.
func (p *Pattern) AddEvent(step int, event NoteEvent) {
	if step < 0 || step >= p.length {
		panic("sequence: step index out of range")
	}
	p.events = append(p.events, stepEvent{step: step, event: event})
}

// ClearStep removes all events at the given step and returns how many
// were removed.
func (p *Pattern) ClearStep(step int) int {
	kept := p.events[:0]
	removed := 0
	for _, se := range p.events {
		if se.step == step {
			removed++
			continue
		}
		kept = append(kept, se)
	}
	p.events = kept
	return removed
}

// Clear removes every event from the pattern.
func (p *Pattern) Clear() {
	p.events = nil
}

// EventsAtStep returns the events at the given step, in the order they
// were added.
func (p *Pattern) EventsAtStep(step int) []NoteEvent {
	var out []NoteEvent
	for _, se := range p.events {
		if se.step == step {
			out = append(out, se.event)
		}
	}
	return out
}

// SetLength changes the pattern length. Events at steps beyond the new
// length are discarded; shrinking is lossy, growing adds no events.
func (p *Pattern) SetLength(newLength int) {
	if newLength <= 0 {
		panic("sequence: pattern length must be greater than 0")
	}
	if newLength < p.length {
		kept := p.events[:0]
		for _, se := range p.events {
			if se.step < newLength {
				kept = append(kept, se)
			}
		}
		p.events = kept
	}
	p.length = newLength
}
