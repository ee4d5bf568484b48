package diag

import (
	"fmt"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/rosed"
	"github.com/google/uuid"
)

// Bag collects every Diagnostic produced over the course of one run. It is
// tagged with a stable RunID so a driver that aggregates several runs (a
// lexer grammar and a parser grammar loaded in one invocation, say) can
// still tell their diagnostics apart after the fact.
type Bag struct {
	RunID uuid.UUID
	items []Diagnostic
}

// NewBag creates an empty Bag tagged with a freshly generated RunID.
func NewBag() *Bag {
	return &Bag{RunID: uuid.New()}
}

// Add appends d to the Bag.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Addf is a convenience for appending an ad-hoc Diagnostic of the given Kind
// and Severity without going through one of the typed constructors.
func (b *Bag) Addf(kind Kind, sev Severity, pos Position, format string, a ...any) {
	d := newDiag(kind, pos, nil, format, a...)
	d.sev = sev
	b.items = append(b.items, d)
}

// All returns every collected Diagnostic, in the order they were added.
func (b *Bag) All() []Diagnostic {
	return b.items
}

// Len returns the number of collected diagnostics.
func (b *Bag) Len() int {
	return len(b.items)
}

// BySeverity filters to only the diagnostics at the given Severity.
func (b *Bag) BySeverity(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range b.items {
		if d.sev == sev {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any collected Diagnostic is at Error severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.sev == Error {
			return true
		}
	}
	return false
}

// HighestSeverity returns the most severe Severity present in the Bag, or
// Info if the Bag is empty. The driver uses this to decide whether to abort.
func (b *Bag) HighestSeverity() Severity {
	highest := Info
	for _, d := range b.items {
		if d.sev > highest {
			highest = d.sev
		}
	}
	return highest
}

// String renders the Bag as a table: severity, kind, position, message.
func (b *Bag) String() string {
	if len(b.items) == 0 {
		return fmt.Sprintf("diag.Bag %s: (empty)", b.RunID)
	}

	data := [][]string{{"SEV", "KIND", "POSITION", "MESSAGE"}}
	for _, d := range b.items {
		data = append(data, []string{d.sev.String(), d.kind.String(), d.pos.String(), d.msg})
	}

	table := rosed.Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()

	return fmt.Sprintf("diag.Bag %s:\n%s", b.RunID, table)
}

// diagRecord is the per-Diagnostic shape persisted by Bag.MarshalBinary.
// Kind and Severity travel as their plain int underlying type; the wrapped
// cause is not preserved across the round trip since the underlying errors
// are not themselves serializable.
type diagRecord struct {
	Sev  int
	Kind int
	Msg  string
	File string
	Line int
	Col  int
}

// MarshalBinary always returns a nil error.
func (r diagRecord) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncInt(r.Sev)...)
	data = append(data, rezi.EncInt(r.Kind)...)
	data = append(data, rezi.EncString(r.Msg)...)
	data = append(data, rezi.EncString(r.File)...)
	data = append(data, rezi.EncInt(r.Line)...)
	data = append(data, rezi.EncInt(r.Col)...)
	return data, nil
}

func (r *diagRecord) UnmarshalBinary(data []byte) error {
	var n, offset int
	var err error

	if r.Sev, n, err = rezi.DecInt(data[offset:]); err != nil {
		return fmt.Errorf("severity: %w", err)
	}
	offset += n
	if r.Kind, n, err = rezi.DecInt(data[offset:]); err != nil {
		return fmt.Errorf("kind: %w", err)
	}
	offset += n
	if r.Msg, n, err = rezi.DecString(data[offset:]); err != nil {
		return fmt.Errorf("message: %w", err)
	}
	offset += n
	if r.File, n, err = rezi.DecString(data[offset:]); err != nil {
		return fmt.Errorf("file: %w", err)
	}
	offset += n
	if r.Line, n, err = rezi.DecInt(data[offset:]); err != nil {
		return fmt.Errorf("line: %w", err)
	}
	offset += n
	if r.Col, _, err = rezi.DecInt(data[offset:]); err != nil {
		return fmt.Errorf("col: %w", err)
	}
	return nil
}

// MarshalBinary serializes the Bag so a driver can persist a run's
// diagnostics to a sidecar file and replay them later without rerunning the
// pipeline.
func (b *Bag) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, rezi.EncString(b.RunID.String())...)
	data = append(data, rezi.EncInt(len(b.items))...)
	for _, d := range b.items {
		rec := diagRecord{
			Sev:  int(d.sev),
			Kind: int(d.kind),
			Msg:  d.msg,
			File: d.pos.File,
			Line: d.pos.Line,
			Col:  d.pos.Col,
		}
		data = append(data, rezi.EncBinary(rec)...)
	}
	return data, nil
}

// UnmarshalBinary restores a Bag previously serialized with MarshalBinary.
func (b *Bag) UnmarshalBinary(data []byte) error {
	var n, offset int

	idStr, n, err := rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("decoding diag.Bag: run ID: %w", err)
	}
	offset += n

	id, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("decoding diag.Bag: invalid run ID: %w", err)
	}

	count, n, err := rezi.DecInt(data[offset:])
	if err != nil {
		return fmt.Errorf("decoding diag.Bag: item count: %w", err)
	}
	offset += n

	items := make([]Diagnostic, count)
	for i := 0; i < count; i++ {
		var rec diagRecord
		n, err := rezi.DecBinary(data[offset:], &rec)
		if err != nil {
			return fmt.Errorf("decoding diag.Bag: item %d: %w", i, err)
		}
		offset += n
		items[i] = Diagnostic{
			sev:  Severity(rec.Sev),
			kind: Kind(rec.Kind),
			msg:  rec.Msg,
			pos:  Position{File: rec.File, Line: rec.Line, Col: rec.Col},
		}
	}

	b.RunID = id
	b.items = items
	return nil
}
