// Package pick filters the corpus by a constraint set and draws one record
// uniformly at random from whatever survives.
package pick

import (
	"math/rand"
	"strings"

	"github.com/kindled/noaas/internal/reason"
)

// Filter is a transient constraint set. An empty slice means the field is
// unconstrained. Values are matched case-insensitively.
type Filter struct {
	Types  []string
	Tones  []string
	Topics []string
	Tags   []string
}

// IsEmpty reports whether the filter constrains nothing.
func (f Filter) IsEmpty() bool {
	return len(f.Types) == 0 && len(f.Tones) == 0 && len(f.Topics) == 0 && len(f.Tags) == 0
}

// Field names one constrainable dimension of a filter.
type Field string

const (
	FieldType  Field = "type"
	FieldTone  Field = "tone"
	FieldTopic Field = "topic"
	FieldTag   Field = "tag"
)

// With returns a copy of the filter with value added to the given field.
func (f Filter) With(field Field, value string) Filter {
	switch field {
	case FieldType:
		f.Types = append(append([]string(nil), f.Types...), value)
	case FieldTone:
		f.Tones = append(append([]string(nil), f.Tones...), value)
	case FieldTopic:
		f.Topics = append(append([]string(nil), f.Topics...), value)
	case FieldTag:
		f.Tags = append(append([]string(nil), f.Tags...), value)
	}
	return f
}

// Outcome distinguishes a successful draw from the two empty results.
type Outcome int

const (
	// Picked means Result.Reason holds a drawn record.
	Picked Outcome = iota
	// EmptyCorpus means there was nothing loaded to draw from.
	EmptyCorpus
	// NoMatch means the corpus is non-empty but no record passed the
	// filter; the caller should suggest loosening it.
	NoMatch
)

// Result is the three-way outcome of a selection.
type Result struct {
	Outcome Outcome
	Reason  reason.Reason
}

// Matches reports whether a record passes every non-empty constraint field.
// Type, tone, and topic use exact membership; tags match on any overlap.
func Matches(r reason.Reason, f Filter) bool {
	if len(f.Types) > 0 && !containsFold(f.Types, string(r.Type)) {
		return false
	}
	if len(f.Tones) > 0 && !containsFold(f.Tones, string(r.Tone)) {
		return false
	}
	if len(f.Topics) > 0 && !containsFold(f.Topics, string(r.Topic)) {
		return false
	}
	if len(f.Tags) > 0 {
		overlap := false
		for _, want := range f.Tags {
			if r.HasTag(want) {
				overlap = true
				break
			}
		}
		if !overlap {
			return false
		}
	}
	return true
}

// Pick draws uniformly from the filtered corpus using the shared random
// source, which is safe under concurrent callers.
func Pick(c reason.Corpus, f Filter) Result {
	return pick(c, f, rand.Intn)
}

// PickWith draws using the provided source, for deterministic selection.
func PickWith(rng *rand.Rand, c reason.Corpus, f Filter) Result {
	return pick(c, f, rng.Intn)
}

func pick(c reason.Corpus, f Filter, intn func(int) int) Result {
	if len(c) == 0 {
		return Result{Outcome: EmptyCorpus}
	}

	matched := make([]int, 0, len(c))
	for i, r := range c {
		if Matches(r, f) {
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		return Result{Outcome: NoMatch}
	}

	return Result{Outcome: Picked, Reason: c[matched[intn(len(matched))]]}
}

// OptionViable reports whether adding value to field on top of the active
// filter would still match at least one record. Interactive front ends use
// this to gray out options that guarantee an empty result.
func OptionViable(c reason.Corpus, f Filter, field Field, value string) bool {
	extended := f.With(field, value)
	for _, r := range c {
		if Matches(r, extended) {
			return true
		}
	}
	return false
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
