package reason

import (
	"encoding/json"
	"fmt"
)

// Raw is one entry as it appears in the source dataset: either a bare string
// or a partially labeled object. Missing labels are filled by Normalize.
type Raw struct {
	ID    string   `json:"id,omitempty"`
	Text  string   `json:"reason"`
	Type  Type     `json:"type,omitempty"`
	Tone  Tone     `json:"tone,omitempty"`
	Topic Topic    `json:"topic,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// UnmarshalJSON accepts both the bare-string and the object form.
func (r *Raw) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*r = Raw{Text: text}
		return nil
	}

	type plain Raw
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Raw(p)
	return nil
}

// MalformedRecordError marks a source entry without usable reason text.
// One malformed entry rejects the whole batch: silently dropping records
// would shift ids and break permalink stability.
type MalformedRecordError struct {
	Index int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("record %d has no reason text", e.Index)
}

// Normalize converts raw source entries into canonical records: text is
// required, labels default to their fallbacks, tags default to an empty set,
// and a missing id is derived from the text. It does not classify; run the
// labeler for that.
func Normalize(raw []Raw) (Corpus, error) {
	corpus := make(Corpus, 0, len(raw))
	for i, entry := range raw {
		if entry.Text == "" {
			return nil, &MalformedRecordError{Index: i}
		}

		r := Reason{
			ID:    entry.ID,
			Text:  entry.Text,
			Type:  entry.Type,
			Tone:  entry.Tone,
			Topic: entry.Topic,
			Tags:  entry.Tags,
		}
		if r.ID == "" {
			r.ID = HashID(r.Text)
		}
		if r.Type == "" {
			r.Type = FallbackType
		}
		if r.Tone == "" {
			r.Tone = FallbackTone
		}
		if r.Topic == "" {
			r.Topic = FallbackTopic
		}
		if r.Tags == nil {
			r.Tags = []string{}
		}
		corpus = append(corpus, r)
	}
	return corpus, nil
}
