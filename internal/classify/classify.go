// Package classify assigns type, tone, topic, and tags to raw excuse text
// using weighted lexical rules. Classification is pure and deterministic:
// the same text and the same rule tables always produce the same labels.
package classify

import (
	"sort"
	"strings"

	"github.com/kindled/noaas/internal/reason"
)

// Result is the outcome of classifying one text.
type Result struct {
	Type  reason.Type
	Tone  reason.Tone
	Topic reason.Topic
	Tags  []string

	// Confidence holds the winning raw scores, useful when reviewing
	// labeler output. Not persisted.
	Confidence Confidence
}

// Confidence records the accumulated rule score per dimension plus the
// sentiment polarity of the text.
type Confidence struct {
	Type      int
	Tone      int
	Topic     int
	Sentiment int
}

// Classify labels a single reason text.
func Classify(text string) Result {
	normalized := normalize(text)
	tokens := tokenize(normalized)

	topic, topicScore := score(normalized, tokens, topicRules, string(reason.FallbackTopic))
	tone, toneScore := score(normalized, tokens, toneRules, string(reason.FallbackTone))
	typ, typeScore := score(normalized, tokens, typeRules, string(reason.FallbackType))

	// Sentiment only ever promotes the fallback tone; a rule-matched tone
	// is never overridden.
	polarity := sentimentScore(tokens)
	if tone == string(reason.FallbackTone) {
		switch {
		case polarity >= sentimentThreshold:
			tone = string(reason.TonePlayful)
		case polarity <= -sentimentThreshold:
			tone = string(reason.ToneBlunt)
		}
	}

	return Result{
		Type:  reason.Type(typ),
		Tone:  reason.Tone(tone),
		Topic: reason.Topic(topic),
		Tags:  deriveTags(normalized, tokens, topic),
		Confidence: Confidence{
			Type:      typeScore,
			Tone:      toneScore,
			Topic:     topicScore,
			Sentiment: polarity,
		},
	}
}

// Apply relabels a record in place, assigning an id when missing. Reapplying
// to an already labeled record reproduces the same labels.
func Apply(r reason.Reason) reason.Reason {
	res := Classify(r.Text)
	r.Type = res.Type
	r.Tone = res.Tone
	r.Topic = res.Topic
	r.Tags = res.Tags
	if r.ID == "" {
		r.ID = reason.HashID(r.Text)
	}
	return r
}

// normalize lowercases and strips every character outside [a-z0-9 -] so
// punctuation cannot defeat keyword matches.
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, ch := range strings.ToLower(text) {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9', ch == '-':
			b.WriteRune(ch)
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func tokenize(normalized string) map[string]bool {
	tokens := make(map[string]bool)
	for _, t := range strings.Fields(normalized) {
		tokens[t] = true
	}
	return tokens
}

// matchPhrase applies the shared matching rule: single words are exact token
// hits, multi-word phrases are substring hits on the normalized text.
func matchPhrase(normalized string, tokens map[string]bool, phrase string) bool {
	needle := strings.TrimSpace(strings.ToLower(phrase))
	if needle == "" {
		return false
	}
	if strings.Contains(needle, " ") {
		return strings.Contains(normalized, needle)
	}
	return tokens[needle]
}

// score sums matching phrase weights per rule and returns the label with the
// strictly highest total. Ties keep the earlier winner, and an all-zero board
// keeps the fallback.
func score(normalized string, tokens map[string]bool, rules []Rule, fallback string) (string, int) {
	bestLabel, bestScore := fallback, 0
	for _, rule := range rules {
		total := 0
		for _, p := range rule.Phrases {
			if matchPhrase(normalized, tokens, p.Phrase) {
				total += p.Weight
			}
		}
		if total > bestScore {
			bestLabel, bestScore = rule.Label, total
		}
	}
	return bestLabel, bestScore
}

// deriveTags builds the tag set: the resolved topic (unless it is the
// fallback) plus every tag whose trigger matches. Output is sorted so that
// relabeling is byte-stable.
func deriveTags(normalized string, tokens map[string]bool, topic string) []string {
	set := make(map[string]bool)
	if topic != string(reason.FallbackTopic) {
		set[topic] = true
	}
	for _, tr := range tagRules {
		for _, trigger := range tr.Triggers {
			if matchPhrase(normalized, tokens, trigger) {
				set[tr.Tag] = true
				break
			}
		}
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
