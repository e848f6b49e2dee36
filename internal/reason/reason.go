package reason

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Type classifies the register of an excuse.
type Type string

const (
	TypeGeneral      Type = "general"
	TypeProfessional Type = "professional"
	TypePersonal     Type = "personal"
	TypePractical    Type = "practical"
	TypeWhimsical    Type = "whimsical"
	TypeAbsurd       Type = "absurd"
	TypeMeta         Type = "meta"
)

// Tone classifies how an excuse is delivered.
type Tone string

const (
	ToneNeutral    Tone = "neutral"
	TonePolite     Tone = "polite"
	TonePlayful    Tone = "playful"
	ToneSarcastic  Tone = "sarcastic"
	ToneBlunt      Tone = "blunt"
	ToneEmpathetic Tone = "empathetic"
	ToneFormal     Tone = "formal"
)

// Topic classifies what an excuse is about.
type Topic string

const (
	TopicWork     Topic = "work"
	TopicSchool   Topic = "school"
	TopicSocial   Topic = "social"
	TopicFamily   Topic = "family"
	TopicHealth   Topic = "health"
	TopicMental   Topic = "mental"
	TopicSelfCare Topic = "self-care"
	TopicSleep    Topic = "sleep"
	TopicTravel   Topic = "travel"
	TopicWeather  Topic = "weather"
	TopicMoney    Topic = "money"
	TopicTech     Topic = "tech"
	TopicPets     Topic = "pets"
	TopicFood     Topic = "food"
	TopicTime     Topic = "time"
	TopicGeneral  Topic = "general"
)

// Fallback labels used when classification finds no signal.
const (
	FallbackType  = TypeGeneral
	FallbackTone  = ToneNeutral
	FallbackTopic = TopicGeneral
)

// AllTypes returns every type label in declaration order.
func AllTypes() []Type {
	return []Type{
		TypeGeneral, TypeProfessional, TypePersonal, TypePractical,
		TypeWhimsical, TypeAbsurd, TypeMeta,
	}
}

// AllTones returns every tone label in declaration order.
func AllTones() []Tone {
	return []Tone{
		ToneNeutral, TonePolite, TonePlayful, ToneSarcastic,
		ToneBlunt, ToneEmpathetic, ToneFormal,
	}
}

// AllTopics returns every topic label in declaration order.
func AllTopics() []Topic {
	return []Topic{
		TopicWork, TopicSchool, TopicSocial, TopicFamily, TopicHealth,
		TopicMental, TopicSelfCare, TopicSleep, TopicTravel, TopicWeather,
		TopicMoney, TopicTech, TopicPets, TopicFood, TopicTime, TopicGeneral,
	}
}

// Reason is one labeled excuse record. Text is immutable once an ID has been
// assigned: changing the text means hashing to a different record.
type Reason struct {
	ID    string   `json:"id"`
	Text  string   `json:"reason"`
	Type  Type     `json:"type"`
	Tone  Tone     `json:"tone"`
	Topic Topic    `json:"topic"`
	Tags  []string `json:"tags"`
}

// HasTag reports whether the record carries the given tag (case-insensitive).
func (r Reason) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Corpus is the full ordered collection of reason records. Order is stable
// for deterministic tests but carries no meaning for selection.
type Corpus []Reason

// ByID returns the record with the given id, if present.
func (c Corpus) ByID(id string) (Reason, bool) {
	for _, r := range c {
		if r.ID == id {
			return r, true
		}
	}
	return Reason{}, false
}

// idLength is the number of hex characters kept from the content digest.
const idLength = 15

// HashID derives the stable short identifier for a reason text.
func HashID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%x", sum)[:idLength]
}
