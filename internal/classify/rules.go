package classify

// WeightedPhrase is one trigger inside a rule. Single words match as whole
// tokens; phrases containing a space match as substrings of the normalized
// text.
type WeightedPhrase struct {
	Phrase string
	Weight int
}

// Rule accumulates the weights of every matching phrase for one label.
// Rule order is significant: on tied scores the earlier label wins.
type Rule struct {
	Label   string
	Phrases []WeightedPhrase
}

var topicRules = []Rule{
	{Label: "work", Phrases: []WeightedPhrase{
		{"work", 2}, {"job", 2}, {"boss", 3}, {"meeting", 2}, {"deadline", 3}, {"project", 1},
	}},
	{Label: "school", Phrases: []WeightedPhrase{
		{"school", 2}, {"class", 2}, {"exam", 3}, {"homework", 3}, {"teacher", 2},
	}},
	{Label: "social", Phrases: []WeightedPhrase{
		{"party", 3}, {"hang", 2}, {"friends", 2}, {"invite", 2}, {"social", 2},
	}},
	{Label: "family", Phrases: []WeightedPhrase{
		{"family", 2}, {"mom", 2}, {"dad", 2}, {"parents", 2}, {"kids", 2}, {"children", 2},
	}},
	{Label: "health", Phrases: []WeightedPhrase{
		{"sick", 3}, {"ill", 2}, {"flu", 3}, {"doctor", 3}, {"hospital", 3}, {"allergy", 2},
	}},
	{Label: "time", Phrases: []WeightedPhrase{
		{"busy", 2}, {"schedule", 3}, {"calendar", 3}, {"booked", 3},
	}},
	{Label: "travel", Phrases: []WeightedPhrase{
		{"travel", 2}, {"trip", 2}, {"flight", 3}, {"airport", 3}, {"drive", 1},
	}},
	{Label: "weather", Phrases: []WeightedPhrase{
		{"weather", 2}, {"rain", 3}, {"snow", 3}, {"storm", 3}, {"forecast", 2}, {"cold", 2}, {"hot", 2},
	}},
	{Label: "money", Phrases: []WeightedPhrase{
		{"money", 2}, {"budget", 3}, {"rent", 3}, {"broke", 3}, {"expensive", 2}, {"cash", 2},
	}},
	{Label: "tech", Phrases: []WeightedPhrase{
		{"computer", 2}, {"internet", 2}, {"wifi", 2}, {"server", 3}, {"code", 2}, {"deploy", 2},
	}},
	{Label: "pets", Phrases: []WeightedPhrase{
		{"cat", 3}, {"dog", 3}, {"pet", 2}, {"hamster", 3}, {"goldfish", 3},
	}},
	{Label: "food", Phrases: []WeightedPhrase{
		{"food", 2}, {"lunch", 2}, {"dinner", 2}, {"snack", 2}, {"coffee", 2}, {"tea", 2},
	}},
	{Label: "self-care", Phrases: []WeightedPhrase{
		{"self-care", 3}, {"recharge", 2}, {"rest", 1}, {"me-time", 2}, {"burnout", 3},
	}},
	{Label: "sleep", Phrases: []WeightedPhrase{
		{"sleep", 2}, {"nap", 2}, {"tired", 2}, {"bed", 1}, {"pillow", 1},
	}},
	{Label: "mental", Phrases: []WeightedPhrase{
		{"anxiety", 3}, {"mental", 2}, {"stress", 2}, {"overwhelm", 2}, {"therapy", 3},
	}},
}

var toneRules = []Rule{
	{Label: "polite", Phrases: []WeightedPhrase{
		{"sorry", 2}, {"apologies", 2}, {"apologize", 2}, {"appreciate", 2}, {"unfortunately", 3}, {"regret", 2},
	}},
	{Label: "playful", Phrases: []WeightedPhrase{
		{"lol", 2}, {"haha", 2}, {"nope", 2}, {"nah", 2}, {"dawg", 2},
	}},
	{Label: "formal", Phrases: []WeightedPhrase{
		{"dear", 2}, {"sincerely", 3}, {"regards", 2}, {"respectfully", 3},
	}},
	{Label: "sarcastic", Phrases: []WeightedPhrase{
		{"yeah right", 3}, {"as if", 3}, {"sure", 1}, {"totally", 1},
	}},
	{Label: "blunt", Phrases: []WeightedPhrase{
		{"never", 2}, {"not happening", 3}, {"absolutely not", 3},
	}},
	{Label: "empathetic", Phrases: []WeightedPhrase{
		{"i understand", 3}, {"i hear you", 3}, {"i feel", 1}, {"boundaries", 2},
	}},
}

var typeRules = []Rule{
	{Label: "professional", Phrases: []WeightedPhrase{
		{"meeting", 2}, {"deadline", 3}, {"project", 2}, {"office", 2}, {"boss", 3},
	}},
	{Label: "whimsical", Phrases: []WeightedPhrase{
		{"wizard", 3}, {"dragon", 3}, {"mana", 2}, {"unicorn", 3}, {"fairy", 3}, {"magic", 2},
	}},
	{Label: "absurd", Phrases: []WeightedPhrase{
		{"alien", 3}, {"parallel universe", 3}, {"time travel", 3}, {"lava", 2},
	}},
	{Label: "personal", Phrases: []WeightedPhrase{
		{"boundary", 2}, {"self-care", 3}, {"mental", 2},
	}},
	{Label: "meta", Phrases: []WeightedPhrase{
		{"no is", 2}, {"saying no", 2}, {"decline", 2}, {"refuse", 2},
	}},
	{Label: "practical", Phrases: []WeightedPhrase{
		{"schedule", 2}, {"busy", 2}, {"calendar", 3}, {"time", 1},
	}},
}

// TagRule adds its tag whenever any trigger matches. Triggers follow the
// same token/phrase matching rule as classification phrases.
type TagRule struct {
	Tag      string
	Triggers []string
}

var tagRules = []TagRule{
	{Tag: "couch", Triggers: []string{"couch", "sofa"}},
	{Tag: "nap", Triggers: []string{"nap"}},
	{Tag: "meeting", Triggers: []string{"meeting"}},
	{Tag: "deadline", Triggers: []string{"deadline"}},
	{Tag: "calendar", Triggers: []string{"calendar", "schedule"}},
	{Tag: "party", Triggers: []string{"party"}},
	{Tag: "weather", Triggers: []string{"rain", "snow", "storm"}},
	{Tag: "pet", Triggers: []string{"cat", "dog", "pet"}},
	{Tag: "food", Triggers: []string{"food", "lunch", "dinner", "snack"}},
	{Tag: "sleep", Triggers: []string{"sleep", "tired", "bed"}},
	{Tag: "self-care", Triggers: []string{"self-care", "recharge"}},
	{Tag: "travel", Triggers: []string{"travel", "trip", "flight", "airport"}},
	{Tag: "work", Triggers: []string{"work", "job", "boss", "office"}},
	{Tag: "school", Triggers: []string{"school", "class", "homework", "exam"}},
	{Tag: "money", Triggers: []string{"budget", "broke", "money", "rent"}},
	{Tag: "tech", Triggers: []string{"server", "code", "deploy", "wifi", "internet"}},
}
