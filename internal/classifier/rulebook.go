package classifier

import (
	"gopkg.in/yaml.v3"

	"github.com/habitloop/habitloop-backend/internal/types"
)

// ActivityRule maps a phrase set to a canonical activity record. Rules are
// evaluated in order and the first match wins. A rule matches when any phrase
// is a case-insensitive substring of the input and, when AlsoNeeds is set,
// any of those phrases hits too.
type ActivityRule struct {
	Phrases   []string `yaml:"phrases"`
	AlsoNeeds []string `yaml:"also_needs,omitempty"`
	Activity  string   `yaml:"activity"`
	Type      string   `yaml:"type"`
	Category  string   `yaml:"category"`
}

// TriggerRule maps a phrase set to a cause label. CaptureClause rules try to
// lift the clause following the causal connective out of the original text.
type TriggerRule struct {
	Phrases       []string `yaml:"phrases"`
	Trigger       string   `yaml:"trigger"`
	CaptureClause bool     `yaml:"capture_clause,omitempty"`
}

type MoodRule struct {
	Mood    string   `yaml:"mood"`
	Phrases []string `yaml:"phrases"`
}

// TagRule groups are independent checks: every group that matches contributes
// its tag, so the checks are not first-match-wins.
type TagRule struct {
	Tag     string   `yaml:"tag"`
	Phrases []string `yaml:"phrases"`
}

// CategoryRule maps substrings of the resolved activity to a category label.
type CategoryRule struct {
	Category string   `yaml:"category"`
	Phrases  []string `yaml:"phrases"`
}

// Rulebook is the full deterministic extraction table. The compiled-in table
// below is authoritative; the YAML tags exist so the book can be dumped and
// inspected (see cmd/rulebook).
type Rulebook struct {
	Activities    []ActivityRule `yaml:"activities"`
	Triggers      []TriggerRule  `yaml:"triggers"`
	Moods         []MoodRule     `yaml:"moods"`
	PositiveWords []string       `yaml:"positive_words"`
	NegativeWords []string       `yaml:"negative_words"`
	Tags          []TagRule      `yaml:"tags"`
	Categories    []CategoryRule `yaml:"categories"`
}

func (rb *Rulebook) YAML() ([]byte, error) {
	return yaml.Marshal(rb)
}

func ParseRulebook(data []byte) (*Rulebook, error) {
	var rb Rulebook
	if err := yaml.Unmarshal(data, &rb); err != nil {
		return nil, err
	}
	return &rb, nil
}

// DefaultRulebook returns the compiled-in extraction table. Rule order is
// significant: negative behaviors, then emotional events, then family
// conflict, then positive activities.
func DefaultRulebook() *Rulebook {
	return &Rulebook{
		Activities: []ActivityRule{
			// Negative behaviors
			{
				Phrases:  []string{"skipped school", "skipped class", "skipped work", "didn't go to school", "didn't go to work", "called in sick", "ditched class"},
				Activity: "skipped obligations", Type: types.EntryTypeNegative, Category: "productivity",
			},
			{
				Phrases:  []string{"procrastinat", "put off", "avoided work", "wasted the day", "scrolled all day", "doomscroll"},
				Activity: "procrastinate", Type: types.EntryTypeNegative, Category: "productivity",
			},
			{
				Phrases:  []string{"stayed up all night", "stayed up late", "couldn't sleep", "can't sleep", "insomnia", "slept at 3", "barely slept", "all-nighter"},
				Activity: "poor sleep", Type: types.EntryTypeNegative, Category: "sleep",
			},
			{
				Phrases:  []string{"binge", "overate", "ate too much", "skipped meals", "skipped breakfast", "skipped lunch", "skipped dinner", "didn't eat", "junk food"},
				Activity: "unhealthy eating", Type: types.EntryTypeNegative, Category: "nutrition",
			},
			{
				Phrases:  []string{"argued", "argument", "got into a fight", "yelled at", "screamed at", "broke up"},
				Activity: "conflict", Type: types.EntryTypeNegative, Category: "relationships",
			},
			{
				Phrases:  []string{"got drunk", "drank too much", "hungover", "beer", "wine", "vodka", "alcohol", "smoked", "cigarette", "vape", "weed"},
				Activity: "substance use", Type: types.EntryTypeNegative, Category: "health",
			},
			// Emotional events
			{
				Phrases:  []string{"panic attack", "anxiety attack", "panicking", "hyperventilat"},
				Activity: "panic attack", Type: types.EntryTypeEmotional, Category: "mental health",
			},
			{
				Phrases:  []string{"cried", "crying", "burst into tears", "teared up"},
				Activity: "crying", Type: types.EntryTypeEmotional, Category: "mental health",
			},
			{
				Phrases:  []string{"depressed", "hopeless", "worthless", "empty inside", "numb all day"},
				Activity: "low mood", Type: types.EntryTypeEmotional, Category: "mental health",
			},
			// Family conflict: needs a family reference and a conflict word
			{
				Phrases:   []string{"mom", "mother", "dad", "father", "parents", "sister", "brother"},
				AlsoNeeds: []string{"fight", "fought", "argu", "yell", "scream", "conflict", "mad at", "angry at"},
				Activity:  "family conflict", Type: types.EntryTypeEmotional, Category: "relationships",
			},
			// Positive activities
			{
				Phrases:  []string{"ran", "went for a run", "jogged", "jogging", "sprint"},
				Activity: "run", Type: types.EntryTypePositive, Category: "exercise",
			},
			{
				Phrases:  []string{"walked", "went for a walk", "took a walk", "hiked", "hiking"},
				Activity: "walk", Type: types.EntryTypePositive, Category: "exercise",
			},
			{
				Phrases:  []string{"gym", "workout", "worked out", "lifted", "lifting", "exercised"},
				Activity: "workout", Type: types.EntryTypePositive, Category: "exercise",
			},
			{
				Phrases:  []string{"yoga", "stretched", "stretching"},
				Activity: "yoga", Type: types.EntryTypePositive, Category: "exercise",
			},
			{
				Phrases:  []string{"swam", "swimming", "went swimming"},
				Activity: "swim", Type: types.EntryTypePositive, Category: "exercise",
			},
			{
				Phrases:  []string{"cycled", "cycling", "biked", "rode my bike"},
				Activity: "cycling", Type: types.EntryTypePositive, Category: "exercise",
			},
			{
				Phrases:  []string{"meditat", "mindfulness"},
				Activity: "meditate", Type: types.EntryTypePositive, Category: "mindfulness",
			},
			{
				Phrases:  []string{"journal", "wrote in my diary", "gratitude list"},
				Activity: "journal", Type: types.EntryTypePositive, Category: "mindfulness",
			},
			{
				Phrases:  []string{"breathing exercise", "deep breaths", "breathwork"},
				Activity: "breathing exercise", Type: types.EntryTypePositive, Category: "mindfulness",
			},
			{
				Phrases:  []string{"studied", "studying", "revised for"},
				Activity: "study", Type: types.EntryTypePositive, Category: "learning",
			},
			{
				Phrases:  []string{"read", "reading", "finished a chapter"},
				Activity: "read", Type: types.EntryTypePositive, Category: "learning",
			},
			{
				Phrases:  []string{"deep work", "focused work", "finished my tasks", "cleared my inbox", "worked on"},
				Activity: "focused work", Type: types.EntryTypePositive, Category: "productivity",
			},
			{
				Phrases:  []string{"water", "hydrated", "hydration"},
				Activity: "drink water", Type: types.EntryTypePositive, Category: "nutrition",
			},
			{
				Phrases:  []string{"cooked", "healthy meal", "meal prep", "salad", "ate clean"},
				Activity: "healthy eating", Type: types.EntryTypePositive, Category: "nutrition",
			},
		},
		Triggers: []TriggerRule{
			{Phrases: []string{"mom", "mother", "dad", "father"}, Trigger: "family"},
			{Phrases: []string{"because", "cause", "since"}, Trigger: "stated cause", CaptureClause: true},
			{Phrases: []string{"deadline", "due tomorrow", "due today", "due date", "running out of time"}, Trigger: "deadline pressure"},
			{Phrases: []string{"tired", "exhausted", "no energy", "drained", "no sleep"}, Trigger: "fatigue"},
			{Phrases: []string{"stress", "overwhelm", "under pressure"}, Trigger: "stress"},
			{Phrases: []string{"bored", "boredom", "nothing to do"}, Trigger: "boredom"},
		},
		Moods: []MoodRule{
			{Mood: "energized", Phrases: []string{"energized", "energetic", "pumped", "full of energy"}},
			{Mood: "happy", Phrases: []string{"happy", "great", "amazing", "wonderful", "fantastic", "joy"}},
			{Mood: "calm", Phrases: []string{"calm", "relaxed", "peaceful", "at ease"}},
			{Mood: "proud", Phrases: []string{"proud", "accomplished", "achieved"}},
			{Mood: "tired", Phrases: []string{"tired", "exhausted", "sleepy", "drained"}},
			{Mood: "stressed", Phrases: []string{"stressed", "overwhelmed", "under pressure"}},
			{Mood: "anxious", Phrases: []string{"anxious", "anxiety", "nervous", "worried", "panic", "on edge"}},
			{Mood: "sad", Phrases: []string{"sad", "cried", "crying", "hopeless", "depressed", "miserable", "lonely"}},
			{Mood: "frustrated", Phrases: []string{"frustrated", "annoyed", "angry", "irritated", "failure", "fed up"}},
		},
		PositiveWords: []string{
			"great", "good", "amazing", "happy", "proud", "energized", "accomplished",
			"wonderful", "love", "enjoyed", "better", "calm", "relaxed", "excited",
			"awesome", "fantastic", "refreshed", "grateful",
		},
		NegativeWords: []string{
			"bad", "terrible", "awful", "sad", "tired", "stressed", "anxious", "angry",
			"failure", "hate", "worse", "depressed", "guilty", "frustrated", "hopeless",
			"panic", "cried", "exhausted", "miserable", "lonely", "procrastinat",
		},
		Tags: []TagRule{
			{Tag: "morning", Phrases: []string{"morning", "before work", "after waking", "sunrise"}},
			{Tag: "afternoon", Phrases: []string{"afternoon", "lunch break", "midday"}},
			{Tag: "evening", Phrases: []string{"evening", "tonight", "before bed", "after dinner", "at night"}},
			{Tag: "home", Phrases: []string{"at home", "living room", "my room"}},
			{Tag: "outdoors", Phrases: []string{"outside", "outdoors", "in the park", "fresh air"}},
			{Tag: "work", Phrases: []string{"at work", "at the office", "between meetings"}},
			{Tag: "social", Phrases: []string{"with friends", "with a friend", "with my friend", "with family", "with coworkers"}},
			{Tag: "solo", Phrases: []string{"alone", "by myself", "on my own"}},
			{Tag: "routine", Phrases: []string{"every day", "daily", "as usual", "like always", "every morning", "every night"}},
		},
		Categories: []CategoryRule{
			{Category: "exercise", Phrases: []string{"run", "walk", "swim", "gym", "workout", "yoga", "cycl", "exercise", "sport"}},
			{Category: "mindfulness", Phrases: []string{"meditat", "breath", "journal", "gratitude"}},
			{Category: "learning", Phrases: []string{"read", "study", "learn", "course"}},
			{Category: "nutrition", Phrases: []string{"water", "eat", "meal", "cook", "diet", "food"}},
			{Category: "sleep", Phrases: []string{"sleep", "nap", "rest"}},
			{Category: "productivity", Phrases: []string{"work", "procrastinat", "focus", "task", "project"}},
		},
	}
}
