package analytics

// Fixed mood -> 1..5 score lookup shared by the trend aggregator and the
// heatmap generator. Unmapped moods score 3.
var moodScores = map[string]int{
	"energized":  5,
	"happy":      5,
	"proud":      5,
	"excited":    5,
	"calm":       4,
	"relaxed":    4,
	"grateful":   4,
	"neutral":    3,
	"tired":      2,
	"bored":      2,
	"stressed":   2,
	"frustrated": 2,
	"anxious":    2,
	"sad":        1,
	"angry":      1,
	"depressed":  1,
}

// MoodScore returns the 1..5 score for a mood label, defaulting to 3.
func MoodScore(mood string) int {
	if s, ok := moodScores[mood]; ok {
		return s
	}
	return 3
}
