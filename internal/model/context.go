package model

// GoalBuckets partitions user-supplied survey goals by priority. Bucket
// membership drives per-goal question quotas during generation.
type GoalBuckets struct {
	MustHave     []string `json:"must_have"`
	Interested   []string `json:"interested"`
	NotImportant []string `json:"not_important"`
}

// Empty reports whether no goals were supplied in any bucket.
func (g GoalBuckets) Empty() bool {
	return len(g.MustHave) == 0 && len(g.Interested) == 0 && len(g.NotImportant) == 0
}

// SurveyContext is the immutable caller-supplied input to generation.
// AdditionalContext is advisory only and is never parsed into questions.
type SurveyContext struct {
	EventType          string      `json:"event_type"`
	EventName          string      `json:"event_name"`
	Goals              GoalBuckets `json:"goals"`
	LearningObjectives string      `json:"learning_objectives"`
	Audience           string      `json:"audience"`
	Timing             string      `json:"timing"`
	AdditionalContext  string      `json:"additional_context"`
}

// ContextAnalysis is the normalized analysis record derived once per
// generation request. FocusAreas are deduplicated case-insensitively,
// preserving first-seen order. TargetCount is clamped to the configured
// survey bounds.
type ContextAnalysis struct {
	FocusAreas        []string `json:"focus_areas"`
	TargetCount       int      `json:"target_count"`
	EventType         string   `json:"event_type"`
	EventName         string   `json:"event_name"`
	Audience          string   `json:"audience"`
	Timing            string   `json:"timing"`
	AdditionalContext string   `json:"additional_context"`
}
