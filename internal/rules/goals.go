package rules

// GoalTemplate is a suggested survey goal shown to organizers when they
// create a survey for a phase.
type GoalTemplate struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PhaseInfo describes a phase for organizer-facing UI copy.
type PhaseInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Outcomes    string `json:"outcomes"`
}

var goalTemplates = map[Phase][]GoalTemplate{
	PhasePlan: {
		{ID: "goal-1", Text: "Understand target audience preferences"},
		{ID: "goal-2", Text: "Gauge interest in potential lineup"},
		{ID: "goal-3", Text: "Assess pricing sensitivity"},
		{ID: "goal-4", Text: "Identify preferred event dates/times"},
		{ID: "goal-5", Text: "Evaluate venue preferences"},
		{ID: "goal-6", Text: "Measure brand awareness"},
		{ID: "goal-7", Text: "Assess marketing channel effectiveness"},
	},
	PhasePulse: {
		{ID: "goal-1", Text: "Track real-time attendee sentiment"},
		{ID: "goal-2", Text: "Monitor campaign engagement"},
		{ID: "goal-3", Text: "Gather pre-event feedback"},
		{ID: "goal-4", Text: "Assess ticket sales drivers"},
		{ID: "goal-5", Text: "Identify last-minute concerns"},
		{ID: "goal-6", Text: "Measure social media buzz"},
		{ID: "goal-7", Text: "Evaluate promotional effectiveness"},
	},
	PhasePlayback: {
		{ID: "goal-1", Text: "Measure overall event satisfaction"},
		{ID: "goal-2", Text: "Evaluate lineup performance"},
		{ID: "goal-3", Text: "Assess venue experience"},
		{ID: "goal-4", Text: "Gather improvement suggestions"},
		{ID: "goal-5", Text: "Measure value for money"},
		{ID: "goal-6", Text: "Collect testimonials"},
		{ID: "goal-7", Text: "Understand return attendance likelihood"},
	},
}

var phaseInfo = map[Phase]PhaseInfo{
	PhasePlan: {
		Name:        "Plan",
		Description: "Pre-launch surveys to understand your audience and plan your event effectively.",
		Outcomes:    "You'll get insights on audience preferences, pricing sensitivity, preferred dates, and lineup interest to help you make data-driven decisions before launch.",
	},
	PhasePulse: {
		Name:        "Pulse",
		Description: "Real-time surveys during your campaign to track engagement and sentiment.",
		Outcomes:    "You'll get real-time feedback on campaign performance, attendee sentiment, ticket sales drivers, and promotional effectiveness to optimize your campaign on the fly.",
	},
	PhasePlayback: {
		Name:        "Playback",
		Description: "Post-event surveys to measure satisfaction and gather feedback for future improvements.",
		Outcomes:    "You'll get comprehensive feedback on event satisfaction, lineup performance, venue experience, and improvement suggestions to make your next event even better.",
	},
}

// GoalTemplates returns the suggested goals for a phase, or nil for an
// unknown phase.
func GoalTemplates(phase Phase) []GoalTemplate {
	return goalTemplates[phase]
}

// Info returns UI copy for a phase. Unknown phases echo the phase name
// with empty copy.
func Info(phase Phase) PhaseInfo {
	if info, ok := phaseInfo[phase]; ok {
		return info
	}
	return PhaseInfo{Name: string(phase)}
}
