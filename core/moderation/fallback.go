package moderation

import "github.com/tumaini/malengo/core/goal"

// fallbackQuestions are the static guiding questions served when the provider
// is unavailable or returned an approved verdict with no usable questions.
// Exactly 5 per principle.
var fallbackQuestions = map[goal.PrincipleID][]string{
	goal.PrincipleIMatter: {
		"What is one positive habit you want to build?",
		"When will you practice it each day?",
		"How will you remind yourself to do it?",
		"How will you track your progress this week?",
		"What will you do if you miss a day?",
	},
	goal.PrincipleResponsibility: {
		"What responsibility are you trying to improve?",
		"When exactly will you do it each day?",
		"What is the first small step you can start with?",
		"How will you prove you completed it?",
		"What might distract you, and how will you handle it?",
	},
	goal.PrincipleConsiderate: {
		"Who do you want to be more considerate toward?",
		"What is one kind action you can do this week?",
		"When and where will you do it?",
		"How will you know it helped the other person?",
		"What will you do if you feel impatient or annoyed?",
	},
	goal.PrincipleStrategies: {
		"What goal are you trying to reach?",
		"What are the 3 smallest steps to start?",
		"When will you do step 1?",
		"What tool will you use to stay organized (planner, notes, timer)?",
		"How will you measure progress by the end of the week?",
	},
}

// FallbackQuestions returns a copy of the static question set for id.
func FallbackQuestions(id goal.PrincipleID) []string {
	qs := fallbackQuestions[id]
	out := make([]string, len(qs))
	copy(out, qs)
	return out
}
