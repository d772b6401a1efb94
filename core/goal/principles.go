package goal

// PrincipleID identifies one of the four RICH behavioral principles
// a goal must align to.
type PrincipleID string

const (
	PrincipleIMatter        PrincipleID = "i-matter"
	PrincipleResponsibility PrincipleID = "responsibility"
	PrincipleConsiderate    PrincipleID = "considerate"
	PrincipleStrategies     PrincipleID = "strategies"
)

type Principle struct {
	Name    string `json:"name"`
	Context string `json:"context"`
}

var Principles = map[PrincipleID]Principle{
	PrincipleIMatter: {
		Name:    "I Matter",
		Context: "Self-worth, confidence, healthy habits, positive self-talk.",
	},
	PrincipleResponsibility: {
		Name:    "Responsibility",
		Context: "Ownership, commitments, time management, finishing work before fun.",
	},
	PrincipleConsiderate: {
		Name:    "Considerate",
		Context: "Kindness, empathy, listening, helping others respectfully.",
	},
	PrincipleStrategies: {
		Name:    "Strategies",
		Context: "Planning, breaking tasks into steps, study and organization skills.",
	},
}

// ValidPrinciple reports whether id is one of the four known principles.
func ValidPrinciple(id PrincipleID) bool {
	_, ok := Principles[id]
	return ok
}
