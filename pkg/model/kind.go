package model

import "strings"

// Name fragments used to classify relationship endpoints that were never
// declared as elements. These mirror the common vocabulary of the models the
// tool is fed; anything unmatched defaults to a structural part.
var (
	actorSuffixes = []string{"Operator", "User", "Admin", "Actor", "Pilot", "Engineer", "Technician"}

	useCaseVerbs = []string{"Inspect", "Monitor", "Manage", "Control", "Perform", "Operate", "Analyze", "Plan", "Track"}

	subjectMarkers = []string{"SoI", "Subject"}
)

// InferKind guesses the kind of an element from its name alone.
// Used when a relationship references an ID with no matching element, so the
// graph can materialize a placeholder instead of rejecting the input.
func InferKind(name string) ElementKind {
	for _, m := range subjectMarkers {
		if strings.Contains(name, m) {
			return KindSubject
		}
	}
	for _, s := range actorSuffixes {
		if strings.HasSuffix(name, s) {
			return KindActor
		}
	}
	for _, v := range useCaseVerbs {
		if strings.HasPrefix(name, v) {
			return KindUseCase
		}
	}
	return KindPart
}
