package services

// ActorResolver picks the user recorded as creator/poster of an accounting
// entry. Candidates are tried in order; the configured system actor is the
// last resort and is set once at startup.
type ActorResolver struct {
	systemActorID string
}

// NewActorResolver creates a resolver with the given system actor (may be empty).
func NewActorResolver(systemActorID string) ActorResolver {
	return ActorResolver{systemActorID: systemActorID}
}

// Resolve returns the first non-empty candidate, else the system actor, else ErrNoActor.
func (r ActorResolver) Resolve(candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return c, nil
		}
	}
	if r.systemActorID != "" {
		return r.systemActorID, nil
	}
	return "", ErrNoActor
}
