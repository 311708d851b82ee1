package moderation

// Request is the outbound call to the external classifier.
type Request struct {
	Text           string
	Model          Model // must be concrete
	EnabledLabels  []Label
	IncludeContext bool
}

// Result is what the external classifier returns for one text.
type Result struct {
	Flagged       bool
	Labels        []Label
	Scores        map[Label]float32
	NeedsContext  bool    // classifier signaled ambiguity
	ContextLabels []Label // labels the ambiguity applies to, if reported
}

// Policy is the slice of guild configuration the decision step needs.
type Policy struct {
	EnabledLabels       []Label
	Actions             []Action
	EnableContext       bool
	ContextHistoryCount int
}

// Decision is the outcome of interpreting one classification result
// against a guild's policy. It is constructed once per classification
// call and not mutated afterwards.
type Decision struct {
	Flagged             bool
	Labels              []Label // active labels, in declaration order
	Scores              map[Label]float32
	Actions             []Action // empty when not flagged
	NeedsContext        bool
	ContextHistoryCount int // prior messages to gather when NeedsContext
	ContextLabels       []Label
}

// Decide interprets a classification result against a policy.
//
// Active labels are the intersection of the classifier's flagged labels
// with the policy's enabled set; labels outside the enabled set are
// ignored even if the classifier flagged them, and the classifier's own
// Flagged bit is not trusted. The configured action set applies uniformly
// to any flagged message. NeedsContext only advises the caller to run a
// context-aware second pass; Decide never re-invokes anything itself and
// is safe to call again with the second-pass result.
func Decide(res Result, pol Policy) Decision {
	enabled := make(map[Label]bool, len(pol.EnabledLabels))
	for _, l := range pol.EnabledLabels {
		enabled[l] = true
	}
	reported := make(map[Label]bool, len(res.Labels))
	for _, l := range res.Labels {
		reported[l] = true
	}

	// Intersect in declaration order for deterministic output.
	var active []Label
	activeSet := make(map[Label]bool)
	for _, l := range AllLabels() {
		if enabled[l] && reported[l] {
			active = append(active, l)
			activeSet[l] = true
		}
	}

	d := Decision{
		Flagged: len(active) > 0,
		Labels:  active,
		Scores:  res.Scores,
	}
	if d.Flagged {
		d.Actions = append([]Action(nil), pol.Actions...)
	}

	if pol.EnableContext && res.NeedsContext {
		if len(res.ContextLabels) > 0 {
			for _, l := range res.ContextLabels {
				if activeSet[l] {
					d.NeedsContext = true
					break
				}
			}
		} else {
			// No per-label ambiguity reported: the signal applies to
			// whatever is active.
			d.NeedsContext = d.Flagged
		}
	}
	if d.NeedsContext {
		d.ContextHistoryCount = pol.ContextHistoryCount
		d.ContextLabels = append([]Label(nil), res.ContextLabels...)
	}

	return d
}
