package moderation

import "fmt"

// Label is a moderation category a classifier can flag with a score.
// The string value is the wire code.
type Label string

const (
	LabelSexual       Label = "S"
	LabelHarassment   Label = "H"
	LabelViolence     Label = "V"
	LabelHate         Label = "HR"
	LabelSelfHarm     Label = "SH"
	LabelSexualMinors Label = "S3"
	LabelSpam         Label = "SP"
	LabelSensitive    Label = "SE"
	LabelToxicity     Label = "T"
)

// AllLabels returns every label in declaration order. The order is stable
// and is used wherever deterministic iteration matters.
func AllLabels() []Label {
	return []Label{
		LabelSexual,
		LabelHarassment,
		LabelViolence,
		LabelHate,
		LabelSelfHarm,
		LabelSexualMinors,
		LabelSpam,
		LabelSensitive,
		LabelToxicity,
	}
}

// DefaultLabels returns the labels enabled for a new guild: every label
// except toxicity.
func DefaultLabels() []Label {
	var out []Label
	for _, l := range AllLabels() {
		if l != LabelToxicity {
			out = append(out, l)
		}
	}
	return out
}

// ParseLabel parses a label code. Codes are exact-case ("S", "HR", ...).
func ParseLabel(s string) (Label, error) {
	switch Label(s) {
	case LabelSexual, LabelHarassment, LabelViolence, LabelHate,
		LabelSelfHarm, LabelSexualMinors, LabelSpam, LabelSensitive,
		LabelToxicity:
		return Label(s), nil
	}
	return "", fmt.Errorf("%w: moderation label %q", ErrUnknownVariant, s)
}

// String returns the wire code.
func (l Label) String() string {
	return string(l)
}

// DisplayName returns the human-readable name for the label.
func (l Label) DisplayName() string {
	switch l {
	case LabelSexual:
		return "Sexual"
	case LabelHarassment:
		return "Harassment"
	case LabelViolence:
		return "Violence"
	case LabelHate:
		return "Hate/Racism"
	case LabelSelfHarm:
		return "Self-Harm"
	case LabelSexualMinors:
		return "Sexual (Severe/Minors)"
	case LabelSpam:
		return "Spam"
	case LabelSensitive:
		return "Sensitive Content"
	case LabelToxicity:
		return "Toxicity"
	default:
		return "Unknown"
	}
}
