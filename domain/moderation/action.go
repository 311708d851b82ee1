package moderation

import "fmt"

// Action is an enforcement operation applied when a message is flagged.
type Action string

const (
	ActionDelete  Action = "delete"
	ActionTimeout Action = "timeout"
	ActionWarn    Action = "warn"
)

// AllActions returns every action in declaration order.
func AllActions() []Action {
	return []Action{ActionDelete, ActionTimeout, ActionWarn}
}

// ParseAction parses an action name. Names are the lowercase wire form.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionDelete, ActionTimeout, ActionWarn:
		return Action(s), nil
	}
	return "", fmt.Errorf("%w: moderation action %q", ErrUnknownVariant, s)
}

// String returns the lowercase wire form.
func (a Action) String() string {
	return string(a)
}
