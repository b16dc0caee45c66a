package domain

import (
	"fmt"
	"strings"
)

// Action is a viewer's response to a presented candidate.
type Action string

const (
	ActionSkip    Action = "skip"
	ActionApprove Action = "approve"
	ActionReport  Action = "report"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionSkip, ActionApprove, ActionReport:
		return a, nil
	case "like":
		return ActionApprove, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}
