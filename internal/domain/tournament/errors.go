package tournament

import "errors"

var (
	ErrInvalidScore           = errors.New("invalid score")
	ErrNotReady               = errors.New("prerequisite matches are not completed")
	ErrUnknownEntity          = errors.New("unknown entity")
	ErrNotEnoughPlayers       = errors.New("not enough players for group stage")
	ErrGroupTooLarge          = errors.New("group exceeds maximum size")
	ErrInsufficientQualifiers = errors.New("not enough distinct qualifiers")
	ErrInvalidQualifierCount  = errors.New("unsupported qualifier count")
	ErrStageClosed            = errors.New("tournament stage is closed")
	ErrTournamentCompleted    = errors.New("tournament already completed")
	ErrUnknownRuleSet         = errors.New("unknown rule set")
	ErrInvalidSnapshot        = errors.New("invalid tournament snapshot")
)
