package service

import (
	"strings"

	"github.com/layfhaker/bezneg/internal/logger"
)

// RevealOutcome classifies the result of a reveal attempt.
type RevealOutcome int

const (
	// RevealExpired means the reference no longer (or never) resolves.
	RevealExpired RevealOutcome = iota
	// RevealDenied means the viewer is excluded and gets the sender's
	// reject text instead of the body.
	RevealDenied
	// RevealGranted means the viewer sees the real message body.
	RevealGranted
)

// RevealResult is the per-viewer answer to a reveal request.
type RevealResult struct {
	Outcome RevealOutcome
	Text    string
}

// Reveal decides what a viewer identified by username gets to see behind
// the given reference. It is a pure read: repeated calls with the same
// inputs return the same result unless the sender changes their reject
// text in between. Viewers without a username can never be excluded.
func Reveal(ref string, username string) (RevealResult, error) {
	msg, err := GetScopedMessage(ref)
	if err != nil {
		return RevealResult{}, err
	}
	if msg == nil {
		logger.Infof("Reveal for unknown reference %s", ref)
		return RevealResult{Outcome: RevealExpired}, nil
	}

	if msg.IsExcluded(strings.ToLower(username)) {
		logger.Infof("User @%s tried to read message %s - denied", strings.ToLower(username), ref)
		return RevealResult{
			Outcome: RevealDenied,
			Text:    GetRejectMessage(msg.SenderID),
		}, nil
	}

	logger.Infof("Message %s revealed", ref)
	return RevealResult{
		Outcome: RevealGranted,
		Text:    msg.Body,
	}, nil
}
