package assistant

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// Listener produces one user utterance per call. Implementations block
// until input is available and return io.EOF when the source is
// exhausted.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}

// Speaker presents one assistant reply.
type Speaker interface {
	Speak(ctx context.Context, result TurnResult) error
}

// exit words end the loop when they make up the whole utterance.
var exitWords = map[string]bool{
	"exit": true,
	"quit": true,
	"bye":  true,
}

// Loop runs the listen/respond cycle until the listener is exhausted,
// the context is cancelled, or the user asks to leave.
//
// Input matching the previous spoken reply is discarded: a microphone
// listener hears the speaker's own output, and feeding it back turns
// the conversation into a monologue.
func Loop(ctx context.Context, a *Assistant, in Listener, out Speaker) error {
	lastSpoken := ""
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		utterance, err := in.Listen(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		utterance = strings.TrimSpace(utterance)
		if utterance == "" {
			continue
		}
		if lastSpoken != "" && strings.EqualFold(utterance, lastSpoken) {
			slog.Debug("assistant: discarding echoed input")
			continue
		}
		if exitWords[strings.ToLower(strings.TrimRight(utterance, ".!"))] {
			return nil
		}

		result := a.Turn(ctx, utterance)
		lastSpoken = result.Reply
		if err := out.Speak(ctx, result); err != nil {
			return err
		}
	}
}
