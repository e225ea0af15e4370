// Package tts is the speech-synthesis boundary: text in, base64 audio data
// URI out. Failures here are degraded-step failures; callers return the
// primary result without audio instead of aborting.
package tts

import "context"

// Synthesizer converts text to a playable audio payload.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}
