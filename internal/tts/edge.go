package tts

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/wujunwei928/edge-tts-go/edge_tts"
)

const defaultVoice = "en-IN-NeerjaNeural"

// EdgeSynthesizer synthesizes speech through the Edge TTS service and
// returns the MP3 payload as a data URI.
type EdgeSynthesizer struct {
	voice string
}

func NewEdgeSynthesizer(voice string) *EdgeSynthesizer {
	if voice == "" {
		voice = defaultVoice
	}
	return &EdgeSynthesizer{voice: voice}
}

func (s *EdgeSynthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", fmt.Errorf("tts: empty text")
	}

	type result struct {
		audio []byte
		err   error
	}
	// The edge-tts client has no context hook; run it in a goroutine so the
	// caller's deadline still applies.
	ch := make(chan result, 1)
	go func() {
		conn, err := edge_tts.NewCommunicate(text, edge_tts.SetVoice(s.voice))
		if err != nil {
			ch <- result{nil, fmt.Errorf("tts: connect: %w", err)}
			return
		}
		audio, err := conn.Stream()
		if err != nil {
			ch <- result{nil, fmt.Errorf("tts: stream: %w", err)}
			return
		}
		ch <- result{audio, nil}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return "", r.err
		}
		return "data:audio/mp3;base64," + base64.StdEncoding.EncodeToString(r.audio), nil
	}
}
