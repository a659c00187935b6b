// Package media defines the capture collaborator contract used by the
// workspace. Only the returned URI is consumed; it is stored as an opaque
// string on the workspace item.
package media

import (
	"context"
	"fmt"
	"time"
)

// Kind distinguishes audio from video captures.
type Kind string

const (
	Audio Kind = "audio"
	Video Kind = "video"
)

// Recording is the result of a finished capture.
type Recording struct {
	Kind     Kind
	URI      string
	Duration time.Duration
}

// Recorder captures a piece of media.
type Recorder interface {
	Record(ctx context.Context) (Recording, error)
}

// Simulated pretends to record for Duration and returns a fake file URI.
type Simulated struct {
	Kind     Kind
	Duration time.Duration
	Now      func() time.Time
}

// NewAudioRecorder returns a simulated audio recorder (2s by default).
func NewAudioRecorder(d time.Duration) *Simulated {
	if d <= 0 {
		d = 2 * time.Second
	}
	return &Simulated{Kind: Audio, Duration: d}
}

// NewVideoRecorder returns a simulated video recorder (3s by default).
func NewVideoRecorder(d time.Duration) *Simulated {
	if d <= 0 {
		d = 3 * time.Second
	}
	return &Simulated{Kind: Video, Duration: d}
}

// Record waits for the configured duration or until ctx is done.
func (s *Simulated) Record(ctx context.Context) (Recording, error) {
	timer := time.NewTimer(s.Duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Recording{}, fmt.Errorf("%s recording cancelled: %w", s.Kind, ctx.Err())
	case <-timer.C:
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return Recording{
		Kind:     s.Kind,
		URI:      fmt.Sprintf("file://simulated-%s-%d.%s", s.Kind, now().UnixMilli(), s.Kind.extension()),
		Duration: s.Duration,
	}, nil
}

func (k Kind) extension() string {
	if k == Video {
		return "mp4"
	}
	return "m4a"
}

// Title returns a default item title for a recording.
func (r Recording) Title() string {
	switch r.Kind {
	case Video:
		return "Video note"
	default:
		return "Voice note"
	}
}
