package media

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedRecorders(t *testing.T) {
	fixed := func() time.Time { return time.UnixMilli(1700000000000) }

	audio := NewAudioRecorder(time.Millisecond)
	audio.Now = fixed
	rec, err := audio.Record(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file://simulated-audio-1700000000000.m4a", rec.URI)
	assert.Equal(t, time.Millisecond, rec.Duration)
	assert.Equal(t, "Voice note", rec.Title())

	video := NewVideoRecorder(time.Millisecond)
	video.Now = fixed
	rec, err = video.Record(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file://simulated-video-1700000000000.mp4", rec.URI)
	assert.Equal(t, "Video note", rec.Title())
}

func TestDefaultDurations(t *testing.T) {
	assert.Equal(t, 2*time.Second, NewAudioRecorder(0).Duration)
	assert.Equal(t, 3*time.Second, NewVideoRecorder(-1).Duration)
}

func TestRecordHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAudioRecorder(time.Hour).Record(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
