package copilot

import (
	"context"
	"fmt"
	"time"
)

// MaxRecordingDuration bounds one voice capture. Reaching the bound
// force-stops the recorder and submits whatever was captured so far.
const MaxRecordingDuration = 6 * time.Second

// Recorder is the audio capture device. Start fails when the operator
// denies microphone access; Stop finalizes and returns the clip.
type Recorder interface {
	Start(ctx context.Context) error
	Stop() ([]byte, error)
}

// Capture runs one bounded voice recording. It returns when the caller
// signals stop, when maxDur elapses, or when ctx is cancelled — in every
// case the recorder is stopped and the captured audio returned.
func Capture(ctx context.Context, rec Recorder, stop <-chan struct{}, maxDur time.Duration) ([]byte, error) {
	if maxDur <= 0 {
		maxDur = MaxRecordingDuration
	}
	if err := rec.Start(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}

	timer := time.NewTimer(maxDur)
	defer timer.Stop()

	select {
	case <-stop:
	case <-timer.C:
	case <-ctx.Done():
		clip, _ := rec.Stop()
		return clip, ctx.Err()
	}
	return rec.Stop()
}
