package hal

import "time"

// hostTime is either wall-clock based or virtual. The virtual clock only
// moves when the headless host steps it, which keeps headless runs
// deterministic regardless of pacing.
type hostTime struct {
	virtual bool
	start   time.Time
	now     time.Duration
}

func newHostTime(virtual bool) *hostTime {
	return &hostTime{virtual: virtual, start: time.Now()}
}

func (t *hostTime) Now() time.Duration {
	if t.virtual {
		return t.now
	}
	return time.Since(t.start)
}

func (t *hostTime) step(d time.Duration) {
	if t.virtual && d > 0 {
		t.now += d
	}
}
