package driver

type SessionDriverOpt func(*SessionDriver)

// WithQueueSize sets how many events may wait for the loop before Submit blocks.
func WithQueueSize(n int) SessionDriverOpt {
	return func(d *SessionDriver) {
		if n > 0 {
			d.queueSize = n
		}
	}
}
