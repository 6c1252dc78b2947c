package ratelimit

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// minBurst keeps small limits from degenerating into tiny reads
const minBurst = 64 * 1024

// Limiter caps the number of bytes read per second across every reader sharing it
type Limiter struct {
	bytesPerSecond int64
	limiter        *rate.Limiter
}

// NewLimiter creates a limiter for the given bytes per second.
// It returns nil (no limiting) when bytesPerSecond is not positive.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	// One second worth of data, at least minBurst
	burst := bytesPerSecond
	if burst < minBurst {
		burst = minBurst
	}
	if burst > int64(^uint32(0)>>1) {
		burst = int64(^uint32(0) >> 1)
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		limiter:        rate.NewLimiter(rate.Limit(bytesPerSecond), int(burst)),
	}
}

// BytesPerSecond returns the configured limit
func (l *Limiter) BytesPerSecond() int64 {
	return l.bytesPerSecond
}

// Burst returns the largest single read the limiter allows
func (l *Limiter) Burst() int {
	return l.limiter.Burst()
}

// ReadCloser charges every read from a file against a Limiter
type ReadCloser struct {
	rc      io.ReadCloser
	limiter *Limiter
	ctx     context.Context
}

// NewReadCloser wraps rc so its reads wait on limiter. With a nil limiter
// rc is returned unchanged.
func NewReadCloser(ctx context.Context, rc io.ReadCloser, limiter *Limiter) io.ReadCloser {
	if limiter == nil {
		return rc
	}
	return &ReadCloser{
		rc:      rc,
		limiter: limiter,
		ctx:     ctx,
	}
}

// Read implements io.Reader. Reads are capped at the burst size and
// the bytes actually read are charged against the limiter.
func (r *ReadCloser) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}

	if burst := r.limiter.Burst(); len(p) > burst {
		p = p[:burst]
	}

	n, err := r.rc.Read(p)
	if n > 0 {
		if waitErr := r.limiter.limiter.WaitN(r.ctx, n); waitErr != nil {
			return n, waitErr
		}
	}

	return n, err
}

// Close closes the wrapped reader
func (r *ReadCloser) Close() error {
	return r.rc.Close()
}
