// Package digest computes content digests of files. Two files with equal
// digests are treated as identical; no byte-level re-verification is done.
package digest

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"
	"sync"

	"github.com/sdejongh/hashmerge/pkg/ratelimit"
	"github.com/sdejongh/hashmerge/pkg/storage"
	"lukechampine.com/blake3"
)

// Digest is the lowercase hex encoding of a content hash
type Digest string

// Algorithm selects the hash function
type Algorithm string

const (
	// SHA256 is the default algorithm
	SHA256 Algorithm = "sha256"
	// MD5 is faster but only suitable as a content-equality proxy for trusted data
	MD5 Algorithm = "md5"
	// BLAKE3 is the fastest option on modern CPUs
	BLAKE3 Algorithm = "blake3"
)

// DefaultBufferSize is used when no buffer size is configured
const DefaultBufferSize = 64 * 1024

// ParseAlgorithm converts a configuration or flag value into an Algorithm
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case "", SHA256:
		return SHA256, nil
	case MD5:
		return MD5, nil
	case BLAKE3:
		return BLAKE3, nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s (use: sha256, md5, blake3)", name)
	}
}

func (a Algorithm) newHash() hash.Hash {
	switch a {
	case MD5:
		return md5.New()
	case BLAKE3:
		return blake3.New(32, nil)
	default:
		return sha256.New()
	}
}

// Hasher streams file contents through the configured algorithm
type Hasher struct {
	algorithm  Algorithm
	bufferSize int
	bufferPool *sync.Pool
	limiter    *ratelimit.Limiter // Optional bandwidth limit, nil means unlimited
}

// NewHasher creates a hasher. Buffers smaller than 4KB are raised to 4KB.
func NewHasher(algorithm Algorithm, bufferSize int) *Hasher {
	if algorithm == "" {
		algorithm = SHA256
	}
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &Hasher{
		algorithm:  algorithm,
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// SetLimiter caps the read rate while hashing
func (h *Hasher) SetLimiter(limiter *ratelimit.Limiter) {
	h.limiter = limiter
}

// Algorithm returns the configured algorithm
func (h *Hasher) Algorithm() Algorithm {
	return h.algorithm
}

// File opens path through the backend and returns its digest
func (h *Hasher) File(ctx context.Context, backend storage.Backend, path string) (Digest, error) {
	file, err := backend.Open(ctx, path)
	if err != nil {
		return "", err
	}
	reader := ratelimit.NewReadCloser(ctx, file, h.limiter)
	defer reader.Close()

	return h.Sum(ctx, reader)
}

// Sum reads r to EOF and returns its digest
func (h *Hasher) Sum(ctx context.Context, r io.Reader) (Digest, error) {
	hasher := h.algorithm.newHash()

	bufPtr := h.bufferPool.Get().(*[]byte)
	buffer := *bufPtr
	defer h.bufferPool.Put(bufPtr)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := r.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
	}

	return Digest(hex.EncodeToString(hasher.Sum(nil))), nil
}
