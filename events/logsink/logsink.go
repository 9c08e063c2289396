// Package logsink turns error events into log lines.
package logsink

import (
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"

	"github.com/unkn0wn-root/mapkv/events"
	"github.com/unkn0wn-root/mapkv/logging"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	Every uint64
	// Message defaults to "mapkv.error".
	Message string
	// Optional key redactor applied to KeyError payloads. Defaults to a SHA-256 prefix.
	Redact func(string) string
}

// KeyError is a payload carrying the storage key involved, such as the
// façade's *mapkv.StorageError. The key is logged redacted.
type KeyError interface {
	error
	StorageKey() string
}

type sink struct {
	l    logging.Logger
	opts Options
	ctr  atomic.Uint64
}

// New returns a Handler that logs every (sampled) payload at Error level.
func New(l logging.Logger, opts Options) events.Handler {
	if opts.Message == "" {
		opts.Message = "mapkv.error"
	}
	s := &sink{l: logging.OrNop(l), opts: opts}
	return s.handle
}

func (s *sink) redact(k string) string {
	if s.opts.Redact != nil {
		return s.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (s *sink) handle(payload any) {
	if !sample(s.opts.Every, &s.ctr) {
		return
	}
	f := logging.Fields{}
	switch p := payload.(type) {
	case KeyError:
		f["err"] = p
		f["key"] = s.redact(p.StorageKey())
	case error:
		f["err"] = p
	default:
		f["payload"] = p
	}
	s.l.Error(s.opts.Message, f)
}
