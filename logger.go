package mapkv

import "github.com/unkn0wn-root/mapkv/logging"

// Fields is a minimal structured field map for logs.
type Fields = logging.Fields

// Logger is a tiny leveled logger. If Logger is nil in Options, logging is disabled.
type Logger = logging.Logger

type NopLogger = logging.Nop
