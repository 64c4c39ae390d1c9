package regcheck

// UnknownPolicy controls how unknown keys are handled.
type UnknownPolicy int

const (
	UnknownStrict UnknownPolicy = iota // Reject unknown keys with an error.
	UnknownStrip                       // Drop unknown keys.
)

// Severity expresses the severity level for wire-level findings.
type Severity int

const (
	Ignore Severity = iota
	Error
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Error rejects the payload; Ignore keeps the last value.
}

// ParseOpt bundles parsing options.
type ParseOpt struct {
	Unknown    UnknownPolicy
	Strictness Strictness
	MaxDepth   int   // 0 disables the check.
	MaxBytes   int64 // 0 disables the check.
}

const (
	defaultMaxDepth = 32
	defaultMaxBytes = 1 << 20
)

// DefaultParseOpt returns the policy used when no ParseOpt is passed:
// unknown keys and duplicate keys are errors, depth and size are bounded.
func DefaultParseOpt() ParseOpt {
	return ParseOpt{
		Unknown:    UnknownStrict,
		Strictness: Strictness{OnDuplicateKey: Error},
		MaxDepth:   defaultMaxDepth,
		MaxBytes:   defaultMaxBytes,
	}
}

// resolveOpt picks the last option, matching the variadic convention of the
// public entry points.
func resolveOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return DefaultParseOpt()
	}
	return opts[len(opts)-1]
}
