package patcher

// Outcome is the terminal state of processing one target file.
type Outcome int

const (
	// Modified means the file was rewritten (or would be, in a dry run).
	Modified Outcome = iota
	// NotFound means the target path does not exist under the root.
	NotFound
	// AlreadyPatched means the idempotency marker is already present.
	AlreadyPatched
	// PatternNotFound means no root-container return statement was found.
	PatternNotFound
	// ClosingNotFound means the wrapper was injected in memory but no
	// closing delimiter could be located, so the file was left untouched.
	ClosingNotFound
	// SyntaxRegression means the rewrite would introduce parse errors.
	SyntaxRegression
	// ReadFailed means the file exists but could not be read.
	ReadFailed
	// WriteFailed means the rewritten file could not be written back.
	WriteFailed
)

var outcomeLabels = map[Outcome]string{
	Modified:         "modified",
	NotFound:         "not found",
	AlreadyPatched:   "already patched",
	PatternNotFound:  "pattern not found",
	ClosingNotFound:  "closing delimiter not found",
	SyntaxRegression: "syntax regression",
	ReadFailed:       "read failed",
	WriteFailed:      "write failed",
}

func (o Outcome) String() string {
	if label, ok := outcomeLabels[o]; ok {
		return label
	}
	return "unknown"
}

// Failed reports whether the outcome counts as a failure in the run summary.
// Missing files and already patched files are expected no-ops.
func (o Outcome) Failed() bool {
	switch o {
	case PatternNotFound, ClosingNotFound, SyntaxRegression, ReadFailed, WriteFailed:
		return true
	default:
		return false
	}
}

// ImportStatus describes what the import injection step did.
type ImportStatus int

const (
	// ImportSkipped means the step never ran (missing or already patched file).
	ImportSkipped ImportStatus = iota
	// ImportAdded means the import line was inserted after the import block.
	ImportAdded
	// ImportPresent means the exact import line already existed.
	ImportPresent
	// ImportBlockNotFound means the document has no import block to extend.
	ImportBlockNotFound
)

func (s ImportStatus) String() string {
	switch s {
	case ImportAdded:
		return "added"
	case ImportPresent:
		return "present"
	case ImportBlockNotFound:
		return "no import block"
	default:
		return "-"
	}
}

// Result is the report for a single target file.
type Result struct {
	Path    string
	Outcome Outcome
	Import  ImportStatus
	// Before and After hold the original and rewritten document when the
	// engine got far enough to produce them.
	Before []byte
	After  []byte
	Err    error
}

// Summary aggregates the results of a run.
type Summary struct {
	Total          int
	Modified       int
	AlreadyPatched int
	NotFound       int
	Failed         int
	Warnings       int
	BytesWritten   int
}

// Summarize counts results by outcome.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Outcome == Modified:
			s.Modified++
			s.BytesWritten += len(r.After)
		case r.Outcome == AlreadyPatched:
			s.AlreadyPatched++
		case r.Outcome == NotFound:
			s.NotFound++
		case r.Outcome.Failed():
			s.Failed++
		}
		if r.Import == ImportBlockNotFound && r.Outcome == Modified {
			s.Warnings++
		}
	}
	return s
}
