package types

type OutcomeKind int

const (
	Skipped OutcomeKind = iota
	Transferred
	Failed
)

func (k OutcomeKind) String() string {
	switch k {
	case Skipped:
		return "skipped"
	case Transferred:
		return "transferred"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// TransferOutcome is the result of one copy attempt.
type TransferOutcome struct {
	Kind   OutcomeKind
	Key    string
	Size   int64
	Reason string
}

func SkippedOutcome(key string) TransferOutcome {
	return TransferOutcome{Kind: Skipped, Key: key}
}

func TransferredOutcome(key string, size int64) TransferOutcome {
	return TransferOutcome{Kind: Transferred, Key: key, Size: size}
}

func FailedOutcome(key string, err error) TransferOutcome {
	return TransferOutcome{Kind: Failed, Key: key, Reason: err.Error()}
}
