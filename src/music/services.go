package music

// OperationRecorder counts catalog operations by outcome. Features report
// every user-facing mutation through it.
type OperationRecorder interface {
	RecordOperation(operation string, err error)
}

// NopRecorder discards every observation.
type NopRecorder struct{}

func (NopRecorder) RecordOperation(string, error) {}

// RecorderOrNop returns r, or a NopRecorder when r is nil.
func RecorderOrNop(r OperationRecorder) OperationRecorder {
	if r == nil {
		return NopRecorder{}
	}
	return r
}
