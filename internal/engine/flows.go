package engine

// Two-step dialogs. A nil payload is the idle state, so a confirmation
// without a staged payload cannot be represented.

type replaceTarget struct {
	exerciseID string
}

type replaceFlow struct {
	staged *replaceTarget
}

func (f *replaceFlow) stage(exerciseID string) {
	f.staged = &replaceTarget{exerciseID: exerciseID}
}

func (f *replaceFlow) pending() (string, bool) {
	if f.staged == nil {
		return "", false
	}
	return f.staged.exerciseID, true
}

// take returns the staged target and moves the flow back to idle.
func (f *replaceFlow) take() (string, bool) {
	id, ok := f.pending()
	f.staged = nil
	return id, ok
}

func (f *replaceFlow) cancel() bool {
	wasStaged := f.staged != nil
	f.staged = nil
	return wasStaged
}

type FinishConfirmation struct {
	IncompleteExercises []string `json:"incompleteExercises"`
}

type finishFlow struct {
	staged *FinishConfirmation
}

func (f *finishFlow) stage(incomplete []string) {
	f.staged = &FinishConfirmation{IncompleteExercises: incomplete}
}

func (f *finishFlow) pending() *FinishConfirmation {
	if f.staged == nil {
		return nil
	}
	c := FinishConfirmation{IncompleteExercises: append([]string(nil), f.staged.IncompleteExercises...)}
	return &c
}

func (f *finishFlow) take() bool {
	wasStaged := f.staged != nil
	f.staged = nil
	return wasStaged
}

func (f *finishFlow) cancel() bool {
	return f.take()
}
