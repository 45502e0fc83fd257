package executor

// Sync runs every submitted task inline on the caller's goroutine. It is
// intended for tests that need deterministic scheduling.
type Sync struct{}

// Submit runs the task immediately.
func (Sync) Submit(task func()) {
	task()
}
