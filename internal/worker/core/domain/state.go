package domain

type State string

const (
	StateBooting    State = "booting"
	StateRunning    State = "running"
	StateCrashed    State = "crashed"
	StateStopping   State = "stopping"
	StateTerminated State = "terminated"
)
