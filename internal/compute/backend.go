package compute

// Kernel computes the result for slot i.
type Kernel func(i int)

type Backend interface {
	Name() string
	Available() bool
	// Dispatch runs k for every i in [0, n) and blocks until all are done.
	Dispatch(n int, k Kernel)
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

func AutoSelectBackend() Backend {
	cpu := NewCPUBackend()
	if cpu.Available() {
		return cpu
	}
	return Serial{}
}

// Serial runs every kernel on the calling goroutine.
type Serial struct{}

func (Serial) Name() string    { return "serial" }
func (Serial) Available() bool { return true }
func (Serial) Cleanup()        {}

func (Serial) Dispatch(n int, k Kernel) {
	for i := 0; i < n; i++ {
		k(i)
	}
}
