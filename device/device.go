// Package device implements compute device selection for training
// runs: the GPU-count clamp behind the "use N GPUs, run on id K"
// launch flags, plus a CPU capability summary for the fallback path.
package device

import "fmt"
import "log"
import "os"

// Kind enumerates the device families a run can target.
type Kind int

const (
	// CPU is the host processor.
	CPU Kind = iota
	// CUDA is an NVIDIA GPU addressed by index.
	CUDA
)

// Device identifies where a run executes. Index is meaningful for
// CUDA only.
type Device struct {
	Kind  Kind
	Index int
}

// String renders the device the way run configs spell it: "cpu" or
// "cuda:N".
func (d Device) String() string {
	if d.Kind == CUDA {
		return fmt.Sprintf("cuda:%d", d.Index)
	}
	return "cpu"
}

// Prober reports how many accelerator devices the process can use.
type Prober interface {
	Count() int
}

// NullProber is a Prober with no devices, for CPU-only builds and for
// tests.
type NullProber struct{}

// Count always reports zero devices.
func (NullProber) Count() int { return 0 }

var l = log.New(os.Stderr, "", 0)

// SetLogger redirects the clamp warnings and the device announcement.
// A nil logger silences them.
func SetLogger(logger *log.Logger) {
	l = logger
}

// Prepare picks the device for a run that wants use GPUs, clamping the
// request to what the prober reports. The id names which GPU to run
// on; it is taken as-is apart from negatives mapping to 0, so asking
// for an id the machine does not have fails later, at first use.
func Prepare(p Prober, use, id int) Device {
	var n = p.Count()
	if use > 0 && n == 0 {
		logf("Warning: There's no GPU available on this machine, training will be performed on CPU (%s).", CPUSummary())
		use = 0
	}
	if use > n {
		logf("Warning: The number of GPU's configured to use is %d, but only %d are available on this machine.", use, n)
		use = n
	}
	var dev Device
	if use > 0 {
		if id < 0 {
			id = 0
		}
		dev = Device{Kind: CUDA, Index: id}
	}
	logf("Executing on device: %s", dev)
	return dev
}

func logf(format string, args ...interface{}) {
	if l != nil {
		l.Printf(format, args...)
	}
}
