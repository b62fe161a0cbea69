package executor

import (
	"os"
	"syscall"
)

// maxRSS reads the kernel's peak RSS of a finished process.
func maxRSS(ps *os.ProcessState) (int64, bool) {
	if ps == nil {
		return 0, false
	}
	ru, ok := ps.SysUsage().(*syscall.Rusage)
	if !ok || ru == nil {
		return 0, false
	}
	// Linux reports kilobytes
	return ru.Maxrss * 1024, true
}
