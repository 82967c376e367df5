//go:build !windows

package signalwatcher

import (
	"os"
	"syscall"
)

var watched = []os.Signal{
	os.Interrupt,
	syscall.SIGHUP,
	syscall.SIGTERM,
	syscall.SIGQUIT,
}
