package signalwatcher

import "os"

var watched = []os.Signal{os.Interrupt}
