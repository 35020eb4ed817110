package assert

import (
	"fmt"

	"github.com/bloeys/nbatch/logging"
)

// enabled is a string so release builds can turn assertions off
// with '-ldflags "-X github.com/bloeys/nbatch/assert.enabled=false"'
var enabled = "true"

func Enabled() bool {
	return enabled == "true"
}

// T panics with the formatted message if check is false
func T(check bool, msg string, args ...any) {

	if check || !Enabled() {
		return
	}

	errMsg := fmt.Sprintf("Assert failed: "+msg, args...)
	logging.ErrLog.Error(errMsg)
	panic(errMsg)
}
