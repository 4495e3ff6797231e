// logging.go - opt-in diagnostic logging
//
// The core stays silent on its own hot path; Core.Run's StopReason already
// tells a caller what happened. This just gives a host an easy way to see
// why, gated by the SIXFOURCORE_DEBUG environment variable.

package sixfourcore

import (
	"log"
	"os"
)

var debugLog = os.Getenv("SIXFOURCORE_DEBUG") != ""

func logHalt(opcode byte, pc uint16) {
	if debugLog {
		log.Printf("sixfourcore: halted on opcode $%02X at PC=$%04X", opcode, pc)
	}
}

func logStuckPc(pc uint16, steps int) {
	if debugLog {
		log.Printf("sixfourcore: stuck PC $%04X after %d unchanged steps", pc, steps)
	}
}
