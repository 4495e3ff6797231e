// step.go - the per-instruction drive loop: trap check, decode/execute,
// CIA/VIC ticking, and interrupt service, in that order.

package sixfourcore

// interruptServiceCycles is the cost of pushing PC/P and vectoring through
// $FFFE, matching BRK's own 7-cycle cost.
const interruptServiceCycles = 7

// Step executes one instruction (or one KERNAL trap shim) and returns the
// number of cycles it consumed. It returns 0 without side effects if the
// CPU is already stopped.
//
// Ordering within a single call: (i) memory effects of the
// instruction/trap, (ii) cycle-counter increment, (iii) CIA1 tick,
// (iv) raster tick, (v) interrupt service if pending and unmasked.
func (c *CPU) Step() uint32 {
	if c.stopped {
		return 0
	}

	c.recordPC(c.PC)

	var cost uint32
	if handler, ok := c.trapAt(c.PC); ok {
		cost = uint32(handler(c))
	} else {
		opcode := c.readByte(c.PC)
		c.PC++
		info := opcodeTable[opcode]
		if info.op == mUnknown || info.op == mKIL {
			c.haltOpcode = opcode
			c.haltPC = c.PC - 1
			c.stopped = true
			logHalt(opcode, c.haltPC)
			return 0
		}
		c.extraCycles = 0
		c.execute(info)
		cost = uint32(info.cycles) + c.extraCycles
	}
	c.Cycles += uint64(cost)

	c.bus.cia1.Tick(uint16(cost), &c.bus.RAM)
	c.bus.vic.Tick()

	if !c.getFlag(FlagInterrupt) && c.bus.cia1.PendingIRQ() {
		c.serviceInterrupt()
		cost += interruptServiceCycles
		c.Cycles += interruptServiceCycles
	}

	return cost
}

func (c *CPU) serviceInterrupt() {
	c.push16(c.PC)
	c.push(c.P&^FlagBreak | FlagUnused)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.readWord(irqVector)
}
