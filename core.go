// core.go - the host-facing API: construction, the run loop, state
// inspection, and PRG/key injection.

package sixfourcore

import "encoding/binary"

// stuckPcWindow is how many consecutive Step calls with an unchanged PC
// (outside the CHRIN trap, which legitimately spins there waiting on
// keyboard input) are treated as the machine being wedged rather than
// merely polling.
const stuckPcWindow = 1000

// Core bundles the bus and CPU into the single object external callers
// drive. It is not safe for concurrent use from multiple goroutines; wrap it
// in an actor (actor.go) if that's needed.
type Core struct {
	bus      *Bus
	cpu      *CPU
	videoStd VideoStandard

	lastStop StopReason
}

// New builds a Core from BASIC, KERNAL, and character ROM images and runs
// the boot-state setup. Any of the images may be nil; an absent ROM's window
// reads as RAM. Without a KERNAL image the trap shims are never consulted,
// since they only fire while the KERNAL is mapped in.
func New(basic, kernal, char []byte, videoStd VideoStandard) (*Core, error) {
	bus, err := NewBus(basic, kernal, char)
	if err != nil {
		return nil, err
	}
	core := &Core{bus: bus, cpu: NewCPU(bus), videoStd: videoStd}
	core.reset()
	return core, nil
}

// Reset re-runs the boot-state setup, returning the machine to the same
// state New left it in.
func (core *Core) Reset() {
	core.reset()
}

// Step advances the machine by exactly one instruction or trapped KERNAL
// call and returns the cycle cost, per CPU.Step.
func (core *Core) Step() uint32 {
	return core.cpu.Step()
}

// Run drives Step until the CPU halts, maxCycles is reached (if non-nil),
// or the PC appears stuck, and reports which. A stuck PC is a PC that does
// not change across stuckPcWindow consecutive steps while not parked at the
// CHRIN trap, where spinning on an empty keyboard buffer is expected
// behaviour rather than a wedged program.
func (core *Core) Run(maxCycles *uint64) StopReason {
	stuckCount := 0

	for {
		if core.cpu.Stopped() {
			core.lastStop = Halted
			return core.lastStop
		}
		if maxCycles != nil && core.cpu.Cycles >= *maxCycles {
			core.lastStop = MaxCyclesReached
			return core.lastStop
		}

		pcBefore := core.cpu.PC
		core.cpu.Step()

		if core.cpu.Stopped() {
			core.lastStop = Halted
			return core.lastStop
		}

		if core.cpu.PC == pcBefore && pcBefore != trapCHRIN {
			stuckCount++
			if stuckCount >= stuckPcWindow {
				core.lastStop = StuckPc
				logStuckPc(core.cpu.PC, stuckCount)
				return core.lastStop
			}
		} else {
			stuckCount = 0
		}
	}
}

// LastStopReason reports the StopReason of the most recent Run call.
func (core *Core) LastStopReason() StopReason {
	return core.lastStop
}

// ReadMem reads one byte through the banked bus, exactly as the CPU would.
func (core *Core) ReadMem(addr uint16) byte {
	return core.bus.Read(addr)
}

// WriteMem writes one byte through the banked bus, exactly as the CPU would.
func (core *Core) WriteMem(addr uint16, v byte) {
	core.bus.Write(addr, v)
}

// LoadPrg loads a C64 PRG image: a little-endian 2-byte load address
// followed by the program body, copied verbatim into RAM starting at that
// address. If the load address is the standard BASIC start ($0801), the
// BASIC "end of program" pointer ($2D/$2E) is advanced past the loaded
// bytes so a BASIC LIST or RUN immediately sees the program.
func (core *Core) LoadPrg(data []byte) error {
	if len(data) < 2 {
		return &PrgTooSmall{Got: len(data)}
	}
	loadAddr := binary.LittleEndian.Uint16(data[:2])
	body := data[2:]
	for i, b := range body {
		core.bus.RAM[loadAddr+uint16(i)] = b
	}
	if loadAddr == addrBasicStart {
		end := loadAddr + uint16(len(body))
		core.bus.RAM[addrBasicEndLo] = byte(end)
		core.bus.RAM[addrBasicEndHi] = byte(end >> 8)
	}
	return nil
}

// CPUState snapshots the CPU's user-visible register state.
func (core *Core) CPUState() RegisterState {
	c := core.cpu
	return RegisterState{PC: c.PC, A: c.A, X: c.X, Y: c.Y, SP: c.SP, P: c.P, Cycles: c.Cycles}
}

// SetCPUState applies the non-nil fields of override to the CPU, leaving
// everything else untouched.
func (core *Core) SetCPUState(override RegisterOverride) {
	c := core.cpu
	if override.PC != nil {
		c.PC = *override.PC
	}
	if override.A != nil {
		c.A = *override.A
	}
	if override.X != nil {
		c.X = *override.X
	}
	if override.Y != nil {
		c.Y = *override.Y
	}
	if override.SP != nil {
		c.SP = *override.SP
	}
	if override.P != nil {
		c.P = *override.P
	}
	if override.Cycles != nil {
		c.Cycles = *override.Cycles
	}
}

// InjectKey appends a PETSCII byte to the keyboard buffer, as if it had
// been typed. It reports false and does nothing if the buffer is already at
// its 10-byte capacity.
func (core *Core) InjectKey(petscii byte) bool {
	length := core.bus.RAM[addrKbBufLen]
	if length >= addrKbBufMax {
		return false
	}
	core.bus.RAM[addrKbBufStart+uint16(length)] = petscii
	core.bus.RAM[addrKbBufLen] = length + 1
	return true
}

// ScreenSnapshot returns the 1000 screen-code bytes currently in screen RAM.
func (core *Core) ScreenSnapshot() [screenSize]byte {
	var out [screenSize]byte
	copy(out[:], core.bus.RAM[screenBase:screenEnd])
	return out
}

// ColorSnapshot returns the low nibble of each of the 1000 colour-RAM
// bytes (the upper nibble is unconnected on real hardware and always reads
// back as open bus; this core reports it as 0).
func (core *Core) ColorSnapshot() [screenSize]byte {
	var out [screenSize]byte
	for i := 0; i < screenSize; i++ {
		out[i] = core.bus.RAM[colorBase+i] & 0x0F
	}
	return out
}

// MemoryDump returns a copy of raw RAM over [start, end), bypassing ROM
// banking entirely: a byte written under an active ROM window is visible
// here even though ReadMem (and the CPU) would see the ROM image instead.
func (core *Core) MemoryDump(start, end int) ([]byte, error) {
	if start < 0 || end > 0x10000 || start > end {
		return nil, &InvalidAddressInApi{Start: start, End: end}
	}
	out := make([]byte, end-start)
	copy(out, core.bus.RAM[start:end])
	return out, nil
}

// PCHistory returns the most recently executed program counters, oldest
// first.
func (core *Core) PCHistory() []uint16 {
	return core.cpu.PCHistory()
}
