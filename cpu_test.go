package sixfourcore

import "testing"

// newTestCore builds a Core with no ROM images (the BASIC and KERNAL
// windows read as RAM; $D000-$DFFF is still I/O), so tests can poke
// arbitrary machine code into RAM including $E000-$FFFF.
func newTestCore(t *testing.T) *Core {
	t.Helper()
	core, err := New(nil, nil, nil, PAL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return core
}

// load writes opcodes at addr and points PC at it.
func load(core *Core, addr uint16, bytes ...byte) {
	for i, b := range bytes {
		core.bus.RAM[addr+uint16(i)] = b
	}
	core.cpu.PC = addr
}

func TestLdaImmSetsZeroAndNegativeFlags(t *testing.T) {
	core := newTestCore(t)
	load(core, 0x1000, 0xA9, 0x00) // LDA #$00
	core.Step()
	if !core.cpu.getFlag(FlagZero) {
		t.Errorf("zero flag not set for LDA #$00")
	}

	load(core, 0x1000, 0xA9, 0x80) // LDA #$80
	core.Step()
	if !core.cpu.getFlag(FlagNegative) {
		t.Errorf("negative flag not set for LDA #$80")
	}
	if core.cpu.getFlag(FlagZero) {
		t.Errorf("zero flag incorrectly set for LDA #$80")
	}
}

func TestAdcCarryAndOverflow(t *testing.T) {
	core := newTestCore(t)
	core.cpu.A = 0x7F
	load(core, 0x1000, 0x69, 0x01) // ADC #$01
	core.Step()
	if core.cpu.A != 0x80 {
		t.Fatalf("A = $%02X, want $80", core.cpu.A)
	}
	if !core.cpu.getFlag(FlagOverflow) {
		t.Errorf("overflow flag not set for $7F+$01")
	}
	if !core.cpu.getFlag(FlagNegative) {
		t.Errorf("negative flag not set")
	}
	if core.cpu.getFlag(FlagCarry) {
		t.Errorf("carry flag incorrectly set")
	}
}

func TestPhaPlaRoundTrip(t *testing.T) {
	core := newTestCore(t)
	core.cpu.A = 0x42
	spBefore := core.cpu.SP
	load(core, 0x1000, 0x48, 0xA9, 0x00, 0x68) // PHA; LDA #$00; PLA
	core.Step()
	if core.cpu.SP != spBefore-1 {
		t.Fatalf("SP after PHA = $%02X, want $%02X", core.cpu.SP, spBefore-1)
	}
	core.Step() // LDA #$00 clobbers A
	core.Step() // PLA
	if core.cpu.A != 0x42 {
		t.Errorf("A after PLA = $%02X, want $42", core.cpu.A)
	}
	if core.cpu.SP != spBefore {
		t.Errorf("SP after PLA = $%02X, want $%02X", core.cpu.SP, spBefore)
	}
}

func TestPhpPlpRoundTripForcesBreakAndUnused(t *testing.T) {
	core := newTestCore(t)
	core.cpu.P = FlagCarry | FlagZero
	load(core, 0x1000, 0x08) // PHP
	core.Step()

	pushed := core.bus.RAM[stackBase|uint16(core.cpu.SP+1)]
	if pushed&FlagBreak == 0 || pushed&FlagUnused == 0 {
		t.Errorf("PHP pushed $%02X, want Break and Unused set", pushed)
	}

	core.cpu.P = 0
	load(core, 0x1001, 0x28) // PLP
	core.Step()
	if core.cpu.getFlag(FlagBreak) {
		t.Errorf("PLP left Break set")
	}
	if !core.cpu.getFlag(FlagUnused) {
		t.Errorf("PLP cleared Unused, should always read as 1")
	}
	if !core.cpu.getFlag(FlagCarry) || !core.cpu.getFlag(FlagZero) {
		t.Errorf("PLP did not restore Carry/Zero from the stack")
	}
}

func TestBranchTakenAddsOneExtraCycle(t *testing.T) {
	core := newTestCore(t)
	core.cpu.setFlag(FlagZero, true)
	load(core, 0x1000, 0xF0, 0x05) // BEQ +5
	cost := core.Step()
	if cost != 3 {
		t.Errorf("BEQ taken cost = %d, want 3 (2 base + 1 taken)", cost)
	}
	if core.cpu.PC != 0x1007 {
		t.Errorf("PC after taken BEQ = $%04X, want $1007", core.cpu.PC)
	}
}

func TestBranchNotTakenCostsBaseOnly(t *testing.T) {
	core := newTestCore(t)
	core.cpu.setFlag(FlagZero, false)
	load(core, 0x1000, 0xF0, 0x05) // BEQ +5
	cost := core.Step()
	if cost != 2 {
		t.Errorf("BEQ not-taken cost = %d, want 2", cost)
	}
	if core.cpu.PC != 0x1002 {
		t.Errorf("PC after not-taken BEQ = $%04X, want $1002", core.cpu.PC)
	}
}

func TestJsrRtsRoundTrip(t *testing.T) {
	core := newTestCore(t)
	load(core, 0x1000, 0x20, 0x00, 0x20) // JSR $2000
	core.bus.RAM[0x2000] = 0x60          // RTS
	core.Step()                          // JSR
	if core.cpu.PC != 0x2000 {
		t.Fatalf("PC after JSR = $%04X, want $2000", core.cpu.PC)
	}
	core.Step() // RTS
	if core.cpu.PC != 0x1003 {
		t.Errorf("PC after RTS = $%04X, want $1003", core.cpu.PC)
	}
}

func TestJmpIndirectPageWrapBug(t *testing.T) {
	core := newTestCore(t)
	core.bus.RAM[0x30FF] = 0x00
	core.bus.RAM[0x3000] = 0x80 // the buggy high byte fetch wraps to $3000, not $3100
	core.bus.RAM[0x3100] = 0xFF // if the bug were absent, this would be the high byte
	load(core, 0x1000, 0x6C, 0xFF, 0x30) // JMP ($30FF)
	core.Step()
	if core.cpu.PC != 0x8000 {
		t.Errorf("PC after JMP ($30FF) = $%04X, want $8000 (page-wrap bug)", core.cpu.PC)
	}
}

func TestKilHaltsCpu(t *testing.T) {
	core := newTestCore(t)
	load(core, 0x1000, 0x02) // KIL
	rasterBefore := core.bus.vic.raster
	cyclesBefore := core.cpu.Cycles

	cost := core.Step() // the call that actually executes KIL
	if cost != 0 {
		t.Errorf("Step executing KIL returned cost %d, want 0", cost)
	}
	if !core.cpu.Stopped() {
		t.Errorf("KIL did not halt the CPU")
	}
	if core.cpu.Cycles != cyclesBefore {
		t.Errorf("Cycles changed by KIL: %d -> %d, want unchanged", cyclesBefore, core.cpu.Cycles)
	}
	if core.bus.vic.raster != rasterBefore {
		t.Errorf("VIC raster advanced on KIL: %d -> %d, want unchanged", rasterBefore, core.bus.vic.raster)
	}

	cost = core.Step() // a further Step call after halt
	if cost != 0 {
		t.Errorf("Step after halt returned cost %d, want 0", cost)
	}
}

func TestUnknownOpcodeHalts(t *testing.T) {
	core := newTestCore(t)
	load(core, 0x1000, 0xFF) // not in the canonical table or the undocumented lists
	core.Step()
	if !core.cpu.Stopped() {
		t.Errorf("unknown opcode did not halt the CPU")
	}
}

func TestCompareSetsCarryOnGreaterOrEqual(t *testing.T) {
	core := newTestCore(t)
	core.cpu.A = 0x10
	load(core, 0x1000, 0xC9, 0x10) // CMP #$10
	core.Step()
	if !core.cpu.getFlag(FlagCarry) {
		t.Errorf("carry not set for equal compare")
	}
	if !core.cpu.getFlag(FlagZero) {
		t.Errorf("zero not set for equal compare")
	}
}

func TestCycleCounterIsMonotonic(t *testing.T) {
	core := newTestCore(t)
	load(core, 0x1000, 0xA9, 0x01, 0xA9, 0x02, 0xA9, 0x03)
	last := core.cpu.Cycles
	for i := 0; i < 3; i++ {
		core.Step()
		if core.cpu.Cycles <= last {
			t.Fatalf("Cycles did not advance on step %d: %d -> %d", i, last, core.cpu.Cycles)
		}
		last = core.cpu.Cycles
	}
}
