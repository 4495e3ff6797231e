// actor.go - optional channel-driven wrapper around Core
//
// Core itself is single-threaded and unsynchronized; a host that wants to
// drive it from one goroutine while observing/injecting from others can
// either guard a Core with a mutex, or run it behind an Actor, which owns
// the Core on a dedicated goroutine and serializes every operation through
// a command channel instead.

package sixfourcore

// actorCmd is a closure the Actor's goroutine runs against its Core,
// reporting back through done once applied.
type actorCmd struct {
	run  func(*Core)
	done chan struct{}
}

// Actor serializes access to a Core through a single goroutine. The zero
// value is not usable; construct with NewActor.
type Actor struct {
	cmds chan actorCmd
	quit chan struct{}
}

// NewActor starts an Actor's goroutine around core and returns immediately.
// Call Stop to shut it down.
func NewActor(core *Core) *Actor {
	a := &Actor{
		cmds: make(chan actorCmd),
		quit: make(chan struct{}),
	}
	go a.loop(core)
	return a
}

func (a *Actor) loop(core *Core) {
	for {
		select {
		case cmd := <-a.cmds:
			cmd.run(core)
			close(cmd.done)
		case <-a.quit:
			return
		}
	}
}

// do submits run to the actor's goroutine and blocks until it has executed.
func (a *Actor) do(run func(*Core)) {
	done := make(chan struct{})
	a.cmds <- actorCmd{run: run, done: done}
	<-done
}

// Step advances the machine by one instruction/trap and returns its cost.
func (a *Actor) Step() uint32 {
	var cost uint32
	a.do(func(c *Core) { cost = c.Step() })
	return cost
}

// Run drives Step until halted, max-cycles, or stuck, exactly as Core.Run,
// but blocks the caller for the whole run rather than just one step; the
// actor's goroutine cannot service other commands until it returns.
func (a *Actor) Run(maxCycles *uint64) StopReason {
	var reason StopReason
	a.do(func(c *Core) { reason = c.Run(maxCycles) })
	return reason
}

// InjectKey appends a PETSCII byte to the keyboard buffer.
func (a *Actor) InjectKey(petscii byte) bool {
	var ok bool
	a.do(func(c *Core) { ok = c.InjectKey(petscii) })
	return ok
}

// ReadMem reads one byte through the banked bus.
func (a *Actor) ReadMem(addr uint16) byte {
	var v byte
	a.do(func(c *Core) { v = c.ReadMem(addr) })
	return v
}

// WriteMem writes one byte through the banked bus.
func (a *Actor) WriteMem(addr uint16, v byte) {
	a.do(func(c *Core) { c.WriteMem(addr, v) })
}

// ScreenSnapshot returns a copy of the 1000 screen-code bytes in screen RAM.
func (a *Actor) ScreenSnapshot() [screenSize]byte {
	var snap [screenSize]byte
	a.do(func(c *Core) { snap = c.ScreenSnapshot() })
	return snap
}

// CPUState snapshots the CPU's user-visible register state.
func (a *Actor) CPUState() RegisterState {
	var state RegisterState
	a.do(func(c *Core) { state = c.CPUState() })
	return state
}

// Stop shuts down the actor's goroutine. The wrapped Core is left in
// whatever state the last command left it; Stop does not touch it.
func (a *Actor) Stop() {
	close(a.quit)
}
