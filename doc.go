// sixfourcore - Commodore 64 core emulation for text-mode hosts

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/cyberplant/sixfourcore

License: GPLv3 or later
*/

/*
Package sixfourcore implements the cycle-driven core of a Commodore 64
emulator: a 6502/6510 interpreter, a banked 64 KiB memory bus, the CIA1
interval-timer/interrupt logic, a minimal VIC-II raster stub, and the
KERNAL trap shims that let a loaded BASIC program or PRG image boot and
interact with a host-supplied text screen and keyboard.

The package is deliberately narrow. It owns none of the things a full
emulator frontend needs: no terminal UI, no colour renderer, no control
server, no disassembler, no ROM file discovery. Those are host
concerns. The core receives ROM images and PRG bytes from the host and
exposes a stepping API, a memory/register inspection API, a screen
snapshot, and a keyboard-buffer push (see Core in core.go).

Concurrency model

The core is single-threaded and synchronous: all state transitions
happen inside Step or Run. Hosts that drive the core from a background
goroutine while reading screen memory or injecting keystrokes from
another goroutine should either serialise their own access with a
mutex, or drive the core exclusively through the Actor in actor.go,
which owns the Core and answers Step/InjectKey/ReadMem/Snapshot/Stop
requests over channels.
*/
package sixfourcore
