// Package codemem implements the allocate_codemem external collaborator
// (spec §6): installing a writable buffer that can later be flipped to
// executable, read-execute memory for JIT-compiled code to run from.
//
// Actually invoking the bytes written into a Region requires a
// per-architecture calling-convention trampoline (marshal regs into the
// target's register file, call, marshal back) — that belongs to the
// backend that emitted the bytes, not to this package, and is out of
// scope here the same way target backends themselves are (spec §1,
// "Out of scope"). Region.Call documents that boundary rather than
// papering over it.
package codemem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DefaultSize is the scratch code-memory region size used when a backend
// doesn't request a specific capacity — generous for the small
// straight-line kernels this compiler targets.
const DefaultSize = 4096

// Region is a single mmap'd code buffer. It starts writable and
// non-executable; MakeExecutable flips it read-execute once the backend
// has finished writing, following the write-xor-execute discipline most
// platforms enforce.
type Region struct {
	data       []byte
	written    int
	executable bool
}

// Allocate mmaps a new anonymous, private region of at least size bytes,
// initially PROT_READ|PROT_WRITE.
func Allocate(size int) (*Region, error) {
	if size <= 0 {
		size = DefaultSize
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("codemem: mmap %d bytes: %w", size, err)
	}
	return &Region{data: data}, nil
}

// Size reports the region's total capacity.
func (r *Region) Size() int {
	return len(r.data)
}

// Write copies code into the region starting at offset 0 and returns the
// number of bytes copied. It fails once the region has been made
// executable — writing to RX memory is exactly what the write-xor-execute
// split exists to prevent.
func (r *Region) Write(code []byte) (int, error) {
	if r.executable {
		return 0, fmt.Errorf("codemem: region is already executable, cannot write")
	}
	if len(code) > len(r.data) {
		return 0, fmt.Errorf("codemem: %d bytes does not fit in %d-byte region", len(code), len(r.data))
	}
	n := copy(r.data, code)
	r.written = n
	return n, nil
}

// MakeExecutable flips the region from PROT_READ|PROT_WRITE to
// PROT_READ|PROT_EXEC. After this call Write returns an error.
func (r *Region) MakeExecutable() error {
	if err := unix.Mprotect(r.data, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return fmt.Errorf("codemem: mprotect RX: %w", err)
	}
	r.executable = true
	return nil
}

// Free unmaps the region. Callers must not use the Region afterward.
func (r *Region) Free() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	return err
}

// Call would transfer control into the compiled bytes with regs as the
// target's register-file image. No architecture-independent calling
// convention exists for that, so this always reports the boundary rather
// than attempting to guess one; pkg/target backends that want real
// execution supply their own trampoline and call Bytes() directly.
func (r *Region) Call(regs []uint32) error {
	return fmt.Errorf("codemem: executing a %d-byte compiled region requires a backend-specific calling-convention trampoline, not provided here", r.written)
}

// Bytes returns the portion of the region written so far, for backends
// that build their own trampoline.
func (r *Region) Bytes() []byte {
	return r.data[:r.written]
}
