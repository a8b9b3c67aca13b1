// Package cpu implements the NES's 6502-family CPU: the documented
// instruction set, the addressing modes that feed it, and the
// RESET/NMI/IRQ/BRK interrupt sequence. Decimal mode is tracked as a
// flag bit but never changes arithmetic, matching this console's CPU
// variant.
package cpu

// AddressingMode names how an instruction's operand address is formed.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

const (
	stackBase = 0x0100

	flagN = 0x80
	flagV = 0x40
	flagU = 0x20 // unused, always read back as 1
	flagB = 0x10
	flagD = 0x08
	flagI = 0x04
	flagZ = 0x02
	flagC = 0x01

	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// Instruction describes one opcode's name, addressing mode, encoded
// length, and base cycle cost (before any page-cross/branch surcharge).
type Instruction struct {
	Name   string
	Mode   AddressingMode
	Bytes  uint8
	Cycles uint8
}

// Memory is the bus interface the CPU executes against.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU is the 6502 core: registers, flags, and the instruction/interrupt
// execution loop.
type CPU struct {
	A, X, Y uint8
	SP      uint8
	PC      uint16

	C, Z, I, D, V, N bool // status flags; B is not stored (see statusByte)

	memory Memory
	cycles uint64

	nmiPending bool
	irqPending bool

	instructions [256]Instruction
}

// New creates a CPU wired to memory. Call Reset before stepping it.
func New(memory Memory) *CPU {
	cpu := &CPU{memory: memory}
	cpu.initInstructions()
	return cpu
}

// Reset performs the 6502 reset sequence: PC loads from the reset
// vector, SP becomes $FD, and P becomes $24 (I set, unused bit set,
// everything else clear).
func (cpu *CPU) Reset() {
	cpu.A, cpu.X, cpu.Y = 0, 0, 0
	cpu.SP = 0xFD
	cpu.C, cpu.Z, cpu.D, cpu.V, cpu.N = false, false, false, false, false
	cpu.I = true
	cpu.nmiPending = false
	cpu.irqPending = false

	low := uint16(cpu.memory.Read(resetVector))
	high := uint16(cpu.memory.Read(resetVector + 1))
	cpu.PC = (high << 8) | low
}

// TriggerNMI raises the NMI line; it is serviced at the next instruction
// boundary and cannot be masked.
func (cpu *CPU) TriggerNMI() {
	cpu.nmiPending = true
}

// SetIRQ sets the level-sensitive IRQ line state.
func (cpu *CPU) SetIRQ(asserted bool) {
	cpu.irqPending = asserted
}

// Cycles returns the CPU's free-running cycle counter.
func (cpu *CPU) Cycles() uint64 {
	return cpu.cycles
}

// Step services a pending interrupt if one is due, otherwise executes
// one instruction, and returns the number of cycles consumed.
func (cpu *CPU) Step() uint64 {
	if cpu.nmiPending {
		cpu.nmiPending = false
		cycles := cpu.serviceInterrupt(nmiVector, false)
		cpu.cycles += cycles
		return cycles
	}
	if cpu.irqPending && !cpu.I {
		cycles := cpu.serviceInterrupt(irqVector, false)
		cpu.cycles += cycles
		return cycles
	}

	opcode := cpu.memory.Read(cpu.PC)
	inst := cpu.instructions[opcode]

	if inst.Cycles == 0 {
		// Undocumented opcode: treated as a 2-cycle no-op, advancing past
		// only the opcode byte itself.
		cpu.PC++
		cpu.cycles += 2
		return 2
	}

	address, pageCrossed := cpu.operandAddress(inst.Mode)
	extra := cpu.execute(opcode, address, pageCrossed)

	total := uint64(inst.Cycles) + uint64(extra)
	cpu.cycles += total
	return total
}

// operandAddress resolves the effective address for mode, advancing PC
// past the instruction's operand bytes, and reports whether an
// address-computation crossed a page boundary.
func (cpu *CPU) operandAddress(mode AddressingMode) (uint16, bool) {
	switch mode {
	case Implied, Accumulator:
		cpu.PC++
		return 0, false

	case Immediate:
		addr := cpu.PC + 1
		cpu.PC += 2
		return addr, false

	case ZeroPage:
		addr := uint16(cpu.memory.Read(cpu.PC + 1))
		cpu.PC += 2
		return addr, false

	case ZeroPageX:
		base := cpu.memory.Read(cpu.PC + 1)
		cpu.PC += 2
		return uint16(base + cpu.X), false

	case ZeroPageY:
		base := cpu.memory.Read(cpu.PC + 1)
		cpu.PC += 2
		return uint16(base + cpu.Y), false

	case Relative:
		offset := int8(cpu.memory.Read(cpu.PC + 1))
		next := cpu.PC + 2
		target := uint16(int32(next) + int32(offset))
		cpu.PC = next
		return target, (next & 0xFF00) != (target & 0xFF00)

	case Absolute:
		addr := cpu.fetch16(cpu.PC + 1)
		cpu.PC += 3
		return addr, false

	case AbsoluteX:
		base := cpu.fetch16(cpu.PC + 1)
		addr := base + uint16(cpu.X)
		cpu.PC += 3
		return addr, (base & 0xFF00) != (addr & 0xFF00)

	case AbsoluteY:
		base := cpu.fetch16(cpu.PC + 1)
		addr := base + uint16(cpu.Y)
		cpu.PC += 3
		return addr, (base & 0xFF00) != (addr & 0xFF00)

	case Indirect: // JMP only; reproduces the page-wrap bug exactly.
		ptr := cpu.fetch16(cpu.PC + 1)
		cpu.PC += 3
		low := uint16(cpu.memory.Read(ptr))
		high := uint16(cpu.memory.Read((ptr & 0xFF00) | ((ptr + 1) & 0x00FF)))
		return (high << 8) | low, false

	case IndexedIndirect: // (zp,X)
		base := cpu.memory.Read(cpu.PC + 1)
		ptr := base + cpu.X
		cpu.PC += 2
		low := uint16(cpu.memory.Read(uint16(ptr)))
		high := uint16(cpu.memory.Read(uint16(ptr + 1)))
		return (high << 8) | low, false

	case IndirectIndexed: // (zp),Y
		ptr := cpu.memory.Read(cpu.PC + 1)
		cpu.PC += 2
		low := uint16(cpu.memory.Read(uint16(ptr)))
		high := uint16(cpu.memory.Read(uint16(ptr + 1)))
		base := (high << 8) | low
		addr := base + uint16(cpu.Y)
		return addr, (base & 0xFF00) != (addr & 0xFF00)

	default:
		return 0, false
	}
}

func (cpu *CPU) fetch16(addr uint16) uint16 {
	low := uint16(cpu.memory.Read(addr))
	high := uint16(cpu.memory.Read(addr + 1))
	return (high << 8) | low
}

// shift (execute.go) routes through the accumulator for Accumulator-mode
// read-modify-write instructions (ASL/LSR/ROL/ROR A), which never touch
// memory.

func (cpu *CPU) push(value uint8) {
	cpu.memory.Write(stackBase+uint16(cpu.SP), value)
	cpu.SP--
}

func (cpu *CPU) pull() uint8 {
	cpu.SP++
	return cpu.memory.Read(stackBase + uint16(cpu.SP))
}

func (cpu *CPU) pushWord(v uint16) {
	cpu.push(uint8(v >> 8))
	cpu.push(uint8(v))
}

func (cpu *CPU) pullWord() uint16 {
	low := uint16(cpu.pull())
	high := uint16(cpu.pull())
	return (high << 8) | low
}

func (cpu *CPU) setZN(v uint8) {
	cpu.Z = v == 0
	cpu.N = v&flagN != 0
}

// statusByte packs the flag bits as they appear in the P register, with
// the unused bit always 1 and B set according to the caller (the 6502
// only materializes B when P is pushed to the stack).
func (cpu *CPU) statusByte(b bool) uint8 {
	var p uint8 = flagU
	if cpu.N {
		p |= flagN
	}
	if cpu.V {
		p |= flagV
	}
	if b {
		p |= flagB
	}
	if cpu.D {
		p |= flagD
	}
	if cpu.I {
		p |= flagI
	}
	if cpu.Z {
		p |= flagZ
	}
	if cpu.C {
		p |= flagC
	}
	return p
}

// StatusByte returns P as the CPU would report it (B=0, as it reads
// outside of a push).
func (cpu *CPU) StatusByte() uint8 {
	return cpu.statusByte(false)
}

func (cpu *CPU) setStatusByte(p uint8) {
	cpu.N = p&flagN != 0
	cpu.V = p&flagV != 0
	cpu.D = p&flagD != 0
	cpu.I = p&flagI != 0
	cpu.Z = p&flagZ != 0
	cpu.C = p&flagC != 0
}

// serviceInterrupt pushes PC and P (with B according to brk) and vectors
// PC through vector. Callers are responsible for accounting the fixed
// 7-cycle cost this always takes; BRK's cost is already folded into its
// table entry.
func (cpu *CPU) serviceInterrupt(vector uint16, brk bool) uint64 {
	cpu.pushWord(cpu.PC)
	cpu.push(cpu.statusByte(brk))
	cpu.I = true
	cpu.PC = cpu.fetch16(vector)
	return 7
}
