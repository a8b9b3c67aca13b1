package cpu

import "fmt"

// String renders the CPU's register and flag state as a single line, in
// the register=value convention debuggers for this architecture use.
func (cpu *CPU) String() string {
	flags := func(bit bool, ch byte) byte {
		if bit {
			return ch
		}
		return '-'
	}
	return fmt.Sprintf(
		"A:%02X X:%02X Y:%02X SP:%02X PC:%04X P:%c%c%c%c%c%c",
		cpu.A, cpu.X, cpu.Y, cpu.SP, cpu.PC,
		flags(cpu.N, 'N'), flags(cpu.V, 'V'), flags(cpu.D, 'D'),
		flags(cpu.I, 'I'), flags(cpu.Z, 'Z'), flags(cpu.C, 'C'),
	)
}

// Disassemble returns the mnemonic of the instruction at the CPU's
// current PC, without advancing any state.
func (cpu *CPU) Disassemble() string {
	opcode := cpu.memory.Read(cpu.PC)
	inst := cpu.instructions[opcode]
	if inst.Cycles == 0 && opcode != 0x00 {
		return fmt.Sprintf("$%02X (undocumented)", opcode)
	}
	return fmt.Sprintf("%s @ $%04X", inst.Name, cpu.PC)
}
