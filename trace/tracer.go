// Package trace renders a CPU instruction as a single golden-log style
// line: address, raw opcode bytes, disassembled mnemonic and operand,
// and register state. Every memory access it makes is non-mutating, so
// tracing never perturbs the machine it's observing.
package trace

import (
	"fmt"
	"strings"

	"github.com/kestrel-emu/nescore/cpu"
)

// PeekMemory is a read-only, side-effect-free view of the address space.
// bus.Bus satisfies this via its Peek method.
type PeekMemory interface {
	Peek(addr uint16) uint8
}

// Registers is the subset of *cpu.CPU a trace line needs.
type Registers interface {
	PC() uint16
	A() uint8
	X() uint8
	Y() uint8
	P() uint8
	SP() uint8
	Cycles() uint64
}

func peekWord(mem PeekMemory, addr uint16) uint16 {
	lo := uint16(mem.Peek(addr))
	hi := uint16(mem.Peek(addr + 1))
	return hi<<8 | lo
}

// Line renders one instruction trace line for the instruction at regs'
// current PC, in the style of a classic NES golden log:
//
//	8000  A9 C0     LDA #$C0                        A:00 X:00 Y:00 P:24 SP:FD CYC:7
func Line(mem PeekMemory, regs Registers) string {
	pc := regs.PC()
	opcodeByte := mem.Peek(pc)
	op, ok := cpu.Lookup(opcodeByte)
	if !ok {
		return fmt.Sprintf("%04X  %02X        .UNKNOWN", pc, opcodeByte)
	}

	raw := make([]byte, 0, 3)
	raw = append(raw, opcodeByte)
	for i := 1; i <= op.OperandBytes(); i++ {
		raw = append(raw, mem.Peek(pc+uint16(i)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%04X  ", pc)
	for _, r := range raw {
		fmt.Fprintf(&b, "%02X ", r)
	}
	for i := len(raw); i < 3; i++ {
		b.WriteString("   ")
	}
	fmt.Fprintf(&b, " %s %-28s", op.Name, operandString(mem, regs, op, raw))
	fmt.Fprintf(&b, "A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		regs.A(), regs.X(), regs.Y(), regs.P(), regs.SP(), regs.Cycles())
	return b.String()
}

func operandString(mem PeekMemory, regs Registers, op cpu.Opcode, raw []byte) string {
	switch op.Mode() {
	case cpu.Implied, cpu.Accumulator:
		return ""
	case cpu.Immediate:
		return fmt.Sprintf("#$%02X", raw[1])
	case cpu.ZeroPage:
		addr := uint16(raw[1])
		return fmt.Sprintf("$%02X = %02X", raw[1], mem.Peek(addr))
	case cpu.ZeroPageX:
		addr := uint16(raw[1] + regs.X())
		return fmt.Sprintf("$%02X,X @ %02X = %02X", raw[1], addr, mem.Peek(addr))
	case cpu.ZeroPageY:
		addr := uint16(raw[1] + regs.Y())
		return fmt.Sprintf("$%02X,Y @ %02X = %02X", raw[1], addr, mem.Peek(addr))
	case cpu.Absolute:
		addr := uint16(raw[2])<<8 | uint16(raw[1])
		if op.Name == "JMP" || op.Name == "JSR" {
			return fmt.Sprintf("$%04X", addr)
		}
		return fmt.Sprintf("$%04X = %02X", addr, mem.Peek(addr))
	case cpu.AbsoluteX:
		base := uint16(raw[2])<<8 | uint16(raw[1])
		addr := base + uint16(regs.X())
		return fmt.Sprintf("$%04X,X @ %04X = %02X", base, addr, mem.Peek(addr))
	case cpu.AbsoluteY:
		base := uint16(raw[2])<<8 | uint16(raw[1])
		addr := base + uint16(regs.Y())
		return fmt.Sprintf("$%04X,Y @ %04X = %02X", base, addr, mem.Peek(addr))
	case cpu.Indirect:
		ptr := uint16(raw[2])<<8 | uint16(raw[1])
		return fmt.Sprintf("($%04X)", ptr)
	case cpu.IndirectX:
		zp := raw[1] + regs.X()
		ptr := peekWord(mem, uint16(zp))
		return fmt.Sprintf("($%02X,X) @ %02X = %04X = %02X", raw[1], zp, ptr, mem.Peek(ptr))
	case cpu.IndirectY:
		base := peekWord(mem, uint16(raw[1]))
		addr := base + uint16(regs.Y())
		return fmt.Sprintf("($%02X),Y = %04X @ %04X = %02X", raw[1], base, addr, mem.Peek(addr))
	case cpu.Relative:
		offset := int8(raw[1])
		target := regs.PC() + 2 + uint16(offset)
		return fmt.Sprintf("$%04X", target)
	default:
		return ""
	}
}
