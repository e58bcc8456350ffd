package cpu

// AddrMode tags how an instruction's operand is located.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
type AddrMode uint8

const (
	Implied AddrMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX // Indexed Indirect: (zp,X)
	IndirectY // Indirect Indexed: (zp),Y
	Relative
)

var modeNames = map[AddrMode]string{
	Implied:     "Implied",
	Accumulator: "Accumulator",
	Immediate:   "Immediate",
	ZeroPage:    "ZeroPage",
	ZeroPageX:   "ZeroPage,X",
	ZeroPageY:   "ZeroPage,Y",
	Absolute:    "Absolute",
	AbsoluteX:   "Absolute,X",
	AbsoluteY:   "Absolute,Y",
	Indirect:    "Indirect",
	IndirectX:   "(Indirect,X)",
	IndirectY:   "(Indirect),Y",
	Relative:    "Relative",
}

func (m AddrMode) String() string {
	return modeNames[m]
}

// samePage reports whether a and b fall in the same 256-byte page.
func samePage(a, b uint16) bool {
	return a&0xFF00 == b&0xFF00
}

// operand is the result of decoding an instruction's operand: the
// effective address (meaningless for Implied/Accumulator) and whether
// computing it crossed a page boundary, used for the conditional cycle
// penalty on read-style indexed/indirect-indexed modes.
type operand struct {
	addr    uint16
	crossed bool
}

// operandAddr resolves mode against memory at the CPU's current pc, which
// must already point at the first operand byte (i.e. past the opcode
// byte). It advances pc past the operand bytes it consumes, so that by
// the time it returns pc addresses the following instruction; jump,
// call and branch instructions override pc again from their exec body.
// Implied and Accumulator never call this.
func (c *CPU) operandAddr(mode AddrMode) operand {
	switch mode {
	case Immediate:
		addr := c.pc
		c.pc++
		return operand{addr: addr}
	case ZeroPage:
		addr := uint16(c.mem.Read(c.pc))
		c.pc++
		return operand{addr: addr}
	case ZeroPageX:
		addr := uint16(c.mem.Read(c.pc) + c.x)
		c.pc++
		return operand{addr: addr}
	case ZeroPageY:
		addr := uint16(c.mem.Read(c.pc) + c.y)
		c.pc++
		return operand{addr: addr}
	case Absolute:
		addr := ReadWord(c.mem, c.pc)
		c.pc += 2
		return operand{addr: addr}
	case AbsoluteX:
		base := ReadWord(c.mem, c.pc)
		c.pc += 2
		addr := base + uint16(c.x)
		return operand{addr: addr, crossed: !samePage(base, addr)}
	case AbsoluteY:
		base := ReadWord(c.mem, c.pc)
		c.pc += 2
		addr := base + uint16(c.y)
		return operand{addr: addr, crossed: !samePage(base, addr)}
	case Indirect:
		ptr := ReadWord(c.mem, c.pc)
		c.pc += 2
		return operand{addr: c.readIndirect(ptr)}
	case IndirectX:
		zp := c.mem.Read(c.pc) + c.x
		c.pc++
		return operand{addr: c.readZeroPageWord(zp)}
	case IndirectY:
		zp := c.mem.Read(c.pc)
		c.pc++
		base := c.readZeroPageWord(zp)
		addr := base + uint16(c.y)
		return operand{addr: addr, crossed: !samePage(base, addr)}
	case Relative:
		offset := int8(c.mem.Read(c.pc))
		c.pc++
		return operand{addr: c.pc + uint16(offset)}
	default:
		panic("cpu: operandAddr called with Implied or Accumulator mode")
	}
}

// readZeroPageWord reads a 16-bit pointer stored at a zero-page address,
// wrapping within page zero (the high byte never crosses into page one).
func (c *CPU) readZeroPageWord(zp uint8) uint16 {
	lo := uint16(c.mem.Read(uint16(zp)))
	hi := uint16(c.mem.Read(uint16(zp + 1)))
	return hi<<8 | lo
}

// readIndirect implements JMP (addr)'s historic page-boundary bug: if the
// low byte of the pointer is 0xFF, the high byte is fetched from the start
// of the same page rather than the next one.
func (c *CPU) readIndirect(ptr uint16) uint16 {
	lo := uint16(c.mem.Read(ptr))
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := uint16(c.mem.Read(hiAddr))
	return hi<<8 | lo
}
