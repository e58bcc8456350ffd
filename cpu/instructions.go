package cpu

// readOperand fetches the operand's value: the accumulator itself for
// Accumulator mode, otherwise a memory read at the decoded address.
func (c *CPU) readOperand(mode AddrMode, opnd operand) uint8 {
	if mode == Accumulator {
		return c.a
	}
	return c.mem.Read(opnd.addr)
}

// writeOperand is readOperand's write-side counterpart, used by the
// read-modify-write instructions (ASL, LSR, ROL, ROR, INC, DEC and the
// undocumented RMW+logical combos).
func (c *CPU) writeOperand(mode AddrMode, opnd operand, val uint8) {
	if mode == Accumulator {
		c.a = val
		return
	}
	c.mem.Write(opnd.addr, val)
}

func (c *CPU) setA(val uint8) {
	c.a = val
	c.p = zeroNegativeFromResult(c.p, val)
}

func (c *CPU) setX(val uint8) {
	c.x = val
	c.p = zeroNegativeFromResult(c.p, val)
}

func (c *CPU) setY(val uint8) {
	c.y = val
	c.p = zeroNegativeFromResult(c.p, val)
}

// ADC adds memory plus the carry flag to A. Overflow is set when the
// operands share a sign but the result's sign differs from theirs.
func (c *CPU) ADC(mode AddrMode, opnd operand) int {
	m := c.readOperand(mode, opnd)
	carry := uint16(0)
	if flagTest(c.p, FlagCarry) {
		carry = 1
	}
	sum := uint16(c.a) + uint16(m) + carry
	result := uint8(sum)

	if sum > 0xFF {
		c.p = flagsOn(c.p, FlagCarry)
	} else {
		c.p = flagsOff(c.p, FlagCarry)
	}
	if (c.a^m)&0x80 == 0 && (c.a^result)&0x80 != 0 {
		c.p = flagsOn(c.p, FlagOverflow)
	} else {
		c.p = flagsOff(c.p, FlagOverflow)
	}
	c.setA(result)
	return 0
}

// SBC is ADC against memory's ones' complement, per the 6502's documented
// subtract-via-add identity: A - M - (1-C) == A + ^M + C.
func (c *CPU) SBC(mode AddrMode, opnd operand) int {
	m := ^c.readOperand(mode, opnd)
	carry := uint16(0)
	if flagTest(c.p, FlagCarry) {
		carry = 1
	}
	sum := uint16(c.a) + uint16(m) + carry
	result := uint8(sum)

	if sum > 0xFF {
		c.p = flagsOn(c.p, FlagCarry)
	} else {
		c.p = flagsOff(c.p, FlagCarry)
	}
	if (c.a^m)&0x80 == 0 && (c.a^result)&0x80 != 0 {
		c.p = flagsOn(c.p, FlagOverflow)
	} else {
		c.p = flagsOff(c.p, FlagOverflow)
	}
	c.setA(result)
	return 0
}

func (c *CPU) AND(mode AddrMode, opnd operand) int {
	c.setA(c.a & c.readOperand(mode, opnd))
	return 0
}

func (c *CPU) EOR(mode AddrMode, opnd operand) int {
	c.setA(c.a ^ c.readOperand(mode, opnd))
	return 0
}

func (c *CPU) ORA(mode AddrMode, opnd operand) int {
	c.setA(c.a | c.readOperand(mode, opnd))
	return 0
}

func (c *CPU) ASL(mode AddrMode, opnd operand) int {
	old := c.readOperand(mode, opnd)
	result := old << 1
	c.p = carryFromMSB(c.p, old)
	c.p = zeroNegativeFromResult(c.p, result)
	c.writeOperand(mode, opnd, result)
	return 0
}

func (c *CPU) LSR(mode AddrMode, opnd operand) int {
	old := c.readOperand(mode, opnd)
	result := old >> 1
	c.p = carryFromLSB(c.p, old)
	c.p = zeroNegativeFromResult(c.p, result)
	c.writeOperand(mode, opnd, result)
	return 0
}

func (c *CPU) ROL(mode AddrMode, opnd operand) int {
	old := c.readOperand(mode, opnd)
	var carryIn uint8
	if flagTest(c.p, FlagCarry) {
		carryIn = 1
	}
	result := old<<1 | carryIn
	c.p = carryFromMSB(c.p, old)
	c.p = zeroNegativeFromResult(c.p, result)
	c.writeOperand(mode, opnd, result)
	return 0
}

func (c *CPU) ROR(mode AddrMode, opnd operand) int {
	old := c.readOperand(mode, opnd)
	var carryIn uint8
	if flagTest(c.p, FlagCarry) {
		carryIn = 0x80
	}
	result := old>>1 | carryIn
	c.p = carryFromLSB(c.p, old)
	c.p = zeroNegativeFromResult(c.p, result)
	c.writeOperand(mode, opnd, result)
	return 0
}

func (c *CPU) INC(mode AddrMode, opnd operand) int {
	result := c.readOperand(mode, opnd) + 1
	c.p = zeroNegativeFromResult(c.p, result)
	c.writeOperand(mode, opnd, result)
	return 0
}

func (c *CPU) DEC(mode AddrMode, opnd operand) int {
	result := c.readOperand(mode, opnd) - 1
	c.p = zeroNegativeFromResult(c.p, result)
	c.writeOperand(mode, opnd, result)
	return 0
}

func (c *CPU) INX(mode AddrMode, opnd operand) int { c.setX(c.x + 1); return 0 }
func (c *CPU) INY(mode AddrMode, opnd operand) int { c.setY(c.y + 1); return 0 }
func (c *CPU) DEX(mode AddrMode, opnd operand) int { c.setX(c.x - 1); return 0 }
func (c *CPU) DEY(mode AddrMode, opnd operand) int { c.setY(c.y - 1); return 0 }

// compare is the shared core of CMP/CPX/CPY: subtract without storing,
// setting carry on reg >= m and zero/negative from the difference.
func (c *CPU) compare(reg, m uint8) {
	diff := reg - m
	if reg >= m {
		c.p = flagsOn(c.p, FlagCarry)
	} else {
		c.p = flagsOff(c.p, FlagCarry)
	}
	c.p = zeroNegativeFromResult(c.p, diff)
}

func (c *CPU) CMP(mode AddrMode, opnd operand) int {
	c.compare(c.a, c.readOperand(mode, opnd))
	return 0
}

func (c *CPU) CPX(mode AddrMode, opnd operand) int {
	c.compare(c.x, c.readOperand(mode, opnd))
	return 0
}

func (c *CPU) CPY(mode AddrMode, opnd operand) int {
	c.compare(c.y, c.readOperand(mode, opnd))
	return 0
}

// BIT tests A & memory without storing the result: zero from that
// result, negative and overflow copied straight from memory's bits 7/6.
func (c *CPU) BIT(mode AddrMode, opnd operand) int {
	m := c.readOperand(mode, opnd)
	c.p = zeroFromResult(c.p, c.a&m)
	if m&0x80 != 0 {
		c.p = flagsOn(c.p, FlagNegative)
	} else {
		c.p = flagsOff(c.p, FlagNegative)
	}
	if m&0x40 != 0 {
		c.p = flagsOn(c.p, FlagOverflow)
	} else {
		c.p = flagsOff(c.p, FlagOverflow)
	}
	return 0
}

// branch is the shared core of the eight conditional branches: when cond
// holds, pc jumps to the pre-computed relative target and the
// instruction earns one extra cycle, plus one more if that jump crossed
// a page boundary.
func (c *CPU) branch(cond bool, opnd operand) int {
	if !cond {
		return 0
	}
	extra := 1
	if !samePage(c.pc, opnd.addr) {
		extra++
	}
	c.pc = opnd.addr
	return extra
}

func (c *CPU) BCC(mode AddrMode, opnd operand) int { return c.branch(!flagTest(c.p, FlagCarry), opnd) }
func (c *CPU) BCS(mode AddrMode, opnd operand) int { return c.branch(flagTest(c.p, FlagCarry), opnd) }
func (c *CPU) BEQ(mode AddrMode, opnd operand) int { return c.branch(flagTest(c.p, FlagZero), opnd) }
func (c *CPU) BNE(mode AddrMode, opnd operand) int { return c.branch(!flagTest(c.p, FlagZero), opnd) }
func (c *CPU) BMI(mode AddrMode, opnd operand) int { return c.branch(flagTest(c.p, FlagNegative), opnd) }
func (c *CPU) BPL(mode AddrMode, opnd operand) int {
	return c.branch(!flagTest(c.p, FlagNegative), opnd)
}
func (c *CPU) BVC(mode AddrMode, opnd operand) int {
	return c.branch(!flagTest(c.p, FlagOverflow), opnd)
}
func (c *CPU) BVS(mode AddrMode, opnd operand) int { return c.branch(flagTest(c.p, FlagOverflow), opnd) }

func (c *CPU) CLC(mode AddrMode, opnd operand) int { c.p = flagsOff(c.p, FlagCarry); return 0 }
func (c *CPU) CLD(mode AddrMode, opnd operand) int { c.p = flagsOff(c.p, FlagDecimal); return 0 }
func (c *CPU) CLI(mode AddrMode, opnd operand) int { c.p = flagsOff(c.p, FlagInterrupt); return 0 }
func (c *CPU) CLV(mode AddrMode, opnd operand) int { c.p = flagsOff(c.p, FlagOverflow); return 0 }
func (c *CPU) SEC(mode AddrMode, opnd operand) int { c.p = flagsOn(c.p, FlagCarry); return 0 }
func (c *CPU) SED(mode AddrMode, opnd operand) int { c.p = flagsOn(c.p, FlagDecimal); return 0 }
func (c *CPU) SEI(mode AddrMode, opnd operand) int { c.p = flagsOn(c.p, FlagInterrupt); return 0 }

func (c *CPU) LDA(mode AddrMode, opnd operand) int { c.setA(c.readOperand(mode, opnd)); return 0 }
func (c *CPU) LDX(mode AddrMode, opnd operand) int { c.setX(c.readOperand(mode, opnd)); return 0 }
func (c *CPU) LDY(mode AddrMode, opnd operand) int { c.setY(c.readOperand(mode, opnd)); return 0 }

func (c *CPU) STA(mode AddrMode, opnd operand) int { c.mem.Write(opnd.addr, c.a); return 0 }
func (c *CPU) STX(mode AddrMode, opnd operand) int { c.mem.Write(opnd.addr, c.x); return 0 }
func (c *CPU) STY(mode AddrMode, opnd operand) int { c.mem.Write(opnd.addr, c.y); return 0 }

func (c *CPU) TAX(mode AddrMode, opnd operand) int { c.setX(c.a); return 0 }
func (c *CPU) TAY(mode AddrMode, opnd operand) int { c.setY(c.a); return 0 }
func (c *CPU) TXA(mode AddrMode, opnd operand) int { c.setA(c.x); return 0 }
func (c *CPU) TYA(mode AddrMode, opnd operand) int { c.setA(c.y); return 0 }
func (c *CPU) TSX(mode AddrMode, opnd operand) int { c.setX(c.sp); return 0 }
func (c *CPU) TXS(mode AddrMode, opnd operand) int { c.sp = c.x; return 0 } // TXS never touches flags

func (c *CPU) PHA(mode AddrMode, opnd operand) int { c.push(c.a); return 0 }
func (c *CPU) PHP(mode AddrMode, opnd operand) int {
	// The byte pushed always has bits 4 and 5 set, even though the live
	// status register's bit 4 reflects whatever last set it.
	c.push(c.p | FlagBreak | FlagUnused)
	return 0
}
func (c *CPU) PLA(mode AddrMode, opnd operand) int { c.setA(c.pop()); return 0 }
func (c *CPU) PLP(mode AddrMode, opnd operand) int {
	c.p = (c.pop() &^ FlagBreak) | FlagUnused
	return 0
}

func (c *CPU) JMP(mode AddrMode, opnd operand) int {
	c.pc = opnd.addr
	return 0
}

func (c *CPU) JSR(mode AddrMode, opnd operand) int {
	c.pushAddr(c.pc - 1)
	c.pc = opnd.addr
	return 0
}

func (c *CPU) RTS(mode AddrMode, opnd operand) int {
	c.pc = c.popAddr() + 1
	return 0
}

func (c *CPU) RTI(mode AddrMode, opnd operand) int {
	c.p = (c.pop() &^ FlagBreak) | FlagUnused
	c.pc = c.popAddr()
	return 0
}

// BRK pushes pc+2 (BRK's operand byte is a padding byte, conventionally
// a signature for the break handler) and p with the break flag set, then
// loads pc from the IRQ/BRK vector at 0xFFFE (NMI uses its own vector at
// 0xFFFA).
func (c *CPU) BRK(mode AddrMode, opnd operand) int {
	c.pushAddr(c.pc + 1)
	c.push(c.p | FlagBreak | FlagUnused)
	c.p = flagsOn(c.p, FlagInterrupt)
	c.pc = ReadWord(c.mem, irqVector)
	return 0
}

func (c *CPU) NOP(mode AddrMode, opnd operand) int { return 0 }
