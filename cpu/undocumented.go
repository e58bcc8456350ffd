package cpu

// The stable undocumented opcodes are each a fused pair of official
// operations sharing one memory cycle, a side effect of how the 6502's
// ALU and instruction decoder overlap internally. LAX and DCP reuse the
// official helpers (setA/setX, and compare, CMP's core); ISB, SLO, RLA,
// SRE and RRA carry their own inline copy of the shift, rotate and
// add/subtract flag logic of the official instructions they fuse.

// LAX loads both A and X from memory in one opcode.
func (c *CPU) LAX(mode AddrMode, opnd operand) int {
	val := c.readOperand(mode, opnd)
	c.setA(val)
	c.setX(val)
	return 0
}

// SAX stores A & X without touching any flag.
func (c *CPU) SAX(mode AddrMode, opnd operand) int {
	c.mem.Write(opnd.addr, c.a&c.x)
	return 0
}

// DCP decrements memory then compares it against A, as two official
// passes over the same address.
func (c *CPU) DCP(mode AddrMode, opnd operand) int {
	result := c.readOperand(mode, opnd) - 1
	c.writeOperand(mode, opnd, result)
	c.compare(c.a, result)
	return 0
}

// ISB increments memory then subtracts it from A (INC + SBC).
func (c *CPU) ISB(mode AddrMode, opnd operand) int {
	result := c.readOperand(mode, opnd) + 1
	c.writeOperand(mode, opnd, result)
	m := ^result
	carry := uint16(0)
	if flagTest(c.p, FlagCarry) {
		carry = 1
	}
	sum := uint16(c.a) + uint16(m) + carry
	sbcResult := uint8(sum)
	if sum > 0xFF {
		c.p = flagsOn(c.p, FlagCarry)
	} else {
		c.p = flagsOff(c.p, FlagCarry)
	}
	if (c.a^m)&0x80 == 0 && (c.a^sbcResult)&0x80 != 0 {
		c.p = flagsOn(c.p, FlagOverflow)
	} else {
		c.p = flagsOff(c.p, FlagOverflow)
	}
	c.setA(sbcResult)
	return 0
}

// SLO shifts memory left then ORs the result into A (ASL + ORA).
func (c *CPU) SLO(mode AddrMode, opnd operand) int {
	old := c.readOperand(mode, opnd)
	result := old << 1
	c.p = carryFromMSB(c.p, old)
	c.writeOperand(mode, opnd, result)
	c.setA(c.a | result)
	return 0
}

// RLA rotates memory left then ANDs the result into A (ROL + AND).
func (c *CPU) RLA(mode AddrMode, opnd operand) int {
	old := c.readOperand(mode, opnd)
	var carryIn uint8
	if flagTest(c.p, FlagCarry) {
		carryIn = 1
	}
	result := old<<1 | carryIn
	c.p = carryFromMSB(c.p, old)
	c.writeOperand(mode, opnd, result)
	c.setA(c.a & result)
	return 0
}

// SRE shifts memory right then EORs the result into A (LSR + EOR).
func (c *CPU) SRE(mode AddrMode, opnd operand) int {
	old := c.readOperand(mode, opnd)
	result := old >> 1
	c.p = carryFromLSB(c.p, old)
	c.writeOperand(mode, opnd, result)
	c.setA(c.a ^ result)
	return 0
}

// RRA rotates memory right then adds the result into A with carry
// (ROR + ADC).
func (c *CPU) RRA(mode AddrMode, opnd operand) int {
	old := c.readOperand(mode, opnd)
	var carryIn uint8
	if flagTest(c.p, FlagCarry) {
		carryIn = 0x80
	}
	result := old>>1 | carryIn
	c.p = carryFromLSB(c.p, old)
	c.writeOperand(mode, opnd, result)

	m := result
	carry := uint16(0)
	if flagTest(c.p, FlagCarry) {
		carry = 1
	}
	sum := uint16(c.a) + uint16(m) + carry
	adcResult := uint8(sum)
	if sum > 0xFF {
		c.p = flagsOn(c.p, FlagCarry)
	} else {
		c.p = flagsOff(c.p, FlagCarry)
	}
	if (c.a^m)&0x80 == 0 && (c.a^adcResult)&0x80 != 0 {
		c.p = flagsOn(c.p, FlagOverflow)
	} else {
		c.p = flagsOff(c.p, FlagOverflow)
	}
	c.setA(adcResult)
	return 0
}

// LAS ANDs memory with SP, loading the result into A, X and SP together.
func (c *CPU) LAS(mode AddrMode, opnd operand) int {
	result := c.readOperand(mode, opnd) & c.sp
	c.a = result
	c.x = result
	c.sp = result
	c.p = zeroNegativeFromResult(c.p, result)
	return 0
}

// AHX (also known as SHA) stores A & X & (high byte of the target
// address + 1). Real hardware's unstable variant depends on page-cross
// timing this core doesn't model; the common, stable case is implemented.
func (c *CPU) AHX(mode AddrMode, opnd operand) int {
	hi := uint8(opnd.addr>>8) + 1
	c.mem.Write(opnd.addr, c.a&c.x&hi)
	return 0
}

// SHY stores Y & (high byte of the target address + 1).
func (c *CPU) SHY(mode AddrMode, opnd operand) int {
	hi := uint8(opnd.addr>>8) + 1
	c.mem.Write(opnd.addr, c.y&hi)
	return 0
}

// SHX stores X & (high byte of the target address + 1).
func (c *CPU) SHX(mode AddrMode, opnd operand) int {
	hi := uint8(opnd.addr>>8) + 1
	c.mem.Write(opnd.addr, c.x&hi)
	return 0
}
