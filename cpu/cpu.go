package cpu

import "fmt"

const (
	stackBase   uint16 = 0x0100
	resetVector uint16 = 0xFFFC
	irqVector   uint16 = 0xFFFE
	nmiVector   uint16 = 0xFFFA

	resetCycles       = 7
	nmiDispatchCycles = 2
)

// CPU is a 6502 execution core. It owns only register state; all memory
// and timing flow through the System it's given, matching the split the
// teacher draws between mos6502.cpu and mos6502.memory.
type CPU struct {
	a, x, y uint8
	p       uint8
	sp      uint8
	pc      uint16

	mem    System
	cycles uint64

	halted bool
}

// New constructs a CPU bound to mem. Callers must call Reset before
// stepping it; New itself performs no memory access so it can be
// constructed before a cartridge is mapped in.
func New(mem System) *CPU {
	return &CPU{mem: mem}
}

// Reset loads pc from the reset vector, sets sp to its power-on value and
// charges the 7-cycle reset sequence, matching real hardware's internal
// startup reads.
func (c *CPU) Reset() {
	c.a, c.x, c.y = 0, 0, 0
	c.sp = 0xFD
	c.p = FlagUnused | FlagInterrupt
	c.pc = ReadWord(c.mem, resetVector)
	c.cycles = resetCycles
	c.halted = false
	c.mem.Tick(resetCycles)
}

func (c *CPU) PC() uint16      { return c.pc }
func (c *CPU) SetPC(v uint16)  { c.pc = v }
func (c *CPU) A() uint8        { return c.a }
func (c *CPU) X() uint8        { return c.x }
func (c *CPU) Y() uint8        { return c.y }
func (c *CPU) P() uint8        { return c.p }
func (c *CPU) SP() uint8       { return c.sp }
func (c *CPU) Cycles() uint64  { return c.cycles }

// push writes val to the stack page and decrements sp, wrapping within
// page one (no stack-overflow detection, matching the chip).
func (c *CPU) push(val uint8) {
	c.mem.Write(stackBase+uint16(c.sp), val)
	c.sp--
}

func (c *CPU) pop() uint8 {
	c.sp++
	return c.mem.Read(stackBase + uint16(c.sp))
}

func (c *CPU) pushAddr(addr uint16) {
	c.push(uint8(addr >> 8))
	c.push(uint8(addr & 0xFF))
}

func (c *CPU) popAddr() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// Step executes exactly one instruction, polling for a pending NMI first.
// It returns the number of CPU cycles the instruction (plus any page-cross
// or branch-taken penalty) consumed.
func (c *CPU) Step() int {
	if c.mem.PollNMI() {
		return c.dispatchNMI()
	}

	opcodeByte := c.mem.Read(c.pc)
	c.pc++

	op, ok := opcodeTable[opcodeByte]
	if !ok {
		panic(fmt.Sprintf("cpu: illegal opcode $%02X at $%04X", opcodeByte, c.pc-1))
	}

	var opnd operand
	if op.mode != Implied && op.mode != Accumulator {
		opnd = c.operandAddr(op.mode)
	}

	cycles := op.cycles
	cycles += op.exec(c, op.mode, opnd)
	if opnd.crossed && op.pageCrossPenalty {
		cycles++
	}

	c.cycles += uint64(cycles)
	c.mem.Tick(cycles)
	return cycles
}

// dispatchNMI performs the 6502's non-maskable-interrupt sequence: push pc
// and p (with the break flag clear), set the interrupt-disable flag, and
// load pc from the NMI vector.
func (c *CPU) dispatchNMI() int {
	c.pushAddr(c.pc)
	c.push(flagsOff(c.p, FlagBreak) | FlagUnused)
	c.p = flagsOn(c.p, FlagInterrupt)
	c.pc = ReadWord(c.mem, nmiVector)
	c.cycles += nmiDispatchCycles
	c.mem.Tick(nmiDispatchCycles)
	return nmiDispatchCycles
}

func (c *CPU) String() string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X[%s] SP:%02X PC:%04X",
		c.a, c.x, c.y, c.p, statusString(c.p), c.sp, c.pc)
}
