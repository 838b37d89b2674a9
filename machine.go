package brainfuck

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const DEFAULT_CELL_COUNT = 30000

var (
	ErrMaxStepCountReached = errors.New("Step count limit reached")
	ErrInputExhausted      = errors.New("Failed to read input byte")
	ErrScanOutOfBounds     = errors.New("Scan ran off the tape")
)

type MachineConfig struct {
	// CellCount is the tape length. Zero means DEFAULT_CELL_COUNT.
	CellCount uint `toml:"cell_count"`
	// MaxStepCount aborts the run once that many instructions have
	// executed. Zero means unbounded.
	MaxStepCount uint `toml:"max_step_count"`
}

// Machine owns the sole mutable state of a run: the tape, the data
// pointer and the step counter. Input is consumed one byte per Read
// instruction; Write and the tape-state dump emit to Output.
type Machine struct {
	Cells     []uint8
	Pointer   int
	StepCount uint
	Config    *MachineConfig
	Input     io.Reader
	Output    io.Writer
}

func NewMachine(config *MachineConfig, input io.Reader, output io.Writer) *Machine {
	if config == nil {
		config = &MachineConfig{}
	}
	cellCount := config.CellCount
	if cellCount == 0 {
		cellCount = DEFAULT_CELL_COUNT
	}
	return &Machine{
		Cells:  make([]uint8, cellCount),
		Config: config,
		Input:  input,
		Output: output,
	}
}

// Reset zeroes the tape, pointer and step counter so the machine can
// run another program.
func (m *Machine) Reset() {
	for i := range m.Cells {
		m.Cells[i] = 0
	}
	m.Pointer = 0
	m.StepCount = 0
}

// Run executes the compiled program to completion. The first fatal
// condition aborts the run and is returned; a nil error means the
// top-level instruction sequence was exhausted.
func (m *Machine) Run(program *Program) error {
	return m.execute(program.Instructions)
}

func (m *Machine) execute(instructions []*Instruction) error {
	for _, instruction := range instructions {
		if err := m.step(); err != nil {
			return err
		}
		switch instruction.Kind {
		case OP_MOVE:
			m.Move(instruction.Offset)
		case OP_ADD:
			m.Add(instruction.Count)
		case OP_SUB:
			m.Sub(instruction.Count)
		case OP_RESET_CELL:
			m.Cells[m.Pointer] = 0
		case OP_SCAN_CELLS:
			if err := m.Scan(instruction.Forward); err != nil {
				return err
			}
		case OP_WRITE:
			if err := m.Write(); err != nil {
				return err
			}
		case OP_READ:
			if err := m.Read(); err != nil {
				return err
			}
		case OP_TAPE_STATE:
			if err := m.DumpTapeState(); err != nil {
				return err
			}
		case OP_LOOP:
			for m.Cells[m.Pointer] != 0 {
				if err := m.execute(instruction.Body); err != nil {
					return err
				}
				// Each loop re-test counts as a step so that an empty
				// body can't spin past MaxStepCount.
				if err := m.step(); err != nil {
					return err
				}
			}
		default:
			panic(fmt.Sprintf("Unknown instruction kind [%d] encountered!", instruction.Kind))
		}
	}
	return nil
}

func (m *Machine) step() error {
	m.StepCount++
	if max := m.Config.MaxStepCount; max > 0 && m.StepCount > max {
		return fmt.Errorf("%w after [%d] executed instructions", ErrMaxStepCountReached, max)
	}
	return nil
}

// Move shifts the data pointer by offset modulo the tape length. The
// double modulo keeps the result in range for negative offsets and
// for offsets whose magnitude exceeds the tape length.
func (m *Machine) Move(offset int) {
	length := len(m.Cells)
	m.Pointer = ((m.Pointer+offset)%length + length) % length
}

func (m *Machine) Add(count byte) {
	m.Cells[m.Pointer] += count
}

func (m *Machine) Sub(count byte) {
	m.Cells[m.Pointer] -= count
}

// Scan steps the pointer one cell at a time until it lands on a zero
// cell. Unlike Move it does not wrap: a scan that would leave the
// tape is a fault rather than silent out-of-range indexing.
func (m *Machine) Scan(forward bool) error {
	stride := 1
	if !forward {
		stride = -1
	}
	for m.Cells[m.Pointer] != 0 {
		next := m.Pointer + stride
		if next < 0 || next >= len(m.Cells) {
			return fmt.Errorf("%w. Pointer [%d] out of bounds (Tape length: [%d])",
				ErrScanOutOfBounds, next, len(m.Cells))
		}
		m.Pointer = next
	}
	return nil
}

func (m *Machine) Write() error {
	if _, err := m.Output.Write([]byte{m.Cells[m.Pointer]}); err != nil {
		return fmt.Errorf("Failed to write output byte from cell index [%d]. %v", m.Pointer, err)
	}
	return nil
}

func (m *Machine) Read() error {
	var buf [1]byte
	if _, err := io.ReadFull(m.Input, buf[:]); err != nil {
		return fmt.Errorf("%w into cell index [%d]. %v", ErrInputExhausted, m.Pointer, err)
	}
	m.Cells[m.Pointer] = buf[0]
	return nil
}

// DumpTapeState emits every tape index from 0 up to one past the last
// nonzero cell, space-separated, then a line break. An all-zero tape
// emits just the line break.
func (m *Machine) DumpTapeState() error {
	last := 0
	for i := len(m.Cells) - 1; i >= 0; i-- {
		if m.Cells[i] != 0 {
			last = i + 1
			break
		}
	}

	var sb strings.Builder
	for i := 0; i < last; i++ {
		sb.WriteString(strconv.Itoa(i))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')

	if _, err := io.WriteString(m.Output, sb.String()); err != nil {
		return fmt.Errorf("Failed to write tape state. %v", err)
	}
	return nil
}
