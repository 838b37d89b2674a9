package brainfuck

import (
	"bytes"
	"errors"
	str "strings"
	test "testing"
)

func makeMachine(cellCount uint, input string) (*Machine, *bytes.Buffer) {
	var output bytes.Buffer
	m := NewMachine(&MachineConfig{CellCount: cellCount}, str.NewReader(input), &output)
	return m, &output
}

func compileAndRun(t *test.T, m *Machine, source string) error {
	t.Helper()
	program, err := Compile(source)
	if err != nil {
		t.Fatalf("Unexpected failure calling Compile(). %v", err)
	}
	return m.Run(program)
}

func TestNewMachineDefaults(t *test.T) {
	m := NewMachine(nil, str.NewReader(""), &bytes.Buffer{})

	if len(m.Cells) != DEFAULT_CELL_COUNT {
		t.Errorf("Tape length [%d] is not expected value [%d]", len(m.Cells), DEFAULT_CELL_COUNT)
	}

	if m.Pointer != 0 {
		t.Errorf("Data pointer [%d] is not expected value [0]", m.Pointer)
	}
}

func TestMoveWraparound(t *test.T) {
	m, _ := makeMachine(10, "")

	cases := []struct {
		pointer  int
		offset   int
		expected int
	}{
		{0, 3, 3},
		{0, -1, 9},
		{9, 1, 0},
		{0, 10, 0},
		{0, 25, 5},
		{0, -25, 5},
		{7, -100, 7},
		{3, 1000003, 6},
	}

	for _, c := range cases {
		m.Pointer = c.pointer
		m.Move(c.offset)
		if m.Pointer != c.expected {
			t.Errorf("Move(%d) from pointer [%d] landed at [%d], expected [%d]",
				c.offset, c.pointer, m.Pointer, c.expected)
		}
	}
}

func TestAddSubWraparound(t *test.T) {
	m, _ := makeMachine(10, "")

	m.Add(200)
	m.Add(100)
	if m.Cells[0] != 44 {
		t.Errorf("Cell value [%d] is not expected wrapped value [44]", m.Cells[0])
	}

	m.Cells[0] = 0
	m.Sub(1)
	if m.Cells[0] != 255 {
		t.Errorf("Cell value [%d] is not expected wrapped value [255]", m.Cells[0])
	}
}

func TestIncrementRunNetEffect(t *test.T) {
	for _, n := range []int{1, 5, 255, 256, 300} {
		m, _ := makeMachine(10, "")
		if err := compileAndRun(t, m, str.Repeat("+", n)); err != nil {
			t.Errorf("Unexpected failure running [%d] increments. %v", n, err)
		}
		if m.Cells[0] != uint8(n%256) {
			t.Errorf("Net effect of [%d] increments is [%d], expected [%d]",
				n, m.Cells[0], n%256)
		}
	}

	for _, n := range []int{1, 5, 255, 256, 300} {
		m, _ := makeMachine(10, "")
		if err := compileAndRun(t, m, str.Repeat("-", n)); err != nil {
			t.Errorf("Unexpected failure running [%d] decrements. %v", n, err)
		}
		if m.Cells[0] != uint8((256-n%256)%256) {
			t.Errorf("Net effect of [%d] decrements is [%d], expected [%d]",
				n, m.Cells[0], (256-n%256)%256)
		}
	}
}

func TestResetCellIdiom(t *test.T) {
	for _, source := range []string{"[-]", "[+]"} {
		m, _ := makeMachine(10, "")
		m.Cells[0] = 7

		if err := compileAndRun(t, m, source); err != nil {
			t.Errorf("Unexpected failure running %s. %v", source, err)
		}

		if m.Cells[0] != 0 {
			t.Errorf("Cell value [%d] after %s is not 0", m.Cells[0], source)
		}

		if m.Pointer != 0 {
			t.Errorf("Data pointer [%d] moved during %s", m.Pointer, source)
		}
	}
}

func TestScanCellsForward(t *test.T) {
	m, _ := makeMachine(10, "")
	m.Cells[0] = 1
	m.Cells[1] = 2
	m.Cells[2] = 3

	if err := compileAndRun(t, m, "[>]"); err != nil {
		t.Errorf("Unexpected failure running [>]. %v", err)
	}

	if m.Pointer != 3 {
		t.Errorf("Data pointer [%d] is not at nearest zero cell [3]", m.Pointer)
	}

	if m.Cells[0] != 1 || m.Cells[1] != 2 || m.Cells[2] != 3 {
		t.Errorf("Scan altered cell values: %v", m.Cells[0:4])
	}
}

func TestScanCellsBackward(t *test.T) {
	m, _ := makeMachine(10, "")
	m.Cells[1] = 1
	m.Cells[2] = 1
	m.Cells[3] = 1
	m.Pointer = 3

	if err := compileAndRun(t, m, "[<]"); err != nil {
		t.Errorf("Unexpected failure running [<]. %v", err)
	}

	if m.Pointer != 0 {
		t.Errorf("Data pointer [%d] is not at nearest zero cell [0]", m.Pointer)
	}
}

func TestScanCellsOutOfBoundsFault(t *test.T) {
	m, _ := makeMachine(4, "")
	for i := range m.Cells {
		m.Cells[i] = 1
	}

	if err := compileAndRun(t, m, "[>]"); err == nil {
		t.Errorf("Unexpected success scanning a tape with no zero cell")
	} else {
		if !errors.Is(err, ErrScanOutOfBounds) {
			t.Errorf("Unexpected fault kind: %v", err)
		}
		if err.Error() != "Scan ran off the tape. Pointer [4] out of bounds (Tape length: [4])" {
			t.Errorf("Error string doesn't match: %v", err)
		}
	}

	m.Reset()
	m.Cells[0] = 1

	if err := compileAndRun(t, m, "[<]"); err == nil {
		t.Errorf("Unexpected success scanning left off the tape")
	} else if !errors.Is(err, ErrScanOutOfBounds) {
		t.Errorf("Unexpected fault kind: %v", err)
	}
}

func TestReadStoresInputByte(t *test.T) {
	m, _ := makeMachine(10, "A")

	if err := compileAndRun(t, m, ","); err != nil {
		t.Errorf("Unexpected failure running read. %v", err)
	}

	if m.Cells[0] != 'A' {
		t.Errorf("Cell value [%d] is not expected input byte [%d]", m.Cells[0], 'A')
	}
}

func TestReadInputExhaustedFault(t *test.T) {
	m, _ := makeMachine(10, "")

	if err := compileAndRun(t, m, ","); err == nil {
		t.Errorf("Unexpected success reading from exhausted input")
	} else if !errors.Is(err, ErrInputExhausted) {
		t.Errorf("Unexpected fault kind: %v", err)
	}
}

func TestWriteEmitsCell(t *test.T) {
	m, output := makeMachine(10, "")
	m.Cells[0] = 'Z'

	if err := compileAndRun(t, m, "."); err != nil {
		t.Errorf("Unexpected failure running write. %v", err)
	}

	if output.String() != "Z" {
		t.Errorf("Output [%q] is not expected value [%q]", output.String(), "Z")
	}
}

func TestLoopZeroIterations(t *test.T) {
	m, output := makeMachine(10, "")

	if err := compileAndRun(t, m, "[.+]"); err != nil {
		t.Errorf("Unexpected failure running loop. %v", err)
	}

	if output.Len() != 0 {
		t.Errorf("Loop over a zero cell produced output [%q]", output.String())
	}
}

func TestTapeStateDump(t *test.T) {
	m, output := makeMachine(10, "")

	if err := compileAndRun(t, m, "++>++>|"); err != nil {
		t.Errorf("Unexpected failure running tape dump. %v", err)
	}

	if output.String() != "0 1 \n" {
		t.Errorf("Tape state dump [%q] is not expected value [%q]", output.String(), "0 1 \n")
	}
}

func TestTapeStateDumpEmptyTape(t *test.T) {
	m, output := makeMachine(10, "")

	if err := compileAndRun(t, m, "|"); err != nil {
		t.Errorf("Unexpected failure running tape dump. %v", err)
	}

	if output.String() != "\n" {
		t.Errorf("Tape state dump [%q] is not expected value [%q]", output.String(), "\n")
	}
}

func TestMaxStepCountReached(t *test.T) {
	var output bytes.Buffer
	m := NewMachine(&MachineConfig{CellCount: 10, MaxStepCount: 100}, str.NewReader(""), &output)

	if err := compileAndRun(t, m, "+[]"); err == nil {
		t.Errorf("Unexpected success running an endless loop under a step limit")
	} else if !errors.Is(err, ErrMaxStepCountReached) {
		t.Errorf("Unexpected fault kind: %v", err)
	}
}

func TestReset(t *test.T) {
	m, _ := makeMachine(10, "")

	if err := compileAndRun(t, m, "+++>++"); err != nil {
		t.Errorf("Unexpected failure. %v", err)
	}

	m.Reset()

	if m.Pointer != 0 || m.StepCount != 0 {
		t.Errorf("Reset left pointer [%d] and step count [%d]", m.Pointer, m.StepCount)
	}

	for i, cell := range m.Cells {
		if cell != 0 {
			t.Errorf("Reset left cell index [%d] at value [%d]", i, cell)
		}
	}
}
