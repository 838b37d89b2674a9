package brainfuck

import (
	"fmt"
	"strings"
)

// The OPs recognized by the tokenizer plus the counted forms the
// optimizer rewrites runs and idioms into. The | symbol is a
// non-standard extension that dumps the indexes of the occupied tape
// prefix, mostly for debugging test programs.

type OpKind int

const (
	OP_POINTER_RIGHT OpKind = iota
	OP_POINTER_LEFT
	OP_INC
	OP_DEC
	OP_WRITE
	OP_READ
	OP_WHILE
	OP_WHILE_END
	OP_TAPE_STATE

	// Produced by the optimizer, never by the tokenizer.
	OP_MOVE
	OP_ADD
	OP_SUB
	OP_RESET_CELL
	OP_SCAN_CELLS

	// Produced by the parser for bracket-delimited bodies.
	OP_LOOP
)

// OpCode is one element of the flat operation sequence. Offset, Count
// and Forward are only meaningful for OP_MOVE, OP_ADD/OP_SUB and
// OP_SCAN_CELLS respectively.
type OpCode struct {
	Kind    OpKind
	Offset  int
	Count   byte
	Forward bool
}

type OpCodes []OpCode

// Tokenize maps source text to the flat opcode sequence. Any symbol
// outside the nine recognized ones is dropped, so callers don't need
// to pre-filter comments or whitespace.
func Tokenize(source string) []OpCode {
	opcodes := make([]OpCode, 0, len(source))
	for _, symbol := range source {
		switch symbol {
		case '>':
			opcodes = append(opcodes, OpCode{Kind: OP_POINTER_RIGHT})
		case '<':
			opcodes = append(opcodes, OpCode{Kind: OP_POINTER_LEFT})
		case '+':
			opcodes = append(opcodes, OpCode{Kind: OP_INC})
		case '-':
			opcodes = append(opcodes, OpCode{Kind: OP_DEC})
		case '.':
			opcodes = append(opcodes, OpCode{Kind: OP_WRITE})
		case ',':
			opcodes = append(opcodes, OpCode{Kind: OP_READ})
		case '[':
			opcodes = append(opcodes, OpCode{Kind: OP_WHILE})
		case ']':
			opcodes = append(opcodes, OpCode{Kind: OP_WHILE_END})
		case '|':
			opcodes = append(opcodes, OpCode{Kind: OP_TAPE_STATE})
		}
	}
	return opcodes
}

func (o OpCode) String() string {
	switch o.Kind {
	case OP_POINTER_RIGHT:
		return ">"
	case OP_POINTER_LEFT:
		return "<"
	case OP_INC:
		return "+"
	case OP_DEC:
		return "-"
	case OP_WRITE:
		return "."
	case OP_READ:
		return ","
	case OP_WHILE:
		return "["
	case OP_WHILE_END:
		return "]"
	case OP_TAPE_STATE:
		return "|"
	case OP_MOVE:
		return fmt.Sprintf("Move(%d)", o.Offset)
	case OP_ADD:
		return fmt.Sprintf("Add(%d)", o.Count)
	case OP_SUB:
		return fmt.Sprintf("Sub(%d)", o.Count)
	case OP_RESET_CELL:
		return "ResetCell"
	case OP_SCAN_CELLS:
		if o.Forward {
			return "ScanRight"
		}
		return "ScanLeft"
	case OP_LOOP:
		return "Loop"
	default:
		panic(fmt.Sprintf("Unknown OP kind [%d] encountered!", o.Kind))
	}
}

func (ops OpCodes) String() string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}
