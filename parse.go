package brainfuck

import (
	"errors"
	"fmt"
)

var (
	ErrUnmatchedLoopEnd   = errors.New("Unmatched closing bracket")
	ErrUnmatchedLoopBegin = errors.New("Unmatched opening bracket")
)

// Instruction is one node of the parsed program tree. Body is only
// populated for OP_LOOP; Offset, Count and Forward mirror the OpCode
// fields of the same kinds.
type Instruction struct {
	Kind    OpKind
	Offset  int
	Count   byte
	Forward bool
	Body    []*Instruction
}

// Parse resolves bracket pairs in the flat opcode sequence into a
// nested instruction tree. It accepts both optimized and raw
// tokenizer output: leftover primitive steps and increments are
// promoted to their counted single-element forms, so skipping
// Optimize changes performance but never behavior.
//
// A stray closing bracket fails with ErrUnmatchedLoopEnd at its index
// in the sequence; a bracket still open at the end of the scan fails
// with ErrUnmatchedLoopBegin at the index of the outermost unmatched
// opening bracket.
func Parse(opcodes []OpCode) ([]*Instruction, error) {
	program := make([]*Instruction, 0, len(opcodes))
	depth := 0
	loopStart := 0

	for i, op := range opcodes {
		if depth == 0 {
			switch op.Kind {
			case OP_WHILE:
				loopStart = i
				depth++
			case OP_WHILE_END:
				return nil, fmt.Errorf("%w at opcode index [%d]", ErrUnmatchedLoopEnd, i)
			case OP_POINTER_RIGHT:
				program = append(program, &Instruction{Kind: OP_MOVE, Offset: 1})
			case OP_POINTER_LEFT:
				program = append(program, &Instruction{Kind: OP_MOVE, Offset: -1})
			case OP_INC:
				program = append(program, &Instruction{Kind: OP_ADD, Count: 1})
			case OP_DEC:
				program = append(program, &Instruction{Kind: OP_SUB, Count: 1})
			default:
				program = append(program, &Instruction{
					Kind:    op.Kind,
					Offset:  op.Offset,
					Count:   op.Count,
					Forward: op.Forward,
				})
			}
		} else {
			switch op.Kind {
			case OP_WHILE:
				depth++
			case OP_WHILE_END:
				depth--
				if depth == 0 {
					body, err := Parse(opcodes[loopStart+1 : i])
					if err != nil {
						return nil, err
					}
					program = append(program, &Instruction{Kind: OP_LOOP, Body: body})
				}
			}
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("%w at opcode index [%d]", ErrUnmatchedLoopBegin, loopStart)
	}

	return program, nil
}
