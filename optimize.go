package brainfuck

// Optimize rewrites the flat opcode sequence in place. The two
// three-opcode idiom windows are checked first at each cursor
// position, then runs of increments/decrements collapse to a single
// counted Add/Sub, then runs of pointer steps collapse to a single
// net-offset Move. A run whose net offset is zero is removed without
// a replacement. After any rewrite the cursor re-examines the same
// index; all rewritten kinds fall through to the advance case, so
// every iteration either shortens the tail or moves the cursor.
func Optimize(opcodes []OpCode) []OpCode {
	i := 0
	for i < len(opcodes) {
		kind := opcodes[i].Kind
		switch {
		case kind == OP_WHILE && i+2 < len(opcodes) &&
			(opcodes[i+1].Kind == OP_INC || opcodes[i+1].Kind == OP_DEC) &&
			opcodes[i+2].Kind == OP_WHILE_END:
			opcodes = splice(opcodes, i, i+3, OpCode{Kind: OP_RESET_CELL})

		case kind == OP_WHILE && i+2 < len(opcodes) &&
			(opcodes[i+1].Kind == OP_POINTER_RIGHT || opcodes[i+1].Kind == OP_POINTER_LEFT) &&
			opcodes[i+2].Kind == OP_WHILE_END:
			forward := opcodes[i+1].Kind == OP_POINTER_RIGHT
			opcodes = splice(opcodes, i, i+3, OpCode{Kind: OP_SCAN_CELLS, Forward: forward})

		case kind == OP_INC || kind == OP_DEC:
			j := i + 1
			for j < len(opcodes) && opcodes[j].Kind == kind {
				j++
			}
			replacement := OpCode{Kind: OP_ADD, Count: byte(j - i)}
			if kind == OP_DEC {
				replacement.Kind = OP_SUB
			}
			opcodes = splice(opcodes, i, j, replacement)

		case kind == OP_POINTER_RIGHT || kind == OP_POINTER_LEFT:
			offset := 0
			j := i
		RUN:
			for j < len(opcodes) {
				switch opcodes[j].Kind {
				case OP_POINTER_RIGHT:
					offset++
				case OP_POINTER_LEFT:
					offset--
				default:
					break RUN
				}
				j++
			}
			if offset == 0 {
				opcodes = remove(opcodes, i, j)
			} else {
				opcodes = splice(opcodes, i, j, OpCode{Kind: OP_MOVE, Offset: offset})
			}

		default:
			i++
		}
	}
	return opcodes
}

// splice replaces opcodes[from:to] with a single replacement element,
// shifting the tail left.
func splice(opcodes []OpCode, from, to int, replacement OpCode) []OpCode {
	opcodes[from] = replacement
	return append(opcodes[:from+1], opcodes[to:]...)
}

// remove drops opcodes[from:to] outright.
func remove(opcodes []OpCode, from, to int) []OpCode {
	return append(opcodes[:from], opcodes[to:]...)
}
