package brainfuck

import (
	cp "github.com/jinzhu/copier"
	"github.com/xrash/smetrics"
)

// Program is the immutable build-time artifact of one source text:
// the optimized opcode sequence plus the parsed instruction tree. The
// pre-optimization token count is retained for reporting.
type Program struct {
	Source       string
	TokenCount   int
	OpCodes      []OpCode
	Instructions []*Instruction
}

// Compile runs the full pipeline: tokenize, optimize, parse.
func Compile(source string) (*Program, error) {
	opcodes := Tokenize(source)
	tokenCount := len(opcodes)
	opcodes = Optimize(opcodes)

	instructions, err := Parse(opcodes)
	if err != nil {
		return nil, err
	}

	return &Program{
		Source:       source,
		TokenCount:   tokenCount,
		OpCodes:      opcodes,
		Instructions: instructions,
	}, nil
}

// CompileUnoptimized skips the peephole pass. The result must behave
// identically to the optimized form of the same source; it just runs
// slower.
func CompileUnoptimized(source string) (*Program, error) {
	opcodes := Tokenize(source)

	instructions, err := Parse(opcodes)
	if err != nil {
		return nil, err
	}

	return &Program{
		Source:       source,
		TokenCount:   len(opcodes),
		OpCodes:      opcodes,
		Instructions: instructions,
	}, nil
}

func (p *Program) Clone() *Program {
	clone := &Program{}
	cp.CopyWithOption(clone, p, cp.Option{DeepCopy: true, IgnoreEmpty: true})
	return clone
}

type CompileStats struct {
	TokenCount       int
	OpCodeCount      int
	InstructionCount int
	// Similarity is the Jaro-Winkler similarity between the rendered
	// opcode listings before and after optimization. A low figure
	// means the peephole pass restructured most of the program.
	Similarity float64
}

func (p *Program) Stats() CompileStats {
	raw := OpCodes(Tokenize(p.Source)).String()
	optimized := OpCodes(p.OpCodes).String()

	similarity := 1.0
	if raw != optimized {
		similarity = smetrics.JaroWinkler(raw, optimized, 0.7, 4)
	}

	return CompileStats{
		TokenCount:       p.TokenCount,
		OpCodeCount:      len(p.OpCodes),
		InstructionCount: countInstructions(p.Instructions),
		Similarity:       similarity,
	}
}

func countInstructions(instructions []*Instruction) int {
	count := 0
	for _, instruction := range instructions {
		count++
		if instruction.Kind == OP_LOOP {
			count += countInstructions(instruction.Body)
		}
	}
	return count
}
