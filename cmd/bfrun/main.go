package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	bf "nickandperla.net/brainfuck"

	"github.com/BurntSushi/toml"
)

var toolConfigPath *string = flag.String("config", "", "Optional toml config with machine and run history settings")

var debugMode *bool = flag.Bool("debug", false, "Print the filtered source and opcode listings before running")

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-config config.toml] [-debug] <program file>\n", os.Args[0])
		os.Exit(1)
	}

	var toolConfig bf.ToolConfig
	if *toolConfigPath != "" {
		conffile, err := os.Open(*toolConfigPath)

		if err != nil {
			log.Fatalf("Unable to load bfrun config: %v", err)
		}

		confDecoder := toml.NewDecoder(conffile)
		if _, err = confDecoder.Decode(&toolConfig); err != nil {
			log.Fatalf("Failed to unmarshal tool config: %v", err)
		}
		conffile.Close()
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Unable to read program file: %v", err)
	}

	program, err := bf.Compile(string(source))
	if err != nil {
		log.Fatalf("Failed to compile program: %v", err)
	}

	if *debugMode {
		log.Printf("Filtered source: %v", bf.OpCodes(bf.Tokenize(string(source))))
		log.Printf("Optimized opcodes: %v", bf.OpCodes(program.OpCodes))
		stats := program.Stats()
		log.Printf("Tokens: %d, Opcodes: %d, Instructions: %d, Similarity: %.3f",
			stats.TokenCount, stats.OpCodeCount, stats.InstructionCount, stats.Similarity)
	}

	var persist *bf.Persistence
	if toolConfig.Persistence != nil {
		if persist, err = bf.NewPersistence(toolConfig.Persistence); err != nil {
			log.Fatalf("Failed to create or initialize Persistence: %v", err)
		}
		defer persist.Shutdown()
	}

	output := io.Writer(os.Stdout)
	var capture *bytes.Buffer
	if persist != nil {
		capture = &bytes.Buffer{}
		output = io.MultiWriter(os.Stdout, capture)
	}

	machine := bf.NewMachine(toolConfig.Machine, os.Stdin, output)

	start := time.Now()
	runErr := machine.Run(program)
	elapsed := time.Since(start)

	if persist != nil {
		run := bf.NewRun(program, machine, elapsed, capture.Bytes(), runErr)
		if _, err := persist.CreateRun(run); err != nil {
			log.Printf("Failed to record run: %v", err)
		}
	}

	if runErr != nil {
		log.Fatalf("Program run failed: %v", runErr)
	}

	fmt.Printf("Execution took: %v\n", elapsed)
}
