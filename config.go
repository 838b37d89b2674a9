package brainfuck

// ToolConfig is the toml-decoded configuration shared by the command
// line tools. Both sections are optional: a nil Machine runs with
// defaults and a nil Persistence disables run history.
type ToolConfig struct {
	Machine     *MachineConfig     `toml:"machine"`
	Persistence *PersistenceConfig `toml:"persistence"`
}
