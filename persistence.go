package brainfuck

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	gorm "gorm.io/gorm"
)

// Captured run output is truncated to this many bytes before it is
// stored; programs are free to emit far more than belongs in a
// history row.
const RUN_OUTPUT_CAP = 256

type PersistenceConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options"`
}

type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
}

// Run is one recorded program execution.
type Run struct {
	ID           uint
	Source       string
	TokenCount   uint
	OpCodeCount  uint
	StepCount    uint
	Duration     int64
	Output       []byte `gorm:"type:blob"`
	MachineError *string
}

// NewRun snapshots a finished (or faulted) execution for recording.
func NewRun(program *Program, machine *Machine, duration time.Duration, output []byte, runErr error) *Run {
	run := &Run{
		Source:      program.Source,
		TokenCount:  uint(program.TokenCount),
		OpCodeCount: uint(len(program.OpCodes)),
		StepCount:   machine.StepCount,
		Duration:    int64(duration),
		Output:      truncateOutput(output),
	}
	if runErr != nil {
		msg := runErr.Error()
		run.MachineError = &msg
	}
	return run
}

func truncateOutput(output []byte) []byte {
	if len(output) > RUN_OUTPUT_CAP {
		output = output[:RUN_OUTPUT_CAP]
	}
	truncated := make([]byte, len(output))
	copy(truncated, output)
	return truncated
}

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(config.Path) == 0 {
		return nil, fmt.Errorf("Path to database must be defined")
	}

	if len(config.Name) == 0 {
		return nil, fmt.Errorf("Name of database must be defined")
	}

	params := make([]string, 0, len(config.SQLitePragmas)+len(config.SQLiteOptions))
	for _, pragma := range config.SQLitePragmas {
		params = append(params, fmt.Sprintf("_pragma=%s", pragma))
	}
	params = append(params, config.SQLiteOptions...)

	path := filepath.Join(config.Path, config.Name)
	if len(params) > 0 {
		path = path + "?" + strings.Join(params, "&")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	db = db.Session(&gorm.Session{PrepareStmt: true})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Persistence) initialize() error {
	return p.DB.AutoMigrate(&Run{})
}

func (p *Persistence) Shutdown() {
	if sqldb, err := p.DB.DB(); err != nil {
		log.Fatalf("Failed to retrieve raw DB: %v", err)
	} else {
		sqldb.Close()
	}
}

func (p *Persistence) CreateRun(run *Run) (uint, error) {
	if run == nil {
		return 0, fmt.Errorf("Run cannot be nil")
	}

	if result := p.DB.Create(run); result.Error != nil {
		return 0, fmt.Errorf("Failed to call gorm.Create(): %w", result.Error)
	}

	return run.ID, nil
}

// RecentRuns returns up to limit recorded runs, newest first.
func (p *Persistence) RecentRuns(limit int) ([]*Run, error) {
	var runs []*Run
	if result := p.DB.Order("id desc").Limit(limit).Find(&runs); result.Error != nil {
		return nil, fmt.Errorf("Failed to query runs: %w", result.Error)
	}
	return runs, nil
}
