package metrics

import (
	"sync/atomic"
	"time"
)

// AgentConfig describes one competitor of an experiment.
type AgentConfig struct {
	ID         int    `yaml:"id"`
	Depth      int    `yaml:"depth"`
	Evaluation string `yaml:"evaluation"`
	Random     bool   `yaml:"random"`
	Seed       uint64 `yaml:"seed"`
}

type SearchMetric struct {
	Depth       int
	Duration    time.Duration
	Nodes       int
	Evaluations int
	Cutoffs     int
	TableHits   int
	TableSize   int
	Turns       int // Distinct turns at the root
	Value       int
}

type MoveMetric struct {
	Step    int
	Player  int // Player ID
	Actions int // Actions in the turn, including the final PASS
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Player ID
	Winner         int // Player ID, -1 for a tie, 0 if unfinished
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalTurns     int
	TotalActions   int
}

type Collector interface {
	Start(depth int)
	AddNode()
	AddEvaluation()
	AddCutoff()
	AddTableHit()
	SetRoot(turns, value, tableSize int)
	Complete() SearchMetric
}

type collector struct {
	depth       int
	startTime   time.Time
	nodes       atomic.Int64
	evaluations atomic.Int64
	cutoffs     atomic.Int64
	tableHits   atomic.Int64
	turns       int
	value       int
	tableSize   int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int) {
	m.startTime = time.Now()
	m.depth = depth
	m.nodes.Store(0)
	m.evaluations.Store(0)
	m.cutoffs.Store(0)
	m.tableHits.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddTableHit() {
	m.tableHits.Add(1)
}

func (m *collector) SetRoot(turns, value, tableSize int) {
	m.turns = turns
	m.value = value
	m.tableSize = tableSize
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:       m.depth,
		Duration:    time.Since(m.startTime),
		Nodes:       int(m.nodes.Load()),
		Evaluations: int(m.evaluations.Load()),
		Cutoffs:     int(m.cutoffs.Load()),
		TableHits:   int(m.tableHits.Load()),
		TableSize:   m.tableSize,
		Turns:       m.turns,
		Value:       m.value,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int)                     {}
func (m *dummyCollector) AddNode()                            {}
func (m *dummyCollector) AddEvaluation()                      {}
func (m *dummyCollector) AddCutoff()                          {}
func (m *dummyCollector) AddTableHit()                        {}
func (m *dummyCollector) SetRoot(turns, value, tableSize int) {}
func (m *dummyCollector) Complete() SearchMetric              { return SearchMetric{} }
