package metrics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Index keeps the records of an experiment in a SQLite database so runs can
// be queried together. The CSV files stay the primary output.
type Index struct {
	db *sql.DB
}

func OpenIndex(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS agents (
			run TEXT NOT NULL,
			id INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			evaluation TEXT NOT NULL,
			random INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			PRIMARY KEY (run, id)
		);`,
		`CREATE TABLE IF NOT EXISTS games (
			run TEXT NOT NULL,
			id INTEGER NOT NULL,
			agent1 INTEGER NOT NULL,
			agent2 INTEGER NOT NULL,
			starting_player INTEGER NOT NULL,
			winner INTEGER NOT NULL,
			start_time TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			actions INTEGER NOT NULL,
			PRIMARY KEY (run, id)
		);`,
		`CREATE TABLE IF NOT EXISTS moves (
			run TEXT NOT NULL,
			game INTEGER NOT NULL,
			step INTEGER NOT NULL,
			player INTEGER NOT NULL,
			actions INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			duration_us INTEGER NOT NULL,
			nodes INTEGER NOT NULL,
			evaluations INTEGER NOT NULL,
			cutoffs INTEGER NOT NULL,
			table_hits INTEGER NOT NULL,
			table_size INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			value INTEGER NOT NULL,
			PRIMARY KEY (run, game, step)
		);`,
		`CREATE INDEX IF NOT EXISTS moves_by_player ON moves(run, player);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (x *Index) Close() error {
	return x.db.Close()
}

// WriteRun stores all records of one run in a single transaction.
func (x *Index) WriteRun(run string, configs []AgentConfig, games []GameRecord, moves []MoveRecord) error {
	tx, err := x.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range configs {
		_, err = tx.Exec(`INSERT OR REPLACE INTO agents(run,id,depth,evaluation,random,seed) VALUES(?,?,?,?,?,?)`,
			run, c.ID, c.Depth, c.Evaluation, c.Random, int64(c.Seed))
		if err != nil {
			return fmt.Errorf("failed to insert agent config: %w", err)
		}
	}
	for _, g := range games {
		_, err = tx.Exec(`INSERT OR REPLACE INTO games(run,id,agent1,agent2,starting_player,winner,start_time,duration_ms,turns,actions) VALUES(?,?,?,?,?,?,?,?,?,?)`,
			run, g.ID, g.Agent1, g.Agent2, g.StartingPlayer, g.Winner,
			g.StartTime.UTC().Format(time.RFC3339Nano), g.Duration.Milliseconds(), g.TotalTurns, g.TotalActions)
		if err != nil {
			return fmt.Errorf("failed to insert game record: %w", err)
		}
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO moves(run,game,step,player,actions,depth,duration_us,nodes,evaluations,cutoffs,table_hits,table_size,turns,value) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare move insert: %w", err)
	}
	defer stmt.Close()
	for _, m := range moves {
		_, err = stmt.Exec(run, m.Game, m.Step, m.Player, m.Actions, m.Depth, m.Duration.Microseconds(),
			m.Nodes, m.Evaluations, m.Cutoffs, m.TableHits, m.TableSize, m.Turns, m.Value)
		if err != nil {
			return fmt.Errorf("failed to insert move record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// WinCounts returns the number of games each agent won in a run.
func (x *Index) WinCounts(run string) (map[int]int, error) {
	rows, err := x.db.Query(`
		SELECT CASE winner WHEN 1 THEN agent1 ELSE agent2 END AS agent, COUNT(*)
		FROM games WHERE run=? AND winner IN (1, 2)
		GROUP BY agent`, run)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wins := map[int]int{}
	for rows.Next() {
		var agent, count int
		if err := rows.Scan(&agent, &count); err != nil {
			return nil, err
		}
		wins[agent] = count
	}
	return wins, rows.Err()
}
