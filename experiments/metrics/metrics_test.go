package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func sampleRecords() ([]AgentConfig, []GameRecord, []MoveRecord) {
	configs := []AgentConfig{
		{ID: 1, Depth: 2, Evaluation: "material"},
		{ID: 2, Random: true, Seed: 7},
	}
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	games := []GameRecord{
		{ID: 1, Agent1: 1, Agent2: 2, GameMetric: GameMetric{StartingPlayer: 1, Winner: 1, StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalTurns: 3, TotalActions: 7}},
		{ID: 2, Agent1: 2, Agent2: 1, GameMetric: GameMetric{StartingPlayer: 1, Winner: 2, StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalTurns: 4, TotalActions: 9}},
	}
	moves := []MoveRecord{
		{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: 1, Actions: 2, SearchMetric: SearchMetric{Depth: 2, Nodes: 40, Turns: 9, Value: 100}}},
		{Game: 1, MoveMetric: MoveMetric{Step: 2, Player: 2, Actions: 3, SearchMetric: SearchMetric{Turns: 12}}},
	}
	return configs, games, moves
}

func TestCollector(t *testing.T) {
	t.Run("counts are reset on start", func(t *testing.T) {
		c := NewCollector()
		c.Start(1)
		c.AddNode()
		c.Start(3)
		c.AddNode()
		c.AddNode()
		c.AddEvaluation()
		c.AddCutoff()
		c.AddTableHit()
		c.SetRoot(9, -5, 11)

		m := c.Complete()
		require.Equal(t, 3, m.Depth)
		require.Equal(t, 2, m.Nodes)
		require.Equal(t, 1, m.Evaluations)
		require.Equal(t, 1, m.Cutoffs)
		require.Equal(t, 1, m.TableHits)
		require.Equal(t, 9, m.Turns)
		require.Equal(t, -5, m.Value)
		require.Equal(t, 11, m.TableSize)
	})

	t.Run("the dummy collector reports nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(2)
		c.AddNode()
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "depth")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())
	require.Equal(t, filepath.Join(root, "depth"), filepath.Dir(w.Dir()))

	configs, games, moves := sampleRecords()
	require.NoError(t, w.WriteAgentConfigs(configs))
	require.NoError(t, w.WriteGameRecords(games))
	require.NoError(t, w.WriteMoveRecords(moves))

	rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Equal(t, [][]string{
		{"id", "depth", "evaluation", "random", "seed"},
		{"1", "2", "material", "false", "0"},
		{"2", "0", "", "true", "7"},
	}, rows)

	rows = readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, rows, 3)
	require.Equal(t, []string{"1", "1", "2", "1", "1", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "3", "7"}, rows[1])

	rows = readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, rows, 3)
	require.Equal(t, "game", rows[0][0])
	require.Equal(t, []string{"1", "1", "1", "2", "2", "0s", "40", "0", "0", "0", "0", "9", "100"}, rows[1])
}

func TestWriterErrors(t *testing.T) {
	t.Run("failed flushes are reported", func(t *testing.T) {
		if _, err := os.Stat("/dev/full"); err != nil {
			t.Skip("needs /dev/full")
		}
		w, err := NewWriter(t.TempDir(), "full")
		require.NoError(t, err)
		require.NoError(t, os.Symlink("/dev/full", filepath.Join(w.Dir(), "game_records.csv")))

		_, games, _ := sampleRecords()
		require.Error(t, w.WriteGameRecords(games))
	})

	t.Run("a missing directory is reported", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "gone")
		require.NoError(t, err)
		require.NoError(t, os.RemoveAll(w.Dir()))

		configs, _, _ := sampleRecords()
		require.Error(t, w.WriteAgentConfigs(configs))
	})
}

func TestIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")
	x, err := OpenIndex(path)
	require.NoError(t, err)
	defer x.Close()

	configs, games, moves := sampleRecords()
	require.NoError(t, x.WriteRun("run-a", configs, games, moves))
	// Writing the same run again replaces its rows
	require.NoError(t, x.WriteRun("run-a", configs, games, moves))

	var count int
	require.NoError(t, x.db.QueryRow(`SELECT COUNT(*) FROM moves WHERE run=?`, "run-a").Scan(&count))
	require.Equal(t, 2, count)

	var value int
	require.NoError(t, x.db.QueryRow(`SELECT value FROM moves WHERE run=? AND game=1 AND step=1`, "run-a").Scan(&value))
	require.Equal(t, 100, value)

	wins, err := x.WinCounts("run-a")
	require.NoError(t, err)
	require.Equal(t, map[int]int{1: 2}, wins, "Agent 1 won as player 1 and as player 2")

	_, err = OpenIndex("")
	require.Error(t, err)
}
