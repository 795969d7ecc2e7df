// Package replay keeps a compressed log of played turns. Each line is one
// JSON entry; positions are identified by their hash and a blake3 digest of
// their fingerprint so a replay can be checked turn by turn.
package replay

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"homeworlds/game"
	"homeworlds/notation"

	"github.com/klauspost/compress/zstd"
	"lukechampine.com/blake3"
)

type Entry struct {
	Game    int            `json:"game"`
	Step    int            `json:"step"`
	Player  int            `json:"player"`
	Actions []string       `json:"actions"`
	Hash    game.StateHash `json:"hash"`
	Digest  string         `json:"digest"`
}

// Digest is the hex blake3-256 sum of the position's fingerprint.
func Digest(g *game.Game) string {
	sum := blake3.Sum256([]byte(g.Fingerprint()))
	return hex.EncodeToString(sum[:])
}

// Writer appends entries to <dir>/<prefix>.jsonl.zst. The file is created on
// the first write.
type Writer struct {
	path string

	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer

	game  int
	names notation.Names
}

func NewWriter(dir, prefix string) *Writer {
	return &Writer{
		path:  filepath.Join(dir, fmt.Sprintf("%s.jsonl.zst", prefix)),
		names: notation.NewNames(),
	}
}

func (w *Writer) Path() string {
	return w.path
}

// StartGame sets the game id of the following entries. names are the system
// names of the starting position; discovered systems get fresh names.
func (w *Writer) StartGame(id int, names notation.Names) {
	w.game = id
	w.names = notation.NewNames()
	maps.Copy(w.names, names)
}

// Record writes one turn. It implements engine.Recorder.
func (w *Writer) Record(step, player int, actions []game.Action, state *game.Game) error {
	if w.enc == nil {
		if err := w.open(); err != nil {
			return err
		}
	}

	entry := Entry{
		Game:    w.game,
		Step:    step,
		Player:  player,
		Actions: make([]string, 0, len(actions)),
		Hash:    state.Hash(),
		Digest:  Digest(state),
	}
	for _, a := range actions {
		newName := ""
		if a.Type == game.DiscoverAction {
			newName = w.names.Fresh(a.To)
			w.names[a.To] = newName
		}
		entry.Actions = append(entry.Actions, notation.FormatAction(a, w.names, newName))
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *Writer) open() error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	return nil
}

// Close flushes and closes the log and returns the first error on the way.
func (w *Writer) Close() error {
	var err error
	keep := func(e error) {
		if err == nil {
			err = e
		}
	}
	if w.w != nil {
		keep(w.w.Flush())
		w.w = nil
	}
	if w.enc != nil {
		keep(w.enc.Close())
		w.enc = nil
	}
	if w.f != nil {
		keep(w.f.Close())
		w.f = nil
	}
	return err
}

// ReadAll decodes every entry of a replay file.
func ReadAll(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	entries := []Entry{}
	for sc.Scan() {
		var entry Entry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		entries = append(entries, entry)
	}
	return entries, sc.Err()
}
