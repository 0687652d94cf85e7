// Package leaderboard persists one summary line per completed game to a
// flat text file: player,initialCash,finalValuation,pnl. Free-text player
// names are written as-is; a comma in a name corrupts its record. Known
// limitation, kept for compatibility with existing leaderboard files.
package leaderboard

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

var mu sync.Mutex

// Entry is one completed game.
type Entry struct {
	Player         string
	InitialCash    float64
	FinalValuation float64
	PnL            float64
}

// Append writes the entry as one line, creating the file if needed.
func Append(path string, e Entry) error {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s,%.2f,%.2f,%.2f\n", e.Player, e.InitialCash, e.FinalValuation, e.PnL)
	return err
}

// Read parses all entries, skipping malformed lines. A missing file yields
// an empty board, not an error.
func Read(path string) ([]Entry, error) {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		e, ok := parseLine(sc.Text())
		if ok {
			entries = append(entries, e)
		}
	}
	return entries, sc.Err()
}

func parseLine(line string) (Entry, bool) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 4 {
		return Entry{}, false
	}
	initial, err1 := strconv.ParseFloat(parts[1], 64)
	final, err2 := strconv.ParseFloat(parts[2], 64)
	pnl, err3 := strconv.ParseFloat(parts[3], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return Entry{}, false
	}
	return Entry{Player: parts[0], InitialCash: initial, FinalValuation: final, PnL: pnl}, true
}
