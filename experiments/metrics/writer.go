package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"boardteacher/engine"
	"boardteacher/game"
)

type GameRecord struct {
	ID       int
	Game     string
	Opponent string
	// TeacherSide is the player the teacher played.
	TeacherSide game.Player
	engine.GameMetric
}

// TeacherResult returns "win", "loss" or "draw" from the teacher's side.
func (r GameRecord) TeacherResult() string {
	switch r.Outcome.Winner() {
	case game.None:
		return "draw"
	case r.TeacherSide:
		return "win"
	}
	return "loss"
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of dir named by the current timestamp.
func NewWriter(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	header := []string{"id", "game", "opponent", "teacher_side", "starting_player", "outcome", "result", "moves", "repetition", "capped", "start_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			record.Game,
			record.Opponent,
			record.TeacherSide.String(),
			record.StartingPlayer.String(),
			record.Outcome.String(),
			record.TeacherResult(),
			strconv.Itoa(record.TotalMoves),
			strconv.FormatBool(record.Repetition),
			strconv.FormatBool(record.Capped),
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
