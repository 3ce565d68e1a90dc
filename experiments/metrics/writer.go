package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// SearchRecord is one MCTS move search within a benchmark.
type SearchRecord struct {
	Config int // index of the searcher configuration
	Game   int
	Step   int
	SearchMetric
}

// Writer stores the output of one run under <dir>/<name>/<timestamp>-<run id>.
type Writer struct {
	runID   uuid.UUID
	baseDir string
}

func NewWriter(dir, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp and run id
	runID := uuid.New()
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, name, timestamp+"-"+runID.String())
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		runID:   runID,
		baseDir: baseDir,
	}, nil
}

func (w *Writer) RunID() uuid.UUID { return w.runID }

func (w *Writer) Dir() string { return w.baseDir }

// WriteSetup stores the run configuration as setup.json.
func (w *Writer) WriteSetup(setup any) error {
	return w.writeJSON("setup.json", setup)
}

// WriteSummary stores the aggregate results as summary.json.
func (w *Writer) WriteSummary(summary any) error {
	return w.writeJSON("summary.json", summary)
}

func (w *Writer) writeJSON(name string, v any) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (w *Writer) WriteEpisodes(records []EpisodeMetric) error {
	header := []string{
		"episode", "winner", "score_a", "score_b", "score_c", "moves",
		"flips_a", "flips_b", "flips_c", "reward", "epsilon", "table_size", "duration",
	}
	return w.writeCSV("episodes.csv", header, len(records), func(i int) []string {
		r := records[i]
		return []string{
			strconv.Itoa(r.Episode),
			r.Winner.Symbol(),
			strconv.Itoa(r.Scores[0]),
			strconv.Itoa(r.Scores[1]),
			strconv.Itoa(r.Scores[2]),
			strconv.Itoa(r.Moves),
			strconv.Itoa(r.Flips[0]),
			strconv.Itoa(r.Flips[1]),
			strconv.Itoa(r.Flips[2]),
			strconv.FormatFloat(r.Reward, 'f', -1, 64),
			strconv.FormatFloat(r.Epsilon, 'f', 6, 64),
			strconv.Itoa(r.TableSize),
			r.Duration.String(),
		}
	})
}

func (w *Writer) WriteSearchRecords(records []SearchRecord) error {
	header := []string{"config", "game", "step", "player", "moves", "goroutines", "duration", "episodes", "cutoff", "full_playouts", "is_tree_reset"}
	return w.writeCSV("searches.csv", header, len(records), func(i int) []string {
		r := records[i]
		return []string{
			strconv.Itoa(r.Config),
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Step),
			r.Player.Symbol(),
			strconv.Itoa(r.Moves),
			strconv.Itoa(r.Goroutines),
			r.Duration.String(),
			strconv.Itoa(r.Episodes),
			strconv.Itoa(r.Cutoff),
			strconv.Itoa(r.FullPlayouts),
			strconv.FormatBool(r.IsTreeReset),
		}
	})
}

func (w *Writer) writeCSV(name string, header []string, rows int, row func(int) []string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	// Write each row
	for i := 0; i < rows; i++ {
		if err := writer.Write(row(i)); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", name, i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}
