package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/moyu-x/file-organizer/internal"
	"github.com/moyu-x/file-organizer/pkg/analyzer"
	"github.com/moyu-x/file-organizer/pkg/scanner"
)

// JSONWriter 缩进的 JSON 输出，便于脚本处理
type JSONWriter struct {
	out io.Writer
}

func NewJSONWriter(out io.Writer) *JSONWriter {
	return &JSONWriter{out: out}
}

type entryJSON struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Type      string    `json:"type"`
	Extension string    `json:"extension,omitempty"`
	Size      int64     `json:"size"`
	Modified  time.Time `json:"modified"`
	Created   time.Time `json:"created,omitzero"`
}

type failureJSON struct {
	Path  string `json:"path"`
	Op    string `json:"op"`
	Error string `json:"error"`
}

type resultJSON struct {
	Operation  string        `json:"operation"`
	Directory  string        `json:"directory"`
	Scanned    int           `json:"scanned"`
	Moved      int           `json:"moved"`
	Skipped    int           `json:"skipped"`
	Duplicates int           `json:"duplicates"`
	Failures   []failureJSON `json:"failures"`
	StartTime  time.Time     `json:"start_time"`
	EndTime    time.Time     `json:"end_time"`
	Groups     []groupJSON   `json:"groups,omitempty"`
}

type groupJSON struct {
	Hash       string   `json:"hash"`
	Keeper     string   `json:"keeper"`
	Duplicates []string `json:"duplicates"`
}

func (w *JSONWriter) WriteEntries(dir string, entries []scanner.Entry) error {
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryJSON{
			Name:      e.Name,
			Path:      e.Path,
			Type:      entryKind(e),
			Extension: e.Extension,
			Size:      e.Size,
			Modified:  e.ModTime,
			Created:   e.CreatedTime,
		})
	}
	return w.encode(struct {
		Directory string      `json:"directory"`
		Entries   []entryJSON `json:"entries"`
	}{dir, out})
}

func (w *JSONWriter) WriteAnalysis(report *analyzer.Report) error {
	return w.encode(report)
}

func (w *JSONWriter) WriteResult(result *internal.OperationResult) error {
	return w.encode(newResultJSON(result))
}

func (w *JSONWriter) WriteGroups(result *internal.OperationResult, groups []internal.HashGroup) error {
	out := newResultJSON(result)
	out.Groups = make([]groupJSON, 0, len(groups))
	for _, g := range groups {
		out.Groups = append(out.Groups, groupJSON{
			Hash:       g.Digest,
			Keeper:     g.Keeper(),
			Duplicates: append([]string(nil), g.Members[1:]...),
		})
	}
	return w.encode(out)
}

func newResultJSON(result *internal.OperationResult) resultJSON {
	out := resultJSON{
		Operation:  string(result.Operation),
		Directory:  result.Directory,
		Scanned:    result.Scanned,
		Moved:      result.Moved,
		Skipped:    result.Skipped,
		Duplicates: result.Duplicates,
		Failures:   make([]failureJSON, 0, result.Failed()),
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
	}
	for _, f := range result.Failures {
		out.Failures = append(out.Failures, failureJSON{Path: f.Path, Op: f.Op, Error: f.Err.Error()})
	}
	return out
}

func (w *JSONWriter) encode(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
