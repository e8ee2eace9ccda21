package organizer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/file-organizer/internal"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
}

func assertExists(t *testing.T, fs afero.Fs, paths ...string) {
	t.Helper()
	for _, path := range paths {
		if exists, _ := afero.Exists(fs, path); !exists {
			t.Errorf("Expected %s to exist", path)
		}
	}
}

func assertMissing(t *testing.T, fs afero.Fs, paths ...string) {
	t.Helper()
	for _, path := range paths {
		if exists, _ := afero.Exists(fs, path); exists {
			t.Errorf("Expected %s to be gone", path)
		}
	}
}

func newTestSession(fs afero.Fs) *Session {
	return NewSession(fs, DefaultOptions())
}

func TestSession_OrganizeByCategory(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/dir/report.PDF", "pdf")
	writeFile(t, fs, "/dir/photo.jpg", "jpg")
	writeFile(t, fs, "/dir/song.mp3", "mp3")
	writeFile(t, fs, "/dir/data.unknown", "?")
	writeFile(t, fs, "/dir/sub/keep.txt", "nested")

	s := newTestSession(fs)
	result, err := s.OrganizeByCategory("/dir")
	if err != nil {
		t.Fatalf("OrganizeByCategory() error = %v", err)
	}

	if result.Scanned != 4 || result.Moved != 4 || result.Failed() != 0 {
		t.Errorf("Unexpected result: scanned=%d moved=%d failed=%d", result.Scanned, result.Moved, result.Failed())
	}

	assertExists(t, fs,
		"/dir/Documents/report.PDF",
		"/dir/Images/photo.jpg",
		"/dir/Music/song.mp3",
		"/dir/Other/data.unknown",
		"/dir/sub/keep.txt",
	)
	assertMissing(t, fs, "/dir/report.PDF", "/dir/Documents/keep.txt")

	if len(s.History()) != 4 {
		t.Errorf("Expected 4 undo entries, got %d", len(s.History()))
	}
}

func TestSession_OrganizeByCategory_Idempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/dir/a.txt", "a")
	writeFile(t, fs, "/dir/b.png", "b")

	s := newTestSession(fs)
	if _, err := s.OrganizeByCategory("/dir"); err != nil {
		t.Fatalf("first pass error = %v", err)
	}

	result, err := s.OrganizeByCategory("/dir")
	if err != nil {
		t.Fatalf("second pass error = %v", err)
	}
	if result.Scanned != 0 || result.Moved != 0 {
		t.Errorf("Second pass should find nothing to move, got %+v", result)
	}
	assertExists(t, fs, "/dir/Documents/a.txt", "/dir/Images/b.png")
	assertMissing(t, fs, "/dir/Documents/Documents")
}

func TestSession_OrganizeByCategory_Collision(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/dir/Documents/a.txt", "first")
	writeFile(t, fs, "/dir/a.txt", "second")

	s := newTestSession(fs)
	if _, err := s.OrganizeByCategory("/dir"); err != nil {
		t.Fatalf("OrganizeByCategory() error = %v", err)
	}

	data, _ := afero.ReadFile(fs, "/dir/Documents/a.txt")
	if string(data) != "first" {
		t.Errorf("Existing file was overwritten: %q", data)
	}
	data, _ = afero.ReadFile(fs, "/dir/Documents/a (1).txt")
	if string(data) != "second" {
		t.Errorf("Expected renamed file a (1).txt, got %q", data)
	}

	history := s.History()
	if len(history) != 1 || history[0].NewPath != "/dir/Documents/a (1).txt" {
		t.Errorf("Undo entry should point at renamed path: %+v", history)
	}
}

func TestSession_OrganizeByCategory_DedupRunsAfterMove(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/dir/a.txt", "same")
	writeFile(t, fs, "/dir/b.txt", "same")

	s := newTestSession(fs)
	result, err := s.OrganizeByCategory("/dir")
	if err != nil {
		t.Fatalf("OrganizeByCategory() error = %v", err)
	}

	// 去重扫描的是整理后的顶层目录，此时已没有文件
	if result.Duplicates != 0 {
		t.Errorf("Expected no duplicates at top level after categorizing, got %d", result.Duplicates)
	}
	assertExists(t, fs, "/dir/Documents/a.txt", "/dir/Documents/b.txt")
	assertMissing(t, fs, "/dir/Duplicates")
}

func TestSession_OrganizeByCategory_Sniff(t *testing.T) {
	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR"

	for _, tc := range []struct {
		sniff bool
		want  string
	}{
		{false, "/dir/Other/picture"},
		{true, "/dir/Images/picture"},
	} {
		fs := afero.NewMemMapFs()
		writeFile(t, fs, "/dir/picture", png)

		opts := DefaultOptions()
		opts.SniffContent = tc.sniff
		if _, err := NewSession(fs, opts).OrganizeByCategory("/dir"); err != nil {
			t.Fatalf("OrganizeByCategory() error = %v", err)
		}
		assertExists(t, fs, tc.want)
	}
}

func TestSession_Organize_PerFileFailures(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFile(t, base, "/dir/a.txt", "a")
	writeFile(t, base, "/dir/b.jpg", "b")
	fs := afero.NewReadOnlyFs(base)

	s := newTestSession(fs)
	result, err := s.OrganizeByCategory("/dir")
	if err != nil {
		t.Fatalf("per-file failures must not abort the pass: %v", err)
	}
	if result.Failed() != 2 || result.Moved != 0 {
		t.Errorf("Expected 2 failures and no moves, got failed=%d moved=%d", result.Failed(), result.Moved)
	}
	for _, f := range result.Failures {
		if !errors.Is(f, internal.ErrIO) {
			t.Errorf("Expected ErrIO, got %v", f)
		}
	}
	if len(s.History()) != 0 {
		t.Error("Failed moves must not stay in the undo log")
	}
}

func TestSession_MissingDirectory(t *testing.T) {
	s := newTestSession(afero.NewMemMapFs())

	ops := map[string]func(string) error{
		"category": func(d string) error { _, err := s.OrganizeByCategory(d); return err },
		"ext":      func(d string) error { _, err := s.OrganizeByExtensionFolder(d); return err },
		"alpha":    func(d string) error { _, err := s.OrganizeAlphabetically(d); return err },
		"date":     func(d string) error { _, err := s.OrganizeByDate(d); return err },
		"dedup":    func(d string) error { _, err := s.FindAndConsolidateDuplicates(d); return err },
		"analyze":  func(d string) error { _, err := s.Analyze(d); return err },
		"list":     func(d string) error { _, err := s.ListEntries(d); return err },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			if err := op("/missing"); !errors.Is(err, internal.ErrDirectoryNotFound) {
				t.Errorf("Expected ErrDirectoryNotFound, got %v", err)
			}
			if s.Busy() {
				t.Error("Busy flag must be released after failure")
			}
		})
	}
}

func TestSession_Busy(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/dir/a.txt", "a")

	s := newTestSession(fs)
	s.busy.Store(true)

	if _, err := s.OrganizeByCategory("/dir"); !errors.Is(err, internal.ErrBusy) {
		t.Errorf("Expected ErrBusy, got %v", err)
	}
	if _, err := s.FindAndConsolidateDuplicates("/dir"); !errors.Is(err, internal.ErrBusy) {
		t.Errorf("Expected ErrBusy, got %v", err)
	}
	assertExists(t, fs, "/dir/a.txt")

	s.busy.Store(false)
	if _, err := s.OrganizeByCategory("/dir"); err != nil {
		t.Errorf("Expected success once idle, got %v", err)
	}
}

func TestSession_Progress(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/dir/a.txt", "a")
	writeFile(t, fs, "/dir/b.txt", "b")
	writeFile(t, fs, "/dir/c.txt", "c")

	s := newTestSession(fs)
	last := 0
	s.SetProgress(func(done, total int, _ string) {
		if total != 3 {
			t.Errorf("Expected total 3, got %d", total)
		}
		last = done
	})

	if _, err := s.OrganizeByExtensionFolder("/dir"); err != nil {
		t.Fatalf("OrganizeByExtensionFolder() error = %v", err)
	}
	if last != 3 {
		t.Errorf("Expected final progress 3, got %d", last)
	}
}

func TestSession_OrganizeByExtensionFolder(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/dir/a.TXT", "a")
	writeFile(t, fs, "/dir/b.txt", "b")
	writeFile(t, fs, "/dir/c.tar.gz", "c")
	writeFile(t, fs, "/dir/Makefile", "all:")

	result, err := newTestSession(fs).OrganizeByExtensionFolder("/dir")
	if err != nil {
		t.Fatalf("OrganizeByExtensionFolder() error = %v", err)
	}

	if result.Moved != 3 || result.Skipped != 1 {
		t.Errorf("Expected 3 moved and 1 skipped, got %+v", result)
	}
	assertExists(t, fs, "/dir/txt_Files/a.TXT", "/dir/txt_Files/b.txt", "/dir/gz_Files/c.tar.gz", "/dir/Makefile")
}

func TestSession_OrganizeAlphabetically(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/dir/apple.txt", "1")
	writeFile(t, fs, "/dir/Élan.txt", "2")
	writeFile(t, fs, "/dir/2024.log", "3")
	writeFile(t, fs, "/dir/_notes", "4")

	if _, err := newTestSession(fs).OrganizeAlphabetically("/dir"); err != nil {
		t.Fatalf("OrganizeAlphabetically() error = %v", err)
	}

	assertExists(t, fs,
		"/dir/Alphabetical/A/apple.txt",
		"/dir/Alphabetical/E/Élan.txt",
		"/dir/Alphabetical/0-9/2024.log",
		"/dir/Alphabetical/#/_notes",
	)
}

func TestAlphabetBucket(t *testing.T) {
	testCases := []struct {
		name string
		want string
	}{
		{"zebra", "Z"},
		{"Zebra", "Z"},
		{"ñandu", "N"},
		{"über", "U"},
		{"9lives", "0-9"},
		{".hidden", "#"},
		{"", "#"},
		{"日本", "日"},
	}

	for _, tc := range testCases {
		if got := AlphabetBucket(tc.name); got != tc.want {
			t.Errorf("AlphabetBucket(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestSession_OrganizeByDate(t *testing.T) {
	old := time.Date(2021, 3, 14, 10, 0, 0, 0, time.Local)
	recent := time.Date(2024, 11, 2, 10, 0, 0, 0, time.Local)

	testCases := []struct {
		source DateSource
		layout string
		want   []string
	}{
		{DateModified, "", []string{"/dir/2021-03/old.txt", "/dir/2024-11/new.txt"}},
		{DateCreated, "2006", []string{"/dir/2021/old.txt", "/dir/2024/new.txt"}},
		// 非图片文件退回修改时间
		{DateExif, "", []string{"/dir/2021-03/old.txt", "/dir/2024-11/new.txt"}},
	}

	for _, tc := range testCases {
		t.Run(string(tc.source), func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writeFile(t, fs, "/dir/old.txt", "old")
			writeFile(t, fs, "/dir/new.txt", "new")
			if err := fs.Chtimes("/dir/old.txt", old, old); err != nil {
				t.Fatalf("设置时间失败: %v", err)
			}
			if err := fs.Chtimes("/dir/new.txt", recent, recent); err != nil {
				t.Fatalf("设置时间失败: %v", err)
			}

			opts := DefaultOptions()
			opts.DateSource = tc.source
			opts.DateLayout = tc.layout
			if _, err := NewSession(fs, opts).OrganizeByDate("/dir"); err != nil {
				t.Fatalf("OrganizeByDate() error = %v", err)
			}
			assertExists(t, fs, tc.want...)
		})
	}
}

func TestSession_FindAndConsolidateDuplicates(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/dir/a.txt", "same")
	writeFile(t, fs, "/dir/b.txt", "same")
	writeFile(t, fs, "/dir/c.txt", "same")
	writeFile(t, fs, "/dir/d.txt", "different")

	s := newTestSession(fs)
	result, err := s.FindAndConsolidateDuplicates("/dir")
	if err != nil {
		t.Fatalf("FindAndConsolidateDuplicates() error = %v", err)
	}

	if result.Moved != 2 {
		t.Errorf("Expected 2 moved, got %d", result.Moved)
	}

	outside := 0
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if exists, _ := afero.Exists(fs, "/dir/"+name); exists {
			outside++
		}
	}
	if outside != 1 {
		t.Errorf("Expected exactly one identical file outside Duplicates, got %d", outside)
	}
	assertExists(t, fs, "/dir/d.txt")

	entries, _ := afero.ReadDir(fs, "/dir/Duplicates")
	if len(entries) != 2 {
		t.Errorf("Expected 2 files in Duplicates, got %d", len(entries))
	}
}

func TestSession_FindAndConsolidateDuplicates_CustomFolderAndIndex(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/dir/a.bin", "x")
	writeFile(t, fs, "/dir/b.bin", "x")

	opts := DefaultOptions()
	opts.DuplicatesFolder = "Dupes"
	opts.IndexKind = "sqlite"
	opts.HashAlgorithm = "blake2b"

	if _, err := NewSession(fs, opts).FindAndConsolidateDuplicates("/dir"); err != nil {
		t.Fatalf("FindAndConsolidateDuplicates() error = %v", err)
	}
	assertExists(t, fs, "/dir/a.bin", "/dir/Dupes/b.bin")
}

func TestSession_FindDuplicates_DoesNotMove(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/dir/a.txt", "same")
	writeFile(t, fs, "/dir/b.txt", "same")

	groups, result, err := newTestSession(fs).FindDuplicates("/dir")
	if err != nil {
		t.Fatalf("FindDuplicates() error = %v", err)
	}
	if len(groups) != 1 || len(groups[0].Members) != 2 || result.Duplicates != 1 {
		t.Errorf("Unexpected groups: %+v", groups)
	}
	assertExists(t, fs, "/dir/a.txt", "/dir/b.txt")
}

func TestSession_Analyze(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/dir/a.txt", strings.Repeat("a", 10))
	writeFile(t, fs, "/dir/b.txt", strings.Repeat("b", 20))
	writeFile(t, fs, "/dir/c.txt", strings.Repeat("c", 30))

	report, err := newTestSession(fs).Analyze("/dir")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.FileCount != 3 || report.TotalSize != 60 {
		t.Errorf("Expected 3 files and 60 bytes, got %d and %d", report.FileCount, report.TotalSize)
	}
	if len(report.Types) != 1 || report.Types[0].Count != 3 {
		t.Errorf("Unexpected types: %+v", report.Types)
	}
}

func TestSession_ListEntries(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/dir/a.txt", "a")
	if err := fs.MkdirAll("/dir/sub", 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}

	entries, err := newTestSession(fs).ListEntries("/dir")
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
}

func TestParseDateSource(t *testing.T) {
	for name, want := range map[string]DateSource{
		"":         DateCreated,
		"created":  DateCreated,
		"Modified": DateModified,
		"exif":     DateExif,
	} {
		got, err := ParseDateSource(name)
		if err != nil || got != want {
			t.Errorf("ParseDateSource(%q) = %q, %v", name, got, err)
		}
	}
	if _, err := ParseDateSource("accessed"); err == nil {
		t.Error("Expected error for unknown date source")
	}
}
