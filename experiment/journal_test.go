package experiment

import (
	"path/filepath"
	"strings"
	"testing"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestBeginAssignsDistinctIDs(t *testing.T) {
	j := openTestJournal(t)
	a, err := j.Begin("first run")
	if err != nil {
		t.Fatal(err)
	}
	b, err := j.Begin("second run")
	if err != nil {
		t.Fatal(err)
	}
	if a == "" || b == "" || a == b {
		t.Errorf("ids %q and %q, want distinct non-empty", a, b)
	}
}

func TestLogAndHistory(t *testing.T) {
	j := openTestJournal(t)
	id, err := j.Begin("accuracy over epochs")
	if err != nil {
		t.Fatal(err)
	}
	for epoch, v := range []float64{0.5, 0.75, 0.7} {
		if err := j.Log(id, epoch, "accuracy", v); err != nil {
			t.Fatal(err)
		}
		if err := j.Log(id, epoch, "loss", 1-v); err != nil {
			t.Fatal(err)
		}
	}
	points, err := j.History(id, "accuracy")
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	for i, want := range []float64{0.5, 0.75, 0.7} {
		if points[i].Epoch != i || points[i].Value != want {
			t.Errorf("point %d == %+v, want {%d %v}", i, points[i], i, want)
		}
	}

	best, err := j.Best(id, "accuracy")
	if err != nil {
		t.Fatal(err)
	}
	if best != 0.75 {
		t.Errorf("best == %v, want 0.75", best)
	}
}

func TestHistoryIsolatedPerExperiment(t *testing.T) {
	j := openTestJournal(t)
	a, _ := j.Begin("a")
	b, _ := j.Begin("b")
	if err := j.Log(a, 0, "accuracy", 0.9); err != nil {
		t.Fatal(err)
	}
	points, err := j.History(b, "accuracy")
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 0 {
		t.Errorf("experiment b sees %d foreign points", len(points))
	}
	if _, err := j.Best(b, "accuracy"); err == nil {
		t.Error("best over no measurements did not fail")
	}
}

func TestMarkdown(t *testing.T) {
	j := openTestJournal(t)
	id, err := j.Begin("blobs [demo]\nlr 0.5")
	if err != nil {
		t.Fatal(err)
	}
	if err := j.Log(id, 0, "accuracy", 0.5); err != nil {
		t.Fatal(err)
	}
	if err := j.Log(id, 1, "accuracy", 0.75); err != nil {
		t.Fatal(err)
	}
	md, err := j.Markdown(id)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(md, "# Experiment "+id+"\n\n") {
		t.Errorf("markdown header wrong: %q", md)
	}
	if !strings.Contains(md, "blobs&nbsp;\\[demo\\]<br>lr&nbsp;0.5") {
		t.Errorf("markdown misses escaped description: %q", md)
	}
	if !strings.Contains(md, "## accuracy") {
		t.Errorf("markdown misses metric section: %q", md)
	}
	if !strings.Contains(md, "| epoch | accuracy |\n|-----|-----|\n| 0 | 0.5 |\n| 1 | 0.75 |\n") {
		t.Errorf("markdown misses history table: %q", md)
	}
}

func TestMarkdownUnknownExperiment(t *testing.T) {
	j := openTestJournal(t)
	if _, err := j.Markdown("no-such-id"); err == nil {
		t.Fatal("unknown experiment did not fail")
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")
	j, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	id, err := j.Begin("persist")
	if err != nil {
		t.Fatal(err)
	}
	if err := j.Log(id, 0, "accuracy", 1); err != nil {
		t.Fatal(err)
	}
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}

	j2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer j2.Close()
	points, err := j2.History(id, "accuracy")
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 1 || points[0].Value != 1 {
		t.Errorf("reopened history == %+v", points)
	}
}
