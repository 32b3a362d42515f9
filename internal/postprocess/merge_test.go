package postprocess

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestMatrix(t *testing.T, dir, name string, m [][]float64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := WriteMatrix(path, m); err != nil {
		t.Fatalf("WriteMatrix(%s) failed: %v", name, err)
	}
	return path
}

func TestMatrixRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := [][]float64{
		{1.5, -2.25, 1e-9},
		{0, 42, math.Pi},
	}
	path := writeTestMatrix(t, dir, "m.txt", want)

	got, err := ReadMatrix(path)
	if err != nil {
		t.Fatalf("ReadMatrix failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if math.Abs(got[i][j]-want[i][j]) > 1e-15 {
				t.Errorf("m[%d][%d] = %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestReadMatrix_SkipsCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "c.txt")
	content := "# header\n\n1 2\n# mid\n3 4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := ReadMatrix(path)
	if err != nil {
		t.Fatalf("ReadMatrix failed: %v", err)
	}
	if len(m) != 2 || m[1][1] != 4 {
		t.Errorf("ReadMatrix = %v", m)
	}
}

func TestReadMatrix_Errors(t *testing.T) {
	dir := t.TempDir()

	ragged := filepath.Join(dir, "ragged.txt")
	os.WriteFile(ragged, []byte("1 2\n3\n"), 0o644)
	if _, err := ReadMatrix(ragged); err == nil {
		t.Error("expected error for ragged matrix")
	}

	bad := filepath.Join(dir, "bad.txt")
	os.WriteFile(bad, []byte("1 x\n"), 0o644)
	if _, err := ReadMatrix(bad); err == nil {
		t.Error("expected error for non-numeric value")
	}

	empty := filepath.Join(dir, "empty.txt")
	os.WriteFile(empty, []byte("\n# only comments\n"), 0o644)
	if _, err := ReadMatrix(empty); err == nil {
		t.Error("expected error for empty matrix")
	}
}

func TestMergeSplit_Averages(t *testing.T) {
	dir := t.TempDir()
	sources := []string{
		writeTestMatrix(t, dir, "s1.txt", [][]float64{{1, 2}, {3, 4}}),
		writeTestMatrix(t, dir, "s2.txt", [][]float64{{3, 6}, {5, 8}}),
		writeTestMatrix(t, dir, "s3.txt", [][]float64{{10, 0}, {0, 10}}),
		writeTestMatrix(t, dir, "s4.txt", [][]float64{{20, 2}, {4, 20}}),
	}
	targets := []string{
		filepath.Join(dir, "t1.txt"),
		filepath.Join(dir, "t2.txt"),
	}

	if err := MergeSplit(sources, targets, 2, nil); err != nil {
		t.Fatalf("MergeSplit failed: %v", err)
	}

	t1, err := ReadMatrix(targets[0])
	if err != nil {
		t.Fatalf("ReadMatrix(t1) failed: %v", err)
	}
	if t1[0][0] != 2 || t1[0][1] != 4 || t1[1][0] != 4 || t1[1][1] != 6 {
		t.Errorf("t1 = %v, want [[2 4] [4 6]]", t1)
	}

	t2, err := ReadMatrix(targets[1])
	if err != nil {
		t.Fatalf("ReadMatrix(t2) failed: %v", err)
	}
	if t2[0][0] != 15 || t2[1][1] != 15 {
		t.Errorf("t2 = %v, want [[15 1] [2 15]]", t2)
	}
}

func TestMergeSplit_Validation(t *testing.T) {
	dir := t.TempDir()
	s1 := writeTestMatrix(t, dir, "s1.txt", [][]float64{{1}})
	s2 := writeTestMatrix(t, dir, "s2.txt", [][]float64{{2}})
	target := filepath.Join(dir, "t.txt")

	// split must exceed 1
	if err := MergeSplit([]string{s1}, []string{target}, 1, nil); err == nil {
		t.Error("expected error for split=1")
	}
	// count mismatch
	if err := MergeSplit([]string{s1, s2}, []string{target, target}, 2, nil); err == nil {
		t.Error("expected error for source/target count mismatch")
	}
	// missing source
	if err := MergeSplit([]string{s1, filepath.Join(dir, "nope.txt")}, []string{target}, 2, nil); err == nil {
		t.Error("expected error for missing source")
	}
	// existing target
	existing := writeTestMatrix(t, dir, "exists.txt", [][]float64{{0}})
	if err := MergeSplit([]string{s1, s2}, []string{existing}, 2, nil); err == nil {
		t.Error("expected error for existing target")
	}
	// shape mismatch across a group
	wide := writeTestMatrix(t, dir, "wide.txt", [][]float64{{1, 2}})
	if err := MergeSplit([]string{s1, wide}, []string{target}, 2, nil); err == nil {
		t.Error("expected error for shape mismatch")
	}
}

func TestWaitForFiles_AlreadyPresent(t *testing.T) {
	dir := t.TempDir()
	writeTestMatrix(t, dir, "a.txt", [][]float64{{1}})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := WaitForFiles(ctx, dir, []string{"a.txt"}); err != nil {
		t.Errorf("WaitForFiles failed: %v", err)
	}
}

func TestWaitForFiles_AppearsLater(t *testing.T) {
	dir := t.TempDir()

	go func() {
		time.Sleep(50 * time.Millisecond)
		WriteMatrix(filepath.Join(dir, "late.txt"), [][]float64{{1}})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := WaitForFiles(ctx, dir, []string{"late.txt"}); err != nil {
		t.Errorf("WaitForFiles failed: %v", err)
	}
}

func TestWaitForFiles_Timeout(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := WaitForFiles(ctx, dir, []string{"never.txt"})
	if err == nil {
		t.Error("expected timeout error")
	}
}
