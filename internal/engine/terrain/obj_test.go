package terrain

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestWriteOBJ(t *testing.T) {
	mesh, err := Tessellate(NewSurface(newTestGrid(t, 5, 5, hill)), 2)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}

	var buf bytes.Buffer
	if err := mesh.WriteOBJ(&buf, "hill"); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}

	counts := make(map[string]int)
	var firstFace string
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		counts[fields[0]]++
		if fields[0] == "f" && firstFace == "" {
			firstFace = scanner.Text()
		}
	}

	n := len(mesh.Vertices)
	for _, kind := range []string{"v", "vt", "vn"} {
		if counts[kind] != n {
			t.Errorf("expected %d %q lines, got %d", n, kind, counts[kind])
		}
	}
	if counts["f"] != len(mesh.Indices)/3 {
		t.Errorf("expected %d faces, got %d", len(mesh.Indices)/3, counts["f"])
	}
	if counts["o"] != 1 {
		t.Errorf("expected one object line, got %d", counts["o"])
	}

	// First triangle is a, b, c of cell (0, 0): vertices 0, 1 and rows+1, 1-based.
	want := "f 1/1/1 2/2/2 10/10/10"
	if firstFace != want {
		t.Errorf("first face %q, want %q", firstFace, want)
	}
}
