package typedini

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// benchINI builds a file with the given number of sections, each holding one
// key of every kind.
func benchINI(sections int) string {
	var sb strings.Builder
	sb.WriteString("[DEFAULT]\nowner = bench\n\n")
	for i := 0; i < sections; i++ {
		fmt.Fprintf(&sb, "[Section%d]\n", i)
		sb.WriteString("enabled = true\n")
		sb.WriteString("count = -042\n")
		sb.WriteString("ratio = 3.14\n")
		sb.WriteString("name = report.xlsx\n")
		sb.WriteString("columns = A, B, C\n")
		sb.WriteString(`formats = {"enabled": true, "widths": [12, 18], "names": ["DD.MM.YY"]}` + "\n")
		sb.WriteString("broken = {not valid\n\n")
	}
	return sb.String()
}

func writeBenchINI(b *testing.B, sections int) string {
	b.Helper()
	path := filepath.Join(b.TempDir(), "bench.ini")
	if err := os.WriteFile(path, []byte(benchINI(sections)), 0644); err != nil {
		b.Fatalf("write fixture: %v", err)
	}
	return path
}

func BenchmarkCoerce_Scalar(b *testing.B) {
	inputs := []string{"true", "-042", "3.14", "report.xlsx"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, in := range inputs {
			_, _ = coerce(in)
		}
	}
}

func BenchmarkCoerce_Structured(b *testing.B) {
	in := `{"enabled": true, "filename": "file.xlsx", "column_formats": ["DD.MM.YY"], "column_widths": [12]}`

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = coerce(in)
	}
}

func BenchmarkLoad_SmallFile(b *testing.B) {
	path := writeBenchINI(b, 5)
	loader := NewLoader()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := loader.Load(context.Background(), path); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoad_LargeFile(b *testing.B) {
	path := writeBenchINI(b, 200)
	loader := NewLoader()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := loader.Load(context.Background(), path); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoadSection_LargeFile(b *testing.B) {
	path := writeBenchINI(b, 200)
	loader := NewLoader()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := loader.LoadSection(context.Background(), path, "Section100"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDump_JSON(b *testing.B) {
	snap, err := NewLoader().Load(context.Background(), writeBenchINI(b, 50))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Dump(io.Discard, snap, AsJSON(), WithSources()); err != nil {
			b.Fatal(err)
		}
	}
}
