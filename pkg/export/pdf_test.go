package export

import (
	"bytes"
	"fmt"
	"testing"
)

func TestRenderPDF(t *testing.T) {
	rows := make([][]string, 0, 80)
	for i := 0; i < 80; i++ {
		rows = append(rows, []string{fmt.Sprintf("R-%02d", i), "Downtown Loop", fmt.Sprint(i)})
	}

	out, err := RenderPDF(&Table{
		Title:   "Active buses per route",
		Headers: []string{"Route code", "Route name", "Active buses"},
		Rows:    rows,
	})
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a pdf: %q", out[:8])
	}
}

func TestRenderPDFRequiresHeaders(t *testing.T) {
	if _, err := RenderPDF(&Table{Title: "empty"}); err == nil {
		t.Fatal("expected error without headers")
	}
}
