package pipeline

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/backmassage/pixmaster/internal/probe"
)

func TestPercentile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{25, 20},
		{50, 30},
		{75, 40},
		{100, 50},
		{10, 14},
	}
	for _, tt := range tests {
		if got := percentile(sorted, tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if percentile(nil, 50) != 0 {
		t.Error("empty input should yield 0")
	}
}

func TestFences_Classify(t *testing.T) {
	// Q1 = 117.5, Q3 = 152.5, IQR = 35.
	f := newFences([]float64{100, 110, 120, 130, 140, 150, 160, 170})
	if !f.ok {
		t.Fatal("fences should be usable")
	}
	tests := []struct {
		v    float64
		want sizeClass
	}{
		{135, sizeNormal},
		{230, sizeOutlier},
		{400, sizeExtreme},
		{0, sizeNormal},
	}
	for _, tt := range tests {
		if got := f.classify(tt.v); got != tt.want {
			t.Errorf("classify(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
	if lo, _ := f.inner(); lo != 65 {
		t.Errorf("inner low = %v, want 65", lo)
	}

	if newFences([]float64{1, 2, 3}).ok {
		t.Error("fewer than 4 values should not produce fences")
	}
	if newFences([]float64{5, 5, 5, 5}).ok {
		t.Error("no spread should not produce fences")
	}
}

func TestWriteAnalysisTable(t *testing.T) {
	rows := []analysisRow{
		{rel: "a/hero.png", info: &probe.ImageInfo{Format: "png", Width: 4000, Height: 2000, Size: 8_000_000}, wide: true, class: sizeExtreme},
		{rel: "icon.jpg", info: &probe.ImageInfo{Format: "jpeg", Width: 0, Height: 0, Size: 512}},
	}
	var buf bytes.Buffer
	writeAnalysisTable(&buf, rows)
	out := buf.String()

	for _, want := range []string{"File", "B/px", "a/hero.png", "4000x2000", "1.00", "[!]", "[>]", "icon.jpg"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("table should not contain escape sequences with colors off")
	}
}

func TestAnalyze_ReadOnly(t *testing.T) {
	e := newEnv(t)
	e.cfg.MaxWidth = 100
	e.writeImage(t, "wide.png", 400, 200)
	e.writeRaw(t, "broken.png", []byte("nope"))

	if err := Analyze(context.Background(), &e.cfg, e.log); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if countFiles(t, e.out) != 0 {
		t.Error("Analyze must not write output")
	}
}

func TestAnalyze_FlagsOrientedWidth(t *testing.T) {
	e := newEnv(t)
	e.cfg.MaxWidth = 150
	// Stored 100x200, displayed 200x100: wider than the bound.
	path := e.writeRaw(t, "phone.jpg", orientedJPEG(t, 100, 200, 6))

	if err := Analyze(context.Background(), &e.cfg, e.log); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !strings.Contains(e.stdout.String(), "1 image(s) wider than 150px") {
		t.Errorf("rotated image not flagged as wide:\n%s", e.stdout.String())
	}

	info, err := probe.Probe(path)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	writeAnalysisTable(&buf, []analysisRow{{rel: "phone.jpg", info: info}})
	if !strings.Contains(buf.String(), "200x100") {
		t.Errorf("table should show the displayed size:\n%s", buf.String())
	}
}
