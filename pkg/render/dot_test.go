package render

import (
	"context"
	"strings"
	"testing"

	errs "github.com/matzehuels/swiftdeps/pkg/errors"
	"github.com/matzehuels/swiftdeps/pkg/purl"
	"github.com/matzehuels/swiftdeps/pkg/submission"
)

func testResolved() map[string]submission.Package {
	return map[string]submission.Package{
		"b": {PackageURL: purl.New("example.com/org", "B", "2.0.0"), Dependencies: []string{"a"}},
		"a": {PackageURL: purl.New("example.com/org", "A", "1.0.0"), Dependencies: []string{}},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testResolved(), Options{})

	if !strings.HasPrefix(dot, "digraph G {\n") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT() missing graph wrapper:\n%s", dot)
	}
	if !strings.Contains(dot, `"a" [label="a\n1.0.0"];`) {
		t.Errorf("ToDOT() missing node a:\n%s", dot)
	}
	if !strings.Contains(dot, `"b" -> "a";`) {
		t.Errorf("ToDOT() missing edge b -> a:\n%s", dot)
	}
	if strings.Index(dot, `"a" [`) > strings.Index(dot, `"b" [`) {
		t.Error("ToDOT() nodes not in identity order")
	}
	if strings.Contains(dot, "pkg:swift") {
		t.Error("ToDOT() included package URL without Detailed")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testResolved(), Options{Detailed: true})
	if !strings.Contains(dot, `pkg:swift/example.com/org/B@2.0.0`) {
		t.Errorf("ToDOT() detailed label missing package URL:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	resolved := testResolved()
	for _, id := range []string{"z", "m", "c"} {
		resolved[id] = submission.Package{PackageURL: purl.New("example.com", id, "1"), Dependencies: []string{"a", "b"}}
	}
	first := ToDOT(resolved, Options{})
	for range 5 {
		if got := ToDOT(resolved, Options{}); got != first {
			t.Fatal("ToDOT() output differs between calls")
		}
	}
}

func TestToDOTDanglingDependency(t *testing.T) {
	resolved := map[string]submission.Package{
		"a": {PackageURL: purl.New("example.com", "A", "1"), Dependencies: []string{"ghost"}},
	}
	dot := ToDOT(resolved, Options{})
	if !strings.Contains(dot, `"ghost" [label="ghost", style="rounded,filled,dashed", fillcolor=lightgrey];`) {
		t.Errorf("ToDOT() missing dashed node for dangling dependency:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testResolved(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`)
	if err == nil {
		t.Fatal("RenderSVG() should return error for invalid DOT")
	}
	if errs.GetCode(err) == "" {
		t.Errorf("RenderSVG() error %v carries no code", err)
	}
}
