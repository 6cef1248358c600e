package filter

import "testing"

func TestPartitionByLanguage(t *testing.T) {
	files := []string{
		"main.go",
		"pkg/util.go",
		"app/index.ts",
		"app/node_modules/react/index.js",
		"scripts/build.min.js",
		"service/Main.java",
		"README.md",
	}
	got := Partition(files, Options{})

	if len(got["go"]) != 2 {
		t.Fatalf("expected 2 go files, got %v", got["go"])
	}
	if len(got["javascript"]) != 1 {
		t.Fatalf("expected 1 javascript file (node_modules excluded, minified excluded), got %v", got["javascript"])
	}
	if len(got["java"]) != 1 {
		t.Fatalf("expected 1 java file, got %v", got["java"])
	}
	if _, ok := got["other"]; ok {
		t.Fatalf("unrecognized extensions must not produce an 'other' partition")
	}
}

func TestAdmitDeniesVendorAndMinified(t *testing.T) {
	cases := map[string]bool{
		"vendor/lib/foo.go":         false,
		"src/a/b/c.ts":              true,
		"dist/app.min.js":           false,
		".git/hooks/pre-commit.go":  false,
		"internal/real/logic.go":    true,
	}
	for path, want := range cases {
		if got := Admit(path); got != want {
			t.Errorf("Admit(%q) = %v, want %v", path, got, want)
		}
	}
}
