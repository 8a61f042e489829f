package glossary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHighlight_LongestFirstAndCaseInsensitive(t *testing.T) {
	g := New(map[string]string{
		"breach":          "Failure to do what the contract requires.",
		"material breach": "A serious failure that lets the other side end the contract.",
	})
	got := g.Highlight("A Material Breach is worse than a breach.")
	if !strings.Contains(got, `<b>Material Breach</b><span class="tooltiptext">A serious failure`) {
		t.Fatalf("longer term not highlighted: %s", got)
	}
	if strings.Count(got, `class="tooltip"`) != 2 {
		t.Fatalf("expected two highlights, got %s", got)
	}
	if strings.Contains(got, "<b>Breach</b>") {
		t.Fatalf("shorter term matched inside longer one: %s", got)
	}
}

func TestHighlight_WholeWordAndEscaping(t *testing.T) {
	g := New(map[string]string{"lease": "A contract for renting property & land."})
	got := g.Highlight("Release <b> the lease")
	if strings.Contains(got, "Re<span") {
		t.Fatalf("matched inside a word: %s", got)
	}
	if !strings.Contains(got, "Release &lt;b&gt; the ") {
		t.Fatalf("text not escaped: %s", got)
	}
	if !strings.Contains(got, "property &amp; land.") {
		t.Fatalf("meaning not escaped: %s", got)
	}
}

func TestHighlight_EmptyGlossaryEscapesOnly(t *testing.T) {
	var g *Glossary
	if got := g.Highlight("a < b"); got != "a &lt; b" {
		t.Fatalf("got %q", got)
	}
	if got := New(nil).Highlight("x & y"); got != "x &amp; y" {
		t.Fatalf("got %q", got)
	}
}

func TestTerms_CountsInOrder(t *testing.T) {
	g := Default()
	got := g.Terms("The Lessee shall indemnify the Lessor. The lessee pays.")
	if len(got) != 3 {
		t.Fatalf("expected 3 terms, got %+v", got)
	}
	if got[0].Term != "lessee" || got[0].Count != 2 {
		t.Fatalf("unexpected first entry %+v", got[0])
	}
	if got[1].Term != "indemnify" || got[2].Term != "lessor" {
		t.Fatalf("unexpected order %+v", got)
	}
}

func TestLoad_YAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	y := filepath.Join(dir, "g.yaml")
	if err := os.WriteFile(y, []byte("Waiver: Giving up a right.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := Load(y)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if m, ok := g.Meaning("WAIVER"); !ok || m != "Giving up a right." {
		t.Fatalf("meaning = %q, %v", m, ok)
	}
	j := filepath.Join(dir, "g.json")
	if err := os.WriteFile(j, []byte(`{"escrow": "Money held by a third party."}`), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err = Load(j)
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if g.Len() != 1 {
		t.Fatalf("len = %d", g.Len())
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	g, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 0 {
		t.Fatalf("expected empty glossary")
	}
}

func TestLoad_Malformed(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(p, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(p); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestDefault_NotEmpty(t *testing.T) {
	if Default().Len() < 10 {
		t.Fatalf("built-in glossary too small")
	}
}

func TestDefinedTerms(t *testing.T) {
	text := `The parties enter this Lease Agreement (the "Agreement") today. "Tenant" means the person renting the Premises. ` +
		`Both parties accept the Service Level Agreement (SLA).`
	got := DefinedTerms(text)
	want := map[string]string{
		"Agreement": "Lease Agreement",
		"SLA":       "Service Level Agreement",
		"Tenant":    "the person renting the Premises",
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for _, d := range got {
		if want[d.Term] != d.Definition {
			t.Fatalf("%s: got %q want %q", d.Term, d.Definition, want[d.Term])
		}
	}
	if got[0].Term != "Agreement" || got[2].Term != "Tenant" {
		t.Fatalf("not sorted: %+v", got)
	}
}
