package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"

	"danube/internal/diag"
	"danube/internal/source"
)

func ambiguityBag() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.dn", []byte("use a::X;\nstruct X;\nstruct S { f: X }\n"))
	bag := diag.NewBag(10)
	d := diag.New(diag.SevWarning, diag.ResAmbiguousPath, source.Span{File: id, Start: 34, End: 35}, "`X` is ambiguous: 2 candidates")
	d.Notes = []diag.Note{
		{Span: source.Span{File: id, Start: 17, End: 18}, Msg: "could refer to the struct defined here"},
	}
	bag.Add(d)
	bag.Add(diag.NewError(diag.ResUnresolvedPath, source.Span{File: id, Start: 0, End: 3}, "second"))
	return bag, fs
}

func TestJSON(t *testing.T) {
	bag, fs := ambiguityBag()
	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, Max: 1})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("Max not applied: %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Severity != "WARNING" || d.Code != "RES3102" {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Location.File != "main.dn" || d.Location.StartLine != 3 || d.Location.StartCol != 15 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartLine != 2 {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestJSON_NoPositions(t *testing.T) {
	bag, fs := ambiguityBag()
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if out.Count != 2 {
		t.Fatalf("count = %d", out.Count)
	}
	if loc := out.Diagnostics[0].Location; loc.StartLine != 0 || loc.StartByte != 34 {
		t.Errorf("location = %+v", loc)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Errorf("notes included without IncludeNotes")
	}
}

func TestYAML(t *testing.T) {
	bag, fs := ambiguityBag()
	var buf bytes.Buffer
	if err := YAML(&buf, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("YAML: %v", err)
	}
	var out DiagnosticsOutput
	if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || out.Diagnostics[1].Code != "RES3101" || out.Diagnostics[1].Location.StartLine != 1 {
		t.Fatalf("decoded = %+v", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("start_byte: 34")) {
		t.Errorf("snake_case keys missing:\n%s", buf.String())
	}
}
