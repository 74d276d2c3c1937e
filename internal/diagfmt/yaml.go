package diagfmt

import (
	"io"

	"gopkg.in/yaml.v3"

	"danube/internal/diag"
	"danube/internal/source"
)

// YAML is JSON with YAML encoding.
func YAML(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	return EncodeYAML(w, BuildDiagnosticsOutput(bag, fs, opts))
}

// EncodeYAML writes v as a YAML document with two-space indentation.
func EncodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}
