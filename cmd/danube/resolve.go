package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"danube/internal/diagfmt"
	"danube/internal/source"
	"danube/internal/symbols"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] <file.dn|project-dir> <path>",
	Short: "Resolve a path like a::b::C against the scope graph",
	Long: `Resolve looks a path up from the crate root (or --scope) through local names,
imports and parent scopes, and prints every definition it reaches`,
	Args: graphArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("ns", "type", "namespace of the last segment (type|value)")
	resolveCmd.Flags().Uint32("scope", 0, "scope to resolve from (0=crate root)")
	resolveCmd.Flags().String("format", "text", "output format (text|json|yaml)")
	addGraphFlags(resolveCmd)
}

type resolvedDef struct {
	Kind     string `json:"kind" yaml:"kind"`
	Name     string `json:"name" yaml:"name"`
	Scope    uint32 `json:"scope" yaml:"scope"`
	Child    uint32 `json:"child,omitempty" yaml:"child,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

type resolveOutput struct {
	Path      string        `json:"path" yaml:"path"`
	Namespace string        `json:"namespace" yaml:"namespace"`
	From      uint32        `json:"from" yaml:"from"`
	Results   []resolvedDef `json:"results" yaml:"results"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	nsStr, err := cmd.Flags().GetString("ns")
	if err != nil {
		return fmt.Errorf("failed to get ns flag: %w", err)
	}
	ns, err := symbols.ParseNamespace(nsStr)
	if err != nil {
		return err
	}
	from, err := cmd.Flags().GetUint32("scope")
	if err != nil {
		return fmt.Errorf("failed to get scope flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "text" && format != "json" && format != "yaml" {
		return fmt.Errorf("unknown format: %s", format)
	}
	text := args[len(args)-1]

	g, err := loadGraph(cmd, sourceArg(cmd, args))
	if err != nil {
		return err
	}
	scope := g.root
	if from != 0 {
		scope = symbols.ScopeID(from)
		if g.env.Scope(scope) == nil {
			return fmt.Errorf("no scope #%d (graph has %d)", from, g.env.NumScopes())
		}
	}

	out := resolveOutput{Path: text, Namespace: ns.String(), From: uint32(scope), Results: []resolvedDef{}}
	if path, ok := lookupPath(g.strs, text); ok {
		locate := g.locate()
		for _, id := range g.env.ResolveNodes(scope, ns, path) {
			n := g.env.Node(id)
			d := resolvedDef{
				Kind:  n.Def.Kind.String(),
				Name:  g.strs.MustLookup(n.Name),
				Scope: uint32(n.Scope),
				Child: uint32(n.Child),
			}
			if locate != nil {
				d.Location = locate(n.Def.Span)
			}
			out.Results = append(out.Results, d)
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		err = enc.Encode(out)
	case "yaml":
		err = diagfmt.EncodeYAML(cmd.OutOrStdout(), out)
	default:
		printResolved(cmd.OutOrStdout(), out)
	}
	if err != nil {
		return err
	}
	g.printTimings(cmd)
	if len(out.Results) == 0 {
		return fmt.Errorf("cannot find `%s` in the %s namespace", text, out.Namespace)
	}
	return nil
}

// lookupPath splits text on "::". A segment the graph never interned
// cannot name anything, so ok is false.
func lookupPath(strs *source.Interner, text string) ([]source.StringID, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}
	segs := strings.Split(text, "::")
	path := make([]source.StringID, len(segs))
	for i, seg := range segs {
		id, ok := strs.Find(strings.TrimSpace(seg))
		if !ok {
			return nil, false
		}
		path[i] = id
	}
	return path, true
}

func printResolved(w io.Writer, out resolveOutput) {
	for _, d := range out.Results {
		line := d.Kind + " " + d.Name + " in scope #" + strconv.FormatUint(uint64(d.Scope), 10)
		if d.Location != "" {
			line += " at " + d.Location
		}
		fmt.Fprintln(w, line)
	}
	if len(out.Results) > 1 {
		fmt.Fprintf(w, "%d candidates\n", len(out.Results))
	}
}
