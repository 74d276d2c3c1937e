package parser

import (
	"testing"

	"danube/internal/ast"
	"danube/internal/diag"
)

func firstUseTree(t *testing.T, p parsed) *ast.UseTree {
	t.Helper()
	use, ok := p.arenas.Items.Use(p.file.Items[0])
	if !ok {
		t.Fatalf("first item is not a use declaration")
	}
	return p.arenas.Items.UseTree(use.Tree)
}

func TestParseUse_Forms(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   ast.UseTreeKind
		prefix string
		alias  string
	}{
		{"simple", "use a::b;", ast.UseTreeSimple, "a::b", ""},
		{"aliased", "use a::b as c;", ast.UseTreeSimple, "a::b", "c"},
		{"underscore alias", "use a::Tr as _;", ast.UseTreeSimple, "a::Tr", "_"},
		{"glob", "use a::*;", ast.UseTreeGlob, "a", ""},
		{"leading colons", "use ::x::*;", ast.UseTreeGlob, "x", ""},
		{"keywords", "use crate::super::self;", ast.UseTreeSimple, "crate::super::self", ""},
		{"group", "use a::{b, c};", ast.UseTreeNested, "a", ""},
		{"bare group", "use {b, c};", ast.UseTreeNested, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseText(t, tt.input)
			if p.bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
			}
			tree := firstUseTree(t, p)
			if tree.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", tree.Kind, tt.kind)
			}
			if got := p.segments(tree.Prefix); got != tt.prefix {
				t.Errorf("prefix = %q, want %q", got, tt.prefix)
			}
			if got := p.name(tree.Alias); got != tt.alias {
				t.Errorf("alias = %q, want %q", got, tt.alias)
			}
		})
	}
}

func TestParseUse_NestedGroup(t *testing.T) {
	p := parseText(t, "use a::{b, c::d as e, f::*, self, g::{h}};")
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
	tree := firstUseTree(t, p)
	want := []struct {
		kind   ast.UseTreeKind
		prefix string
		alias  string
	}{
		{ast.UseTreeSimple, "b", ""},
		{ast.UseTreeSimple, "c::d", "e"},
		{ast.UseTreeGlob, "f", ""},
		{ast.UseTreeSimple, "self", ""},
		{ast.UseTreeNested, "g", ""},
	}
	if len(tree.Children) != len(want) {
		t.Fatalf("got %d children, want %d", len(tree.Children), len(want))
	}
	for i, w := range want {
		child := p.arenas.Items.UseTree(tree.Children[i])
		if child.Kind != w.kind || p.segments(child.Prefix) != w.prefix || p.name(child.Alias) != w.alias {
			t.Errorf("child %d = %v %q as %q, want %v %q as %q",
				i, child.Kind, p.segments(child.Prefix), p.name(child.Alias), w.kind, w.prefix, w.alias)
		}
	}
	inner := p.arenas.Items.UseTree(tree.Children[4])
	if len(inner.Children) != 1 {
		t.Fatalf("inner group has %d children", len(inner.Children))
	}
}

func TestParseUse_Malformed(t *testing.T) {
	t.Run("dangling separator", func(t *testing.T) {
		p := parseText(t, "use a::;")
		if p.bag.Len() != 0 {
			t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
		}
		if tree := firstUseTree(t, p); tree.Kind != ast.UseTreeInvalid {
			t.Fatalf("kind = %v, want invalid", tree.Kind)
		}
	})
	t.Run("empty group", func(t *testing.T) {
		p := parseText(t, "use a::{};")
		if p.bag.Len() != 1 || p.bag.Items()[0].Code != diag.SynEmptyUseGroup {
			t.Fatalf("want one empty-group warning, got %s", diagnosticsSummary(p.bag))
		}
		if p.bag.HasErrors() {
			t.Fatalf("empty group must only warn")
		}
	})
	t.Run("bad alias", func(t *testing.T) {
		p := parseText(t, "use a::b as 1;")
		if p.bag.Len() == 0 || p.bag.Items()[0].Code != diag.SynExpectIdentAfterAs {
			t.Fatalf("want alias error, got %s", diagnosticsSummary(p.bag))
		}
		if tree := firstUseTree(t, p); tree.Kind != ast.UseTreeInvalid {
			t.Fatalf("kind = %v, want invalid", tree.Kind)
		}
	})
}
