package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"danube/internal/ast"
	"danube/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(label string, children ...*treeNode) *treeNode {
	c := &treeNode{label: label, children: children}
	n.children = append(n.children, c)
	return c
}

// ASTNodeOutput is the JSON form of the item tree.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

type astPrinter struct {
	b    *ast.Builder
	strs *source.Interner
	fs   *source.FileSet
}

// FormatASTPretty prints the declarations of fileID as a tree.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, strs *source.Interner, fs *source.FileSet) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not found", fileID)
	}
	p := astPrinter{b: builder, strs: strs, fs: fs}
	header := "File"
	if fs != nil {
		header = fs.Get(file.Span.File).FormatPath("auto", fs.BaseDir())
	}
	root := &treeNode{label: fmt.Sprintf("%s (span: %s)", header, formatSpan(file.Span, fs))}
	for idx, id := range file.Items {
		root.children = append(root.children, p.item(id, fmt.Sprintf("Item[%d]", idx)))
	}

	var b strings.Builder
	b.WriteString(root.label + "\n")
	writeTree(&b, root.children, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTree(b *strings.Builder, nodes []*treeNode, prefix string) {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		b.WriteString(prefix + branch + n.label + "\n")
		writeTree(b, n.children, prefix+next)
	}
}

func (p *astPrinter) name(id source.StringID) string {
	if id == source.NoStringID {
		return "<unnamed>"
	}
	return p.strs.MustLookup(id)
}

func (p *astPrinter) ty(id ast.TypeID) string {
	return formatTypeExprInline(p.b, p.strs, id)
}

func (p *astPrinter) item(id ast.ItemID, label string) *treeNode {
	it := p.b.Items.Get(id)
	if it == nil {
		return &treeNode{label: label + ": <nil>"}
	}
	head := it.Kind.String()
	if it.Visibility != ast.VisPrivate {
		head = it.Visibility.String() + " " + head
	}
	if it.Name != source.NoStringID {
		head += " " + p.name(it.Name)
	}
	node := &treeNode{label: fmt.Sprintf("%s: %s (span: %s)", label, head, formatSpan(it.Span, p.fs))}
	items := p.b.Items

	switch it.Kind {
	case ast.ItemUse:
		if u, ok := items.Use(id); ok {
			node.add("Tree: " + p.useTree(u.Tree))
		}
	case ast.ItemMod:
		if m, ok := items.Mod(id); ok {
			if !m.Inline {
				node.add("External")
			}
			p.children(node, "Items", m.Items)
		}
	case ast.ItemStruct:
		if st, ok := items.Struct(id); ok {
			p.generics(node, st.Generics)
			p.fields(node, st.Fields)
		}
	case ast.ItemEnum:
		if en, ok := items.Enum(id); ok {
			p.generics(node, en.Generics)
			vs := node.add("Variants")
			for _, vid := range en.Variants {
				v := items.Variant(vid)
				if v == nil {
					continue
				}
				label := p.name(v.Name)
				if v.HasDiscriminant {
					label += " = …"
				}
				p.fields(vs.add(label), v.Fields)
			}
		}
	case ast.ItemTrait:
		if tr, ok := items.Trait(id); ok {
			p.generics(node, tr.Generics)
			p.types(node, "Supertraits", tr.Supertraits)
			p.children(node, "Items", tr.Items)
		}
	case ast.ItemImpl:
		if im, ok := items.Impl(id); ok {
			p.generics(node, im.Generics)
			if im.Trait.IsValid() {
				node.add("Trait: " + p.ty(im.Trait))
			}
			node.add("Self: " + p.ty(im.SelfType))
			p.children(node, "Items", im.Items)
		}
	case ast.ItemFn:
		if fn, ok := items.Fn(id); ok {
			p.generics(node, fn.Generics)
			params := node.add("Params")
			for _, pid := range fn.Params {
				prm := items.FnParam(pid)
				switch {
				case prm == nil:
				case prm.IsSelf:
					params.add("self: " + p.ty(prm.Type))
				case prm.Name == source.NoStringID:
					params.add("_: " + p.ty(prm.Type))
				default:
					params.add(p.name(prm.Name) + ": " + p.ty(prm.Type))
				}
			}
			if fn.ReturnType.IsValid() {
				node.add("Return: " + p.ty(fn.ReturnType))
			}
			if !fn.HasBody {
				node.add("Body: <none>")
			}
		}
	case ast.ItemConst, ast.ItemStatic:
		if c, ok := items.Const(id); ok {
			label := "Type: " + p.ty(c.Type)
			if c.Mutable {
				label += " (mut)"
			}
			node.add(label)
			if !c.HasValue {
				node.add("Value: <none>")
			}
		}
	case ast.ItemTypeAlias:
		if al, ok := items.TypeAlias(id); ok {
			p.generics(node, al.Generics)
			p.types(node, "Bounds", al.Bounds)
			if al.Type.IsValid() {
				node.add("Type: " + p.ty(al.Type))
			}
		}
	}
	return node
}

func (p *astPrinter) children(node *treeNode, label string, ids []ast.ItemID) {
	if len(ids) == 0 {
		return
	}
	group := node.add(label)
	for i, id := range ids {
		group.children = append(group.children, p.item(id, fmt.Sprintf("Item[%d]", i)))
	}
}

func (p *astPrinter) types(node *treeNode, label string, ids []ast.TypeID) {
	if len(ids) == 0 {
		return
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = p.ty(id)
	}
	node.add(label + ": " + strings.Join(parts, " + "))
}

func (p *astPrinter) generics(node *treeNode, ids []ast.GenericParamID) {
	if len(ids) == 0 {
		return
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		gp := p.b.Items.GenericParam(id)
		if gp == nil {
			continue
		}
		var s string
		switch gp.Kind {
		case ast.GenericLifetime:
			s = p.name(gp.Name)
		case ast.GenericConst:
			s = "const " + p.name(gp.Name) + ": " + p.ty(gp.ConstType)
		default:
			s = p.name(gp.Name)
			if len(gp.Bounds) > 0 {
				bounds := make([]string, len(gp.Bounds))
				for i, b := range gp.Bounds {
					bounds[i] = p.ty(b)
				}
				s += ": " + strings.Join(bounds, " + ")
			}
		}
		parts = append(parts, s)
	}
	node.add("Generics: <" + strings.Join(parts, ", ") + ">")
}

func (p *astPrinter) fields(node *treeNode, ids []ast.FieldID) {
	for i, id := range ids {
		f := p.b.Items.Field(id)
		if f == nil {
			continue
		}
		name := p.name(f.Name)
		if f.Name == source.NoStringID {
			name = fmt.Sprint(i)
		}
		label := name + ": " + p.ty(f.Type)
		if f.Visibility != ast.VisPrivate {
			label = f.Visibility.String() + " " + label
		}
		node.add("Field " + label)
	}
}

func (p *astPrinter) useTree(id ast.UseTreeID) string {
	t := p.b.Items.UseTree(id)
	if t == nil {
		return "<nil>"
	}
	prefix := formatPathSegments(p.b, p.strs, t.Prefix)
	join := func(tail string) string {
		if prefix == "" {
			return tail
		}
		return prefix + "::" + tail
	}
	switch t.Kind {
	case ast.UseTreeSimple:
		if t.Alias != source.NoStringID {
			return prefix + " as " + p.name(t.Alias)
		}
		return prefix
	case ast.UseTreeGlob:
		return join("*")
	case ast.UseTreeNested:
		parts := make([]string, len(t.Children))
		for i, c := range t.Children {
			parts[i] = p.useTree(c)
		}
		return join("{" + strings.Join(parts, ", ") + "}")
	}
	return "<invalid>"
}

// FormatASTJSON writes the declarations of fileID as nested JSON nodes.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID, strs *source.Interner) error {
	file := builder.Files.Get(fileID)
	if file == nil {
		return fmt.Errorf("file %d not found", fileID)
	}
	p := astPrinter{b: builder, strs: strs}
	out := ASTNodeOutput{Type: "File", Span: file.Span}
	for _, id := range file.Items {
		out.Children = append(out.Children, p.itemJSON(id))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func (p *astPrinter) itemJSON(id ast.ItemID) ASTNodeOutput {
	it := p.b.Items.Get(id)
	if it == nil {
		return ASTNodeOutput{Type: "Item"}
	}
	out := ASTNodeOutput{Type: "Item", Kind: it.Kind.String(), Span: it.Span}
	if it.Name != source.NoStringID {
		out.Text = p.name(it.Name)
	}
	var nested []ast.ItemID
	switch it.Kind {
	case ast.ItemUse:
		if u, ok := p.b.Items.Use(id); ok {
			out.Text = p.useTree(u.Tree)
		}
	case ast.ItemMod:
		if m, ok := p.b.Items.Mod(id); ok {
			nested = m.Items
		}
	case ast.ItemTrait:
		if tr, ok := p.b.Items.Trait(id); ok {
			nested = tr.Items
		}
	case ast.ItemImpl:
		if im, ok := p.b.Items.Impl(id); ok {
			nested = im.Items
			out.Text = p.ty(im.SelfType)
		}
	}
	for _, c := range nested {
		out.Children = append(out.Children, p.itemJSON(c))
	}
	return out
}
