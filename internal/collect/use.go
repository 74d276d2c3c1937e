package collect

import (
	"slices"

	"danube/internal/ast"
	"danube/internal/source"
	"danube/internal/symbols"
)

func (c *Collector) collectUse(id ast.ItemID, item *ast.Item) {
	use, ok := c.items().Use(id)
	if !ok || !use.Tree.IsValid() {
		c.malformed(item.Span, "use declaration without a tree")
		return
	}
	c.flattenUse(use.Tree, nil, item.Span)
}

// flattenUse adds one import per leaf of the tree, accumulating the prefix
// while descending into groups. A trailing `self` names the prefix itself.
func (c *Collector) flattenUse(id ast.UseTreeID, prefix []source.StringID, itemSpan source.Span) {
	tree := c.items().UseTree(id)
	if tree == nil {
		c.malformed(itemSpan, "use declaration without a tree")
		return
	}
	path := slices.Clip(prefix)
	for _, seg := range tree.Prefix {
		path = append(path, seg.Name)
	}

	switch tree.Kind {
	case ast.UseTreeSimple:
		if n := len(path); n > 0 && path[n-1] == c.selfValue {
			path = path[:n-1]
		}
		if len(path) == 0 {
			c.malformed(tree.Span, "use declaration imports nothing")
			return
		}
		imp := symbols.Import{Path: path, Kind: symbols.ImportDirect, Span: tree.Span}
		if tree.Alias != source.NoStringID {
			imp.Kind = symbols.ImportAliased
			imp.Alias = tree.Alias
		}
		c.env.AddImport(c.current(), imp)
	case ast.UseTreeGlob:
		if len(path) == 0 {
			c.malformed(tree.Span, "glob import without a path")
			return
		}
		c.env.AddImport(c.current(), symbols.Import{Path: path, Kind: symbols.ImportGlob, Span: tree.Span})
	case ast.UseTreeNested:
		for _, child := range tree.Children {
			c.flattenUse(child, path, itemSpan)
		}
	default:
		c.malformed(tree.Span, "incomplete use declaration")
	}
}
