package collect

import (
	"errors"
	"fmt"
	"strconv"

	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/source"
	"danube/internal/symbols"
)

// Options configures a Collector.
type Options struct {
	Reporter diag.Reporter
}

// Pending is an external `mod name;` waiting for its file. Scope is the
// placeholder module scope the file is collected into.
type Pending struct {
	From  source.FileID
	Name  source.StringID
	Scope symbols.ScopeID
	Span  source.Span
}

// Collector walks module ASTs and registers their scopes, definitions and
// imports in one Env. It is single-writer: all files of a program are
// collected by one goroutine.
type Collector struct {
	env      *Env
	strs     *source.Interner
	reporter diag.Reporter

	// current file
	arenas *ast.Builder
	file   source.FileID

	stack   []symbols.ScopeID
	uses    []PathUse
	pending []Pending

	selfValue source.StringID // self
	selfType  source.StringID // Self
}

func NewCollector(env *Env, strs *source.Interner, opts Options) *Collector {
	return &Collector{
		env:       env,
		strs:      strs,
		reporter:  opts.Reporter,
		stack:     make([]symbols.ScopeID, 0, 8),
		selfValue: strs.Intern("self"),
		selfType:  strs.Intern("Self"),
	}
}

// CollectFile registers every item of file into root.
func (c *Collector) CollectFile(arenas *ast.Builder, file ast.FileID, root symbols.ScopeID) {
	f := arenas.Files.Get(file)
	if f == nil {
		return
	}
	c.arenas = arenas
	c.file = f.Source
	c.enter(root)
	for _, id := range f.Items {
		c.collectItem(id)
	}
	c.leave(root)
	c.arenas = nil
}

// Uses returns every path recorded in type position so far.
func (c *Collector) Uses() []PathUse { return c.uses }

// TakePending returns and clears the queued external modules.
func (c *Collector) TakePending() []Pending {
	out := c.pending
	c.pending = nil
	return out
}

func (c *Collector) current() symbols.ScopeID {
	if len(c.stack) == 0 {
		return symbols.NoScopeID
	}
	return c.stack[len(c.stack)-1]
}

func (c *Collector) enter(scope symbols.ScopeID) {
	c.stack = append(c.stack, scope)
}

func (c *Collector) leave(expected symbols.ScopeID) {
	top := c.current()
	if top != expected {
		panic(fmt.Sprintf("collect: leaving scope %d, top is %d", expected, top))
	}
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Collector) items() *ast.Items { return c.arenas.Items }

func (c *Collector) collectItem(id ast.ItemID) {
	item := c.items().Get(id)
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemUse:
		c.collectUse(id, item)
	case ast.ItemMod:
		c.collectMod(id, item)
	case ast.ItemStruct:
		c.collectStruct(id, item)
	case ast.ItemEnum:
		c.collectEnum(id, item)
	case ast.ItemTrait:
		c.collectTrait(id, item)
	case ast.ItemImpl:
		c.collectImpl(id, item)
	case ast.ItemFn:
		c.collectFn(id, item)
	case ast.ItemConst, ast.ItemStatic:
		c.collectConst(id, item)
	case ast.ItemTypeAlias:
		c.collectTypeAlias(id, item)
	default:
		c.malformed(item.Span, fmt.Sprintf("unknown item kind %d", item.Kind))
	}
}

// itemDef builds the payload for a named item.
func (c *Collector) itemDef(kind DefKind, item *ast.Item, id ast.ItemID) Definition {
	return Definition{
		Kind: kind,
		Name: item.Name,
		File: c.file,
		Item: id,
		Span: nameSpan(item.NameSpan, item.Span),
	}
}

func nameSpan(name, whole source.Span) source.Span {
	if name.Empty() {
		return whole
	}
	return name
}

// named reports item as malformed when the parser could not find its name.
func (c *Collector) named(item *ast.Item) bool {
	if item.Name != source.NoStringID {
		return true
	}
	c.malformed(item.Span, item.Kind.String()+" declaration without a name")
	return false
}

// define registers def under name in the current scope. When kind is not
// RibInvalid a child scope of that kind is created and linked to the node.
// On a duplicate nothing is created.
func (c *Collector) define(ns symbols.Namespace, name source.StringID, def Definition, kind symbols.RibKind, span source.Span) (symbols.ScopeID, bool) {
	cur := c.current()
	if c.duplicate(cur, ns, name, def.Span) {
		return symbols.NoScopeID, false
	}
	child := symbols.NoScopeID
	if kind != symbols.RibInvalid {
		child = c.env.AddScope(kind, cur, span)
	}
	if _, err := c.env.AddDefinition(cur, ns, name, def, child); err != nil {
		c.reportAddError(err, ns, name, def.Span)
		return symbols.NoScopeID, false
	}
	return child, true
}

// duplicate reports and returns true if name is already bound in scope.
func (c *Collector) duplicate(scope symbols.ScopeID, ns symbols.Namespace, name source.StringID, at source.Span) bool {
	existing, ok := c.env.Lookup(scope, ns, name)
	if !ok {
		return false
	}
	c.reportDuplicate(existing, ns, name, at)
	return true
}

func (c *Collector) reportDuplicate(existing symbols.NodeID, ns symbols.Namespace, name source.StringID, at source.Span) {
	b := diag.ReportError(c.reporter, diag.ResDuplicateSymbol, at,
		fmt.Sprintf("`%s` is defined multiple times in the %s namespace", c.strs.MustLookup(name), ns))
	if prev := c.env.Node(existing); prev != nil {
		b = b.WithNote(prev.Def.Span, "previous definition here")
	}
	b.Emit()
}

func (c *Collector) reportAddError(err error, ns symbols.Namespace, name source.StringID, at source.Span) {
	var dup *symbols.DuplicatedSymbolError
	if errors.As(err, &dup) {
		c.reportDuplicate(dup.Existing, ns, name, at)
		return
	}
	c.malformed(at, err.Error())
}

func (c *Collector) malformed(at source.Span, msg string) {
	diag.ReportError(c.reporter, diag.ResMalformedDecl, at, msg).Emit()
}

func (c *Collector) collectMod(id ast.ItemID, item *ast.Item) {
	mod, ok := c.items().Mod(id)
	if !ok || !c.named(item) {
		return
	}
	scope, ok := c.define(symbols.TypeNS, item.Name, c.itemDef(DefModule, item, id), symbols.RibModule, item.Span)
	if !ok {
		return
	}
	if !mod.Inline {
		c.pending = append(c.pending, Pending{
			From:  c.file,
			Name:  item.Name,
			Scope: scope,
			Span:  nameSpan(item.NameSpan, item.Span),
		})
		return
	}
	c.enter(scope)
	for _, child := range mod.Items {
		c.collectItem(child)
	}
	c.leave(scope)
}

func (c *Collector) collectStruct(id ast.ItemID, item *ast.Item) {
	st, ok := c.items().Struct(id)
	if !ok || !c.named(item) {
		return
	}
	scope, ok := c.define(symbols.TypeNS, item.Name, c.itemDef(DefStruct, item, id), symbols.RibStruct, item.Span)
	if !ok {
		return
	}
	c.enter(scope)
	c.collectGenerics(st.Generics)
	c.collectFields(st.Shape, st.Fields)
	c.leave(scope)
}

func (c *Collector) collectEnum(id ast.ItemID, item *ast.Item) {
	en, ok := c.items().Enum(id)
	if !ok || !c.named(item) {
		return
	}
	scope, ok := c.define(symbols.TypeNS, item.Name, c.itemDef(DefEnum, item, id), symbols.RibEnum, item.Span)
	if !ok {
		return
	}
	c.enter(scope)
	c.collectGenerics(en.Generics)
	for _, vid := range en.Variants {
		c.collectVariant(id, c.items().Variant(vid))
	}
	c.leave(scope)
}

func (c *Collector) collectVariant(enum ast.ItemID, v *ast.Variant) {
	if v == nil {
		return
	}
	if v.Name == source.NoStringID {
		c.malformed(v.Span, "enum variant without a name")
		return
	}
	def := Definition{Kind: DefVariant, Name: v.Name, File: c.file, Item: enum, Span: nameSpan(v.NameSpan, v.Span)}
	kind := symbols.RibConstructor
	if v.Shape == ast.FieldsUnit {
		kind = symbols.RibInvalid
	}
	scope, ok := c.define(symbols.ValueNS, v.Name, def, kind, v.Span)
	if !ok || !scope.IsValid() {
		return
	}
	c.enter(scope)
	c.collectFields(v.Shape, v.Fields)
	c.leave(scope)
}

// collectFields registers fields as values of the current scope. Tuple
// fields are named by position.
func (c *Collector) collectFields(shape ast.FieldsShape, fields []ast.FieldID) {
	for i, fid := range fields {
		f := c.items().Field(fid)
		if f == nil {
			continue
		}
		c.recordType(f.Type)
		name := f.Name
		if shape == ast.FieldsTuple {
			name = c.strs.Intern(strconv.Itoa(i))
		}
		if name == source.NoStringID {
			c.malformed(f.Span, "field without a name")
			continue
		}
		c.define(symbols.ValueNS, name, Definition{
			Kind: DefField,
			Name: name,
			File: c.file,
			Span: nameSpan(f.NameSpan, f.Span),
		}, symbols.RibInvalid, f.Span)
	}
}

func (c *Collector) collectTrait(id ast.ItemID, item *ast.Item) {
	tr, ok := c.items().Trait(id)
	if !ok || !c.named(item) {
		return
	}
	outer, ok := c.define(symbols.TypeNS, item.Name, c.itemDef(DefTrait, item, id), symbols.RibTrait, item.Span)
	if !ok {
		return
	}
	c.enter(outer)
	c.collectGenerics(tr.Generics)
	for _, st := range tr.Supertraits {
		c.recordType(st)
	}
	c.collectAssociated(id, item, tr.Items, tr.BodySpan)
	c.leave(outer)
}

// collectImpl gives the impl an unnamed outer scope under the current one.
func (c *Collector) collectImpl(id ast.ItemID, item *ast.Item) {
	im, ok := c.items().Impl(id)
	if !ok {
		return
	}
	outer := c.env.AddScope(symbols.RibImplement, c.current(), item.Span)
	c.enter(outer)
	c.collectGenerics(im.Generics)
	c.recordType(im.Trait)
	c.recordType(im.SelfType)
	c.collectAssociated(id, item, im.Items, im.BodySpan)
	c.leave(outer)
}

// collectAssociated registers Self in the current (outer) scope, links a
// block scope for the associated items under the empty name and collects
// them into it.
func (c *Collector) collectAssociated(id ast.ItemID, item *ast.Item, members []ast.ItemID, body source.Span) {
	outer := c.current()
	c.define(symbols.TypeNS, c.selfType, Definition{
		Kind: DefSelfType,
		Name: c.selfType,
		File: c.file,
		Item: id,
		Span: nameSpan(item.NameSpan, item.Span),
	}, symbols.RibInvalid, item.Span)

	block := c.env.AddScope(symbols.RibBlock, outer, body)
	if _, err := c.env.AddDefinition(outer, symbols.ValueNS, source.NoStringID, Definition{
		Kind: DefItems,
		File: c.file,
		Item: id,
		Span: body,
	}, block); err != nil {
		c.reportAddError(err, symbols.ValueNS, source.NoStringID, body)
		return
	}
	c.enter(block)
	for _, m := range members {
		c.collectItem(m)
	}
	c.leave(block)
}

// collectFn binds the function in both namespaces to one scope. A collision
// in either namespace skips the whole function.
func (c *Collector) collectFn(id ast.ItemID, item *ast.Item) {
	fn, ok := c.items().Fn(id)
	if !ok || !c.named(item) {
		return
	}
	cur := c.current()
	def := c.itemDef(DefFn, item, id)
	if c.duplicate(cur, symbols.TypeNS, item.Name, def.Span) || c.duplicate(cur, symbols.ValueNS, item.Name, def.Span) {
		return
	}
	scope := c.env.AddScope(symbols.RibFunction, cur, item.Span)
	for _, ns := range []symbols.Namespace{symbols.TypeNS, symbols.ValueNS} {
		if _, err := c.env.AddDefinition(cur, ns, item.Name, def, scope); err != nil {
			c.reportAddError(err, ns, item.Name, def.Span)
		}
	}

	c.enter(scope)
	c.collectGenerics(fn.Generics)
	for _, pid := range fn.Params {
		c.collectParam(c.items().FnParam(pid))
	}
	c.recordType(fn.ReturnType)
	c.leave(scope)
}

// collectParam registers identifier parameters; `_` and patterns bind
// nothing here.
func (c *Collector) collectParam(p *ast.FnParam) {
	if p == nil {
		return
	}
	c.recordType(p.Type)
	name := p.Name
	if p.IsSelf {
		name = c.selfValue
	}
	if name == source.NoStringID {
		return
	}
	c.define(symbols.ValueNS, name, Definition{
		Kind: DefParam,
		Name: name,
		File: c.file,
		Span: nameSpan(p.NameSpan, p.Span),
	}, symbols.RibInvalid, p.Span)
}

func (c *Collector) collectConst(id ast.ItemID, item *ast.Item) {
	cn, ok := c.items().Const(id)
	if !ok || !c.named(item) {
		return
	}
	kind := DefConst
	if item.Kind == ast.ItemStatic {
		kind = DefStatic
	}
	if _, ok := c.define(symbols.ValueNS, item.Name, c.itemDef(kind, item, id), symbols.RibInvalid, item.Span); !ok {
		return
	}
	c.recordType(cn.Type)
}

// collectTypeAlias registers the alias and then its generic parameters in
// the enclosing scope; aliases get no scope of their own.
func (c *Collector) collectTypeAlias(id ast.ItemID, item *ast.Item) {
	al, ok := c.items().TypeAlias(id)
	if !ok || !c.named(item) {
		return
	}
	if _, ok := c.define(symbols.TypeNS, item.Name, c.itemDef(DefTypeAlias, item, id), symbols.RibInvalid, item.Span); !ok {
		return
	}
	c.collectGenerics(al.Generics)
	for _, b := range al.Bounds {
		c.recordType(b)
	}
	c.recordType(al.Type)
}
