package parser

import (
	"slices"

	"danube/internal/ast"
	"danube/internal/diag"
	"danube/internal/lexer"
	"danube/internal/source"
	"danube/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	strs     *source.Interner
	file     ast.FileID
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile parses one file into arenas. Only declarations are modelled:
// function bodies and initializer expressions are skipped as balanced
// token runs and recorded by span.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, strs *source.Interner, opts Options) Result {
	start := source.Span{File: lx.File().ID}
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		strs:     strs,
		file:     arenas.NewFile(lx.File().ID, start),
		opts:     opts,
		lastSpan: start,
	}
	p.parseItems()
	return Result{
		File:   p.file,
		Errors: p.opts.CurrentErrors,
	}
}

// ParseSource lexes and parses file with one shared reporter.
func ParseSource(file *source.File, arenas *ast.Builder, strs *source.Interner, opts Options) Result {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	return ParseFile(lx, arenas, strs, opts)
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems - основной цикл верхнего уровня: пока не EOF - parseItem.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		if p.at(token.RBrace) {
			p.err(diag.SynUnexpectedToken, "unexpected '}'")
			p.advance()
			continue
		}
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncItems()
			continue
		}
		p.arenas.PushItem(p.file, itemID)
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// parseItemBlock parses `{ item* }` and returns the items and the span of
// the braces. The caller has not consumed '{'.
func (p *Parser) parseItemBlock() ([]ast.ItemID, source.Span, bool) {
	open, ok := p.expect(token.LBrace, diag.SynExpectBody, "expected '{'")
	if !ok {
		return nil, open.Span, false
	}
	var items []ast.ItemID
	for !p.atOr(token.RBrace, token.EOF) {
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncItems()
			continue
		}
		items = append(items, itemID)
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close block")
	return items, open.Span.Cover(closeTok.Span), ok
}
