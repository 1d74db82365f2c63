// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package source

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/cicd-ai-toolkit/ban-comments/pkg/errors"
)

// DefaultMaxFileSize is the largest source the extractor accepts (10MB).
const DefaultMaxFileSize = 10 * 1024 * 1024

var (
	// ErrUnsupportedLanguage is returned for file extensions without a grammar.
	ErrUnsupportedLanguage = stderrors.New("unsupported file type")
	// ErrFileTooLarge is returned when content exceeds the size limit.
	ErrFileTooLarge = stderrors.New("file exceeds maximum size limit")
	// ErrInvalidContent is returned for content that is not valid UTF-8.
	ErrInvalidContent = stderrors.New("content is not valid UTF-8")
)

// Language identifies the grammar used for a file.
type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
)

var extensionLanguages = map[string]Language{
	".js":  JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".jsx": JavaScript,
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".tsx": TSX,
}

// Extensions returns every file extension the extractor understands, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(extensionLanguages))
	for ext := range extensionLanguages {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// LanguageFor returns the grammar for path based on its extension.
func LanguageFor(path string) (Language, bool) {
	lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

func (l Language) grammar() *sitter.Language {
	switch l {
	case TypeScript:
		return typescript.GetLanguage()
	case TSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithMaxFileSize sets the maximum accepted content size in bytes.
func WithMaxFileSize(bytes int) ExtractorOption {
	return func(e *Extractor) {
		if bytes > 0 {
			e.maxFileSize = bytes
		}
	}
}

// Extractor tokenizes comments with tree-sitter. It is safe for concurrent
// use; every call creates its own parser.
type Extractor struct {
	maxFileSize int
}

// NewExtractor creates an Extractor.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SyntaxError locates the first syntax error tree-sitter recovered from.
type SyntaxError struct {
	Position Position
	// Missing names the token the parser had to insert, if any.
	Missing string
}

func (e *SyntaxError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("missing %q at %d:%d", e.Missing, e.Position.Line, e.Position.Column)
	}
	return fmt.Sprintf("unexpected token at %d:%d", e.Position.Line, e.Position.Column)
}

// File is a parsed source.
type File struct {
	Comments []Comment
	// Syntax is set when the source does not parse cleanly. Comments may
	// then be incomplete, e.g. an unterminated block comment yields none.
	Syntax *SyntaxError
}

// Extract returns the comments of content in document order. path selects
// the grammar. Syntax errors in the source are tolerated.
func (e *Extractor) Extract(ctx context.Context, path string, content []byte) ([]Comment, error) {
	f, err := e.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}
	return f.Comments, nil
}

// Parse is Extract that also reports the first syntax error.
func (e *Extractor) Parse(ctx context.Context, path string, content []byte) (*File, error) {
	lang, ok := LanguageFor(path)
	if !ok {
		return nil, errors.ParseError(path, ErrUnsupportedLanguage).WithContext("path", path)
	}
	return e.parse(ctx, lang, content)
}

func (e *Extractor) parse(ctx context.Context, lang Language, content []byte) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(content) > e.maxFileSize {
		return nil, errors.ParseError(fmt.Sprintf("size %d exceeds limit %d", len(content), e.maxFileSize), ErrFileTooLarge)
	}
	if !utf8.Valid(content) {
		return nil, errors.ParseError("invalid source", ErrInvalidContent)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang.grammar())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, errors.ParseError("tree-sitter parse failed", err)
	}
	defer tree.Close()

	f := &File{}
	root := tree.RootNode()
	if root == nil {
		return f, nil
	}

	collect(root, content, &f.Comments)
	sort.SliceStable(f.Comments, func(i, j int) bool {
		return f.Comments[i].Span.Start < f.Comments[j].Span.Start
	})

	if root.HasError() {
		f.Syntax = syntaxError(firstError(root))
	}
	return f, ctx.Err()
}

// firstError returns the leftmost ERROR or MISSING node below n.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if found := firstError(child); found != nil {
			return found
		}
	}
	return n
}

func syntaxError(n *sitter.Node) *SyntaxError {
	start := n.StartPoint()
	se := &SyntaxError{Position: Position{Line: int(start.Row) + 1, Column: int(start.Column) + 1}}
	if n.IsMissing() {
		se.Missing = n.Type()
	}
	return se
}

// collect walks every child, named or not, since comments are extras and
// may hang off any node.
func collect(n *sitter.Node, content []byte, out *[]Comment) {
	switch n.Type() {
	case "comment":
		*out = append(*out, newNodeComment(n, content, commentKind(nodeText(n, content))))
		return
	case "hash_bang_line":
		*out = append(*out, newNodeComment(n, content, Shebang))
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil {
			collect(child, content, out)
		}
	}
}

func commentKind(raw string) Kind {
	if strings.HasPrefix(raw, "//") {
		return Line
	}
	return Block
}

func newNodeComment(n *sitter.Node, content []byte, kind Kind) Comment {
	start, end := n.StartPoint(), n.EndPoint()
	span := Span{
		Start:    int(n.StartByte()),
		End:      int(n.EndByte()),
		StartPos: Position{Line: int(start.Row) + 1, Column: int(start.Column) + 1},
		EndPos:   Position{Line: int(end.Row) + 1, Column: int(end.Column) + 1},
	}
	return NewComment(kind, nodeText(n, content), span)
}

func nodeText(n *sitter.Node, content []byte) string {
	return string(content[n.StartByte():n.EndByte()])
}
