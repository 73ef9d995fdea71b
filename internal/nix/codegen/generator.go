// SPDX-FileCopyrightText: 2026 glistix
// SPDX-License-Identifier: FSL-1.1-MIT

// Package codegen lowers a type-checked module into Nix source text. A
// module becomes one top-level `let ... in { inherit ...; }` expression:
// imports and prelude helpers first, then one binding per type
// constructor, constant and function, with public names re-exported in
// the trailing attribute set.
package codegen

import (
	"strconv"
	"strings"

	"github.com/glistix/glistix/internal/nix/doc"
	"github.com/glistix/glistix/internal/nix/syntax"
	"github.com/glistix/glistix/internal/prelude"
	"github.com/glistix/glistix/pkg/ir"
)

// Generator lowers one module. It is single use: create one per module.
type Generator struct {
	module *ir.Module
	width  int

	// used collects the prelude helpers referenced by emitted code
	used map[string]bool

	// scope is the module-level scope holding every top-level binding
	scope *syntax.Scope

	// aliases maps import aliases (source spelling) to emitted names
	aliases map[string]string

	// unsupported holds functions with no Nix implementation; emitting a
	// reference to one is an error
	unsupported map[string]bool

	// currentFn names the definition being lowered, for error records
	currentFn string
}

// Option configures a Generator.
type Option func(*Generator)

// WithWidth sets the render width. Values below 1 use the default.
func WithWidth(width int) Option {
	return func(g *Generator) {
		g.width = width
	}
}

// New creates a generator for one module.
func New(module *ir.Module, options ...Option) *Generator {
	g := &Generator{
		module:      module,
		width:       doc.DefaultWidth,
		used:        make(map[string]bool),
		aliases:     make(map[string]string),
		unsupported: make(map[string]bool),
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// helper marks a prelude helper as used and returns its name. Helpers
// keep their names; colliding user bindings freshen around them.
func (g *Generator) helper(name string) string {
	g.used[name] = true
	return name
}

// exportEntry is one public name of the module.
type exportEntry struct {
	source  string
	emitted string
}

// Generate emits the module's Nix source text.
func (g *Generator) Generate() (string, error) {
	g.scope = syntax.NewScope()
	for _, helper := range prelude.Helpers() {
		g.scope.Reserve(helper)
	}

	exports := g.bindTopLevel()

	definitions, err := g.lowerDefinitions()
	if err != nil {
		return "", err
	}

	// Imports render after lowering so the prelude inherit lists exactly
	// the helpers the module body referenced.
	sections := g.importSections()
	sections = append(sections, definitions...)

	body := g.exportSet(exports)
	var module doc.Doc
	if len(sections) == 0 {
		module = body
	} else {
		blank := doc.Concat(doc.HardLine(), doc.HardLine())
		module = doc.Concat(
			text("let"),
			doc.Nest(doc.Concat(doc.HardLine(), doc.Join(blank, sections))),
			doc.HardLine(),
			text("in"),
			doc.HardLine(),
			body,
		)
	}

	return doc.Render(module, g.width) + "\n", nil
}

// bindTopLevel registers every top-level name in the module scope before
// any body is lowered, so that references and shadowing resolve no
// matter the definition order. It returns the module's public names.
func (g *Generator) bindTopLevel() []exportEntry {
	var exports []exportEntry

	for _, imp := range g.module.Imports {
		if !imp.Discarded {
			alias := imp.Alias
			if alias == "" {
				alias = lastSegment(imp.Module)
			}
			g.aliases[alias] = g.scope.Bind(alias)
		}
		for _, unqualified := range imp.Unqualified {
			g.scope.Bind(unqualified.LocalName())
		}
	}

	for _, definition := range g.module.Definitions {
		switch def := definition.(type) {
		case *ir.CustomType:
			for _, variant := range def.Variants {
				emitted := g.scope.Bind(variant.Tag)
				if def.Public && !def.Opaque {
					exports = append(exports, exportEntry{source: variant.Tag, emitted: emitted})
				}
			}

		case *ir.Constant:
			emitted := g.scope.Bind(def.Name)
			if def.Public {
				exports = append(exports, exportEntry{source: def.Name, emitted: emitted})
			}

		case *ir.Function:
			if _, ok := def.Externals["nix"]; !ok && len(def.Body) == 0 && len(def.Externals) > 0 {
				g.unsupported[def.Name] = true
				continue
			}
			emitted := g.scope.Bind(def.Name)
			if def.Public {
				exports = append(exports, exportEntry{source: def.Name, emitted: emitted})
			}
		}
	}

	return exports
}

// lowerDefinitions emits one binding per constructor, constant and
// function, in source order.
func (g *Generator) lowerDefinitions() ([]doc.Doc, error) {
	var sections []doc.Doc

	for _, definition := range g.module.Definitions {
		switch def := definition.(type) {
		case *ir.CustomType:
			for _, variant := range def.Variants {
				sections = append(sections, g.constructorBinding(variant))
			}

		case *ir.Constant:
			g.currentFn = def.Name
			value, err := g.lowerExpr(def.Value, g.scope)
			if err != nil {
				return nil, err
			}
			sections = append(sections, assign(g.scope.Resolve(def.Name), value.doc))

		case *ir.Function:
			if g.unsupported[def.Name] {
				continue
			}
			binding, err := g.functionBinding(def)
			if err != nil {
				return nil, err
			}
			sections = append(sections, binding)
		}
	}

	return sections, nil
}

// constructorBinding emits a variant's constructor: a constant tagged
// record for a fieldless variant, a curried constructor function
// otherwise. Labelled fields keep their label as the attribute key;
// positional fields use _0, _1 and so on.
func (g *Generator) constructorBinding(variant ir.Variant) doc.Doc {
	name := g.scope.Resolve(variant.Tag)
	tag := assign("__gleamTag", text(strconv.Quote(variant.Tag)))

	if len(variant.Fields) == 0 {
		return assign(name, attrset([]attrEntry{entry(tag)}))
	}

	params := make([]string, len(variant.Fields))
	entries := []attrEntry{entry(tag)}
	var inheritable []string
	for i, field := range variant.Fields {
		key := field.Label
		if key == "" {
			key = "_" + strconv.Itoa(i)
		}
		param := syntax.EscapeIdentifier(key)
		params[i] = param
		if param == key {
			inheritable = append(inheritable, key)
		} else {
			entries = append(entries, entry(assign(syntax.Key(key), text(param))))
		}
	}
	if len(inheritable) > 0 {
		inherit := text("inherit " + strings.Join(inheritable, " ") + ";")
		entries = append(entries[:1], append([]attrEntry{entry(inherit)}, entries[1:]...)...)
	}

	var header strings.Builder
	for _, param := range params {
		header.WriteString(param)
		header.WriteString(": ")
	}
	return assign(name, doc.Concat(text(header.String()), attrset(entries)))
}

// functionBinding emits one function: an external select when the
// function is implemented by a Nix file, a curried lambda otherwise.
func (g *Generator) functionBinding(def *ir.Function) (doc.Doc, error) {
	g.currentFn = def.Name
	name := g.scope.Resolve(def.Name)

	if external, ok := def.Externals["nix"]; ok {
		path := external.Path
		if !strings.HasPrefix(path, "./") && !strings.HasPrefix(path, "../") && !strings.HasPrefix(path, "/") {
			path = "./" + path
		}
		selected := "(builtins.import " + path + ")." + syntax.Key(external.Name)
		return assign(name, text(selected)), nil
	}

	child := g.scope.Child()
	header := name + " ="
	if len(def.Parameters) == 0 {
		header += " { }:"
	}
	for _, parameter := range def.Parameters {
		header += " " + child.Bind(parameter) + ":"
	}

	body, err := g.lowerBody(def.Body, child)
	if err != nil {
		return nil, err
	}
	binding := doc.Group(doc.Concat(
		text(header),
		doc.Nest(doc.Concat(doc.Line(), body.doc)),
		text(";"),
	))
	return binding, nil
}

// importSections renders the prelude inherit and the module imports.
func (g *Generator) importSections() []doc.Doc {
	var sections []doc.Doc

	if names := prelude.SortUsed(g.used); len(names) > 0 {
		prefix := "inherit (import " + g.preludePath() + ")"
		sections = append(sections, inheritLines(prefix, names, g.width))
	}

	for _, imp := range g.module.Imports {
		path := g.relativeModulePath(imp.Module)

		if !imp.Discarded {
			alias := imp.Alias
			if alias == "" {
				alias = lastSegment(imp.Module)
			}
			binding := assign(g.aliases[alias], text("builtins.import "+path))
			sections = append(sections, binding)
		}

		// Unqualified names destructure through an inherit when they keep
		// their exported spelling, and bind one by one otherwise.
		var inheritable []string
		var renamed []doc.Doc
		for _, unqualified := range imp.Unqualified {
			emitted := g.scope.Resolve(unqualified.LocalName())
			if unqualified.As == "" && emitted == unqualified.Name {
				inheritable = append(inheritable, unqualified.Name)
				continue
			}
			selected := "(builtins.import " + path + ")." + syntax.Key(unqualified.Name)
			renamed = append(renamed, assign(emitted, text(selected)))
		}
		if len(inheritable) > 0 {
			prefix := "inherit (builtins.import " + path + ")"
			sections = append(sections, inheritLines(prefix, inheritable, g.width))
		}
		sections = append(sections, renamed...)
	}

	return sections
}

// exportSet renders the trailing attribute set of public names. Names
// whose binding kept its source spelling group into inherit statements;
// escaped names export under their quoted source key.
func (g *Generator) exportSet(exports []exportEntry) doc.Doc {
	var entries []attrEntry

	var inheritable []string
	flush := func() {
		if len(inheritable) == 0 {
			return
		}
		entries = append(entries, entry(inheritLines("inherit", inheritable, g.width)))
		inheritable = nil
	}

	for _, export := range exports {
		if export.emitted == export.source {
			inheritable = append(inheritable, export.source)
			continue
		}
		flush()
		entries = append(entries, entry(assign(syntax.Key(export.source), text(export.emitted))))
	}
	flush()

	if len(entries) == 0 {
		return text("{ }")
	}
	docs := make([]doc.Doc, len(entries))
	for i, e := range entries {
		docs[i] = e.doc
	}
	return doc.Concat(
		text("{"),
		doc.Nest(doc.Concat(doc.HardLine(), doc.Join(doc.HardLine(), docs))),
		doc.HardLine(),
		text("}"),
	)
}

// inheritLines renders `<prefix> a b c;`, splitting the name list over
// several statements when a line would pass the width limit.
func inheritLines(prefix string, names []string, width int) doc.Doc {
	var statements []doc.Doc
	line := prefix
	for _, name := range names {
		if len(line)+1+len(name)+1 > width && line != prefix {
			statements = append(statements, text(line+";"))
			line = prefix
		}
		line += " " + name
	}
	statements = append(statements, text(line+";"))
	return doc.Join(doc.HardLine(), statements)
}

// relativeModulePath locates another module's output file relative to
// this module's, mirroring the module path hierarchy on disk.
func (g *Generator) relativeModulePath(target string) string {
	return g.pathPrefix() + target + ".nix"
}

// preludePath locates the prelude at the output root.
func (g *Generator) preludePath() string {
	return g.pathPrefix() + prelude.FileName
}

func (g *Generator) pathPrefix() string {
	depth := strings.Count(g.module.Name, "/")
	if depth == 0 {
		return "./"
	}
	return strings.Repeat("../", depth)
}

func lastSegment(modulePath string) string {
	if i := strings.LastIndexByte(modulePath, '/'); i >= 0 {
		return modulePath[i+1:]
	}
	return modulePath
}
