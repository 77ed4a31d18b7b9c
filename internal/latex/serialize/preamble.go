package serialize

import "strings"

// Package categories are emitted in a fixed order so serialized documents
// stay byte-stable and diffable across saves.
var packageGroups = [][]string{
	// layout
	{"geometry", "inputenc"},
	// math
	{"amsmath", "amssymb"},
	// graphics
	{"graphicx", "tikz", "rotating"},
	// tables
	{"booktabs", "longtable", "colortbl"},
	// formatting
	{"titling", "setspace", "titlesec", "enumitem", "fancyhdr", "helvet", "xcolor"},
	// advanced layout
	{"stackengine", "pdflscape", "standalone", "typearea"},
}

// packageOptions carries the option list for packages that need one.
var packageOptions = map[string]string{
	"inputenc": "utf8",
	"xcolor":   "table",
}

// Preamble returns the fixed document-class and package header every
// serialized document starts with.
func Preamble() string {
	var b strings.Builder
	b.WriteString("\\documentclass[12pt,a4paper,twoside]{report}\n")
	for _, group := range packageGroups {
		for _, pkg := range group {
			writeUsePackage(&b, pkg)
		}
	}
	return b.String()
}

func writeUsePackage(b *strings.Builder, pkg string) {
	if opt, ok := packageOptions[pkg]; ok {
		b.WriteString("\\usepackage[" + opt + "]{" + pkg + "}\n")
		return
	}
	b.WriteString("\\usepackage{" + pkg + "}\n")
}
