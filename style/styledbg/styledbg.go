/*
Package styledbg implements helpers to debug the styles of an entity tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package styledbg

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/restyle/entity"
	"github.com/npillmayer/restyle/style"
	tp "github.com/xlab/treeprint"
)

// DefaultProperties are shown if clients do not name properties to show.
var DefaultProperties = []string{
	"display", "width", "height", "font-size", "color", "background-color", "opacity",
}

// Label returns a selector-like label for e, e.g. "li#x.a.b:hover".
func Label(eng *style.Engine, e entity.Entity) string {
	fp := eng.Fingerprint(e)
	var b strings.Builder
	b.WriteString(fp.Element)
	if fp.ID != "" {
		b.WriteString("#" + fp.ID)
	}
	for _, c := range strings.Fields(fp.Classes) {
		b.WriteString("." + c)
	}
	for _, n := range fp.Pseudo.Names() {
		if n != "enabled" {
			b.WriteString(":" + n)
		}
	}
	if b.Len() == 0 {
		return e.String()
	}
	return b.String()
}

// Print renders the tree with the resolved values of props for every
// entity. Properties without a value are omitted.
//
//	div
//	├── [font-size] 20
//	└── li.a
//	    └── [width] 10px
func Print(eng *style.Engine, tree style.Tree, props []string) string {
	if props == nil {
		props = DefaultProperties
	}
	p := tp.New()
	if root, ok := tree.Root(); ok {
		printNode(p, eng, tree, root, props)
	}
	return p.String()
}

func printNode(p tp.Tree, eng *style.Engine, tree style.Tree, e entity.Entity, props []string) {
	branch := p.AddBranch(Label(eng, e))
	for _, name := range props {
		if v, ok := eng.Describe(e, name); ok {
			branch.AddMetaNode(name, v)
		}
	}
	for c, ok := tree.FirstChildOf(e); ok; c, ok = tree.NextSiblingOf(c) {
		printNode(branch, eng, tree, c, props)
	}
}

// --- GraphViz ---------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname  string
	NodeTmpl  *template.Template
	EdgeTmpl  *template.Template
	StyleTmpl *template.Template
}

type node struct {
	Name   string
	Label  string
	Styles [][2]string
}

type edge struct {
	From, To string
}

// ToGraphViz outputs a diagram of the tree together with the resolved
// values of props. The diagram is in GraphViz (DOT) format. If props is
// nil, DefaultProperties are drawn.
func ToGraphViz(eng *style.Engine, tree style.Tree, w io.Writer, props []string) error {
	if props == nil {
		props = DefaultProperties
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("node").Parse(nodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	gparams.StyleTmpl = template.Must(template.New("styles").Parse(stylesTmpl))
	head := template.Must(template.New("graph").Parse(graphHeadTmpl))
	if err := head.Execute(w, gparams); err != nil {
		return err
	}
	if root, ok := tree.Root(); ok {
		if err := nodes(eng, tree, root, w, props, &gparams); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte("}\n"))
	return err
}

func nodes(eng *style.Engine, tree style.Tree, e entity.Entity, w io.Writer, props []string,
	gparams *graphParamsType) error {
	//
	n := node{Name: dotName(e), Label: Label(eng, e)}
	for _, name := range props {
		if v, ok := eng.Describe(e, name); ok {
			n.Styles = append(n.Styles, [2]string{name, v})
		}
	}
	if err := gparams.NodeTmpl.Execute(w, n); err != nil {
		return err
	}
	if len(n.Styles) > 0 {
		if err := gparams.StyleTmpl.Execute(w, n); err != nil {
			return err
		}
	}
	for c, ok := tree.FirstChildOf(e); ok; c, ok = tree.NextSiblingOf(c) {
		if err := nodes(eng, tree, c, w, props, gparams); err != nil {
			return err
		}
		if err := gparams.EdgeTmpl.Execute(w, edge{n.Name, dotName(c)}); err != nil {
			return err
		}
	}
	return nil
}

func dotName(e entity.Entity) string {
	return fmt.Sprintf("node%05d_%d", e.Index(), e.Generation())
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  node [fontname = "{{ .Fontname }}" fontsize=14] ;
  edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const nodeTmpl = `{{ .Name }}	[ label={{ printf "%q" .Label }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
`

const stylesTmpl = `{{ .Name }}_styles [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      {{ range .Styles }}<tr><td align="right">{{ index . 0 }}:</td><td>{{ index . 1 }}</td></tr>
      {{ end }}
    </table>> ] ;
{{ .Name }} -> {{ .Name }}_styles [dir=none weight=1 style="dashed"] ;
`

const edgeTmpl = `{{ .From }} -> {{ .To }} [weight=1] ;
`
