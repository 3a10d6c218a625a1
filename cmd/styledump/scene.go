package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/restyle/entity"
	"github.com/npillmayer/restyle/selector"
	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/restyle/tree"
	"github.com/npillmayer/schuko"
	"gopkg.in/yaml.v3"
)

// Node is an element of a scene file:
//
//	element: div
//	classes: [panel]
//	style:
//	  font-size: 14px
//	children:
//	  - element: button
//	    id: ok
//	    pseudo: [hover]
type Node struct {
	Element  string            `yaml:"element"`
	ID       string            `yaml:"id,omitempty"`
	Classes  []string          `yaml:"classes,omitempty"`
	Pseudo   []string          `yaml:"pseudo,omitempty"`
	Disabled bool              `yaml:"disabled,omitempty"`
	Style    map[string]string `yaml:"style,omitempty"`
	Children []Node            `yaml:"children,omitempty"`
}

// Scene is a tree of entities together with the style engine resolving
// their styles.
type Scene struct {
	Entities *entity.Manager[entity.Entity]
	Tree     *tree.Tree
	Engine   *style.Engine
	Names    map[string]entity.Entity // entities by id
}

// ParseScene reads a scene from YAML.
func ParseScene(data []byte) (Node, error) {
	var root Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return root, fmt.Errorf("scene: %w", err)
	}
	if root.Element == "" {
		return root, fmt.Errorf("scene: root needs an element name")
	}
	return root, nil
}

// BuildScene creates entities for root and its descendants and registers
// them with a new style engine.
func BuildScene(root Node, conf schuko.Configuration) (*Scene, error) {
	s := &Scene{
		Entities: entity.Entities(),
		Names:    make(map[string]entity.Entity),
	}
	if conf.IsSet(style.ConfigIDReuseThreshold) {
		s.Entities.SetReuseThreshold(conf.GetInt(style.ConfigIDReuseThreshold))
	}
	e := s.Entities.Create()
	s.Tree = tree.New(e)
	s.Engine = style.NewEngine(s.Tree, s.Entities, conf)
	if err := s.add(e, root); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) add(e entity.Entity, n Node) error {
	eng := s.Engine
	if err := eng.AddEntity(e, n.Element); err != nil {
		return err
	}
	if n.ID != "" {
		eng.SetID(e, n.ID)
		s.Names[n.ID] = e
	}
	for _, c := range n.Classes {
		eng.AddClass(e, c)
	}
	for _, p := range n.Pseudo {
		pc, ok := selector.ParsePseudoClass(p)
		if !ok {
			return fmt.Errorf("scene: unknown pseudo-class %q", p)
		}
		eng.SetPseudoClass(e, pc, true)
	}
	if n.Disabled {
		eng.SetDisabled(e, true)
	}
	keys := make([]string, 0, len(n.Style))
	for k := range n.Style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := eng.SetProperty(e, k, n.Style[k]); err != nil {
			return fmt.Errorf("scene: %s: %w", n.Element, err)
		}
	}
	for _, child := range n.Children {
		c := s.Entities.Create()
		if err := s.Tree.Add(c, e); err != nil {
			return err
		}
		if err := s.add(c, child); err != nil {
			return err
		}
	}
	return nil
}

// --- Configuration ----------------------------------------------------

// yamlConf adapts a YAML document to schuko.Configuration. Nested maps are
// flattened to dotted keys:
//
//	style:
//	  sibling-cache: false
//
// is found under key "style.sibling-cache".
type yamlConf map[string]interface{}

// loadConfig reads a YAML configuration file. An empty path results in an
// empty configuration.
func loadConfig(path string) (yamlConf, error) {
	conf := yamlConf{}
	if path == "" {
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (yamlConf, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	conf := yamlConf{}
	conf.flatten("", doc)
	return conf, nil
}

func (c yamlConf) flatten(prefix string, m map[string]interface{}) {
	for k, v := range m {
		if prefix != "" {
			k = prefix + "." + k
		}
		if sub, ok := v.(map[string]interface{}); ok {
			c.flatten(k, sub)
			continue
		}
		c[k] = v
	}
}

func (c yamlConf) InitDefaults() {}

func (c yamlConf) IsSet(key string) bool {
	_, ok := c[key]
	return ok
}

func (c yamlConf) GetString(key string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func (c yamlConf) GetInt(key string) int {
	switch v := c[key].(type) {
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

func (c yamlConf) GetBool(key string) bool {
	switch v := c[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}

func (c yamlConf) IsInteractive() bool { return false }

var _ schuko.Configuration = yamlConf{}
