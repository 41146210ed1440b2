package universe

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a set of class definitions.
//
//	imports: [java.util.*]
//	classes:
//	  - name: java.util.ArrayList
//	    params: [E]
//	    extends: AbstractList<E>
//	    implements: [List<E>, RandomAccess]
type Document struct {
	// Imports apply to every header in the document.
	Imports []string    `yaml:"imports,omitempty"`
	Classes []ClassSpec `yaml:"classes"`
}

// ClassSpec describes one class or interface. Header types are type strings
// in which the class's own parameters are in scope.
type ClassSpec struct {
	Name string `yaml:"name"`
	// Kind is "class" (default) or "interface".
	Kind   string      `yaml:"kind,omitempty"`
	Params []ParamSpec `yaml:"params,omitempty"`
	// Extends is the superclass of a class, or the extended interfaces of
	// an interface.
	Extends    StringList `yaml:"extends,omitempty"`
	Implements StringList `yaml:"implements,omitempty"`
}

// ParamSpec is a formal type parameter. In YAML a bare scalar is a
// parameter without bounds.
type ParamSpec struct {
	Name   string     `yaml:"name"`
	Bounds StringList `yaml:"bounds,omitempty"`
}

func (p *ParamSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		p.Name = value.Value
		p.Bounds = nil
		return nil
	}
	type plain ParamSpec
	var out plain
	if err := value.Decode(&out); err != nil {
		return err
	}
	*p = ParamSpec(out)
	return nil
}

func (p ParamSpec) MarshalYAML() (interface{}, error) {
	if len(p.Bounds) == 0 {
		return p.Name, nil
	}
	type plain ParamSpec
	return plain(p), nil
}

// StringList accepts a scalar or a sequence of scalars.
type StringList []string

func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = StringList{value.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	return errors.Newf("line %d: expected a string or a list of strings", value.Line)
}

// ParseDocument decodes YAML class definitions.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing class definitions")
	}
	for i, c := range doc.Classes {
		if c.Name == "" {
			return nil, errors.Newf("class %d: name is required", i+1)
		}
	}
	return &doc, nil
}

// Marshal encodes doc as YAML.
func (doc *Document) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(doc)
	return data, errors.Wrap(err, "encoding class definitions")
}
