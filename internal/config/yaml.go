package config

import "gopkg.in/yaml.v3"

// MarshalYAML renders the mapping as a YAML mapping node so that keys keep
// their insertion order.
func (v *Values) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range v.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.vals[k]},
		)
	}
	return node, nil
}
