package output

import (
	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/omushpapa/configstore/pkg/logger"
)

func (f *formatter) formatYAML(snapshot *orderedmap.OrderedMap) (string, error) {
	f.log.Debug("Formatting YAML output")

	// Plain maps would lose section and option order, so the document
	// is built as an explicit node tree.
	root, err := yamlMapping(snapshot)
	if err != nil {
		return "", err
	}

	document := root
	if f.config.WithStats {
		f.log.Debug("Adding statistics to YAML output")

		statsNode := &yaml.Node{}
		if err := statsNode.Encode(f.calculateStats(snapshot)); err != nil {
			return "", err
		}
		document = &yaml.Node{Kind: yaml.MappingNode}
		document.Content = append(document.Content,
			yamlScalar("sections"), root,
			yamlScalar("statistics"), statsNode,
		)
	}

	bytes, err := yaml.Marshal(document)
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal YAML")
		return "", err
	}

	return string(bytes), nil
}

// yamlMapping converts an ordered map into a YAML mapping node,
// recursing into nested section maps
func yamlMapping(m *orderedmap.OrderedMap) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range m.Keys() {
		value, _ := m.Get(key)

		var valueNode *yaml.Node
		switch nested := value.(type) {
		case *orderedmap.OrderedMap:
			n, err := yamlMapping(nested)
			if err != nil {
				return nil, err
			}
			valueNode = n
		case orderedmap.OrderedMap:
			n, err := yamlMapping(&nested)
			if err != nil {
				return nil, err
			}
			valueNode = n
		default:
			valueNode = &yaml.Node{}
			if err := valueNode.Encode(value); err != nil {
				return nil, err
			}
		}

		node.Content = append(node.Content, yamlScalar(key), valueNode)
	}
	return node, nil
}

func yamlScalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}
