package refdata

import (
	"bytes"
	"encoding/json"
	"fmt"

	_ "embed"
)

//go:embed data/divisions_cn.json
var divisionsJSON []byte

// DivisionNode is one node of the static province→city→district tree.
// Only district leaves carry a postal code and centroid; absence of either
// is tolerated and the fields stay nil/empty. Nodes are built once at load
// and treated as immutable afterwards.
type DivisionNode struct {
	Name       string
	Pinyin     string
	PostalCode string
	Lat        *float64
	Lng        *float64
	Children   []*DivisionNode
}

// LoadTree decodes the embedded division tree. A token-stream decoder is
// used instead of map unmarshalling because document order decides
// first-registration-wins on postal collisions and the province fallback
// entries; Go maps would randomize both.
func LoadTree() ([]*DivisionNode, error) {
	return parseTree(divisionsJSON)
}

func parseTree(data []byte) ([]*DivisionNode, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("division tree: %w", err)
	}

	var provinces []*DivisionNode
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, fmt.Errorf("division tree: %w", err)
		}
		node, err := parseNode(dec, name)
		if err != nil {
			return nil, fmt.Errorf("division tree: province %q: %w", name, err)
		}
		provinces = append(provinces, node)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("division tree: %w", err)
	}
	if len(provinces) == 0 {
		return nil, fmt.Errorf("division tree: no provinces in source data")
	}
	return provinces, nil
}

// parseNode reads one division object: its "_pinyin"/"postal_code"/"center"
// attributes plus any nested child divisions, preserving child order.
func parseNode(dec *json.Decoder, name string) (*DivisionNode, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	node := &DivisionNode{Name: name}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		switch key {
		case "_pinyin":
			s, err := readString(dec)
			if err != nil {
				return nil, fmt.Errorf("_pinyin: %w", err)
			}
			node.Pinyin = s
		case "postal_code":
			s, err := readString(dec)
			if err != nil {
				return nil, fmt.Errorf("postal_code: %w", err)
			}
			node.PostalCode = s
		case "center":
			var center []float64
			if err := dec.Decode(&center); err != nil {
				return nil, fmt.Errorf("center: %w", err)
			}
			// center is [longitude, latitude]
			if len(center) >= 2 {
				lng, lat := center[0], center[1]
				node.Lng = &lng
				node.Lat = &lat
			}
		default:
			child, err := parseNode(dec, key)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", key, err)
			}
			node.Children = append(node.Children, child)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return node, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return s, nil
}

func readString(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %v", tok)
	}
	return s, nil
}
