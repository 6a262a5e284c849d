package textforecast

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// TextKey is the mapping key element character data is stored under.
const TextKey = "text"

// DecodeXML reads an XML document into a generic mapping keyed by the root
// element name.
//
// Attributes become plain keys. Character data is stored under TextKey, or
// becomes the element's value directly when the element has neither
// attributes nor children. Repeated sibling elements collapse into a []any;
// a single child stays a mapping.
func DecodeXML(r io.Reader) (map[string]any, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, errors.New("xml document has no root element")
		}
		if err != nil {
			return nil, fmt.Errorf("decoding xml: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			value, err := decodeElement(dec, start)
			if err != nil {
				return nil, err
			}
			return map[string]any{start.Name.Local: value}, nil
		}
	}
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (any, error) {
	node := make(map[string]any, len(start.Attr))
	for _, attr := range start.Attr {
		// Namespace declarations are not data.
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}
		node[attr.Name.Local] = attr.Value
	}

	var text strings.Builder
	hasChildren := false

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding xml element %s: %w", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			hasChildren = true
			appendChild(node, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			s := strings.TrimSpace(text.String())
			if len(node) == 0 && !hasChildren {
				if s == "" {
					return nil, nil
				}
				return s, nil
			}
			if s != "" {
				node[TextKey] = s
			}
			return node, nil
		}
	}
}

func appendChild(node map[string]any, name string, child any) {
	existing, ok := node[name]
	if !ok {
		node[name] = child
		return
	}
	if list, ok := existing.([]any); ok {
		node[name] = append(list, child)
		return
	}
	node[name] = []any{existing, child}
}
