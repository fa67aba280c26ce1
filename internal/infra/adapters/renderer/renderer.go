// renderer is the canonical XML serializer of feed documents. It
// implements the ports.ForRendering interface.
package renderer

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/sa6mwa/podfeeds/internal/app/humanreadable"
	"github.com/sa6mwa/podfeeds/internal/app/model"
	"github.com/sa6mwa/podfeeds/internal/app/ports"
	"github.com/sa6mwa/podfeeds/internal/infra/adapters/logger"
)

var (
	ErrNilDocument error = errors.New("received nil pointer document")
)

const defaultIndent = "  "

// forRendering implements the ports.ForRendering port (interface).
type forRendering struct {
	indent string
}

// renderer.New returns a ports.ForRendering that indents with indent
// (two spaces if empty).
func New(indent string) ports.ForRendering {
	if indent == "" {
		indent = defaultIndent
	}
	return &forRendering{indent: indent}
}

// Render marshals doc and passes the result through Canonicalize.
func (r *forRendering) Render(ctx context.Context, doc *model.Rss) ([]byte, error) {
	l := logger.FromContext(ctx)
	raw, err := Marshal(doc)
	if err != nil {
		return nil, err
	}
	out, err := Canonicalize(raw, r.indent)
	if err != nil {
		return nil, err
	}
	l.Debug("Rendered feed", "items", len(doc.Channel.Items), "size", len(out), "humanSize", humanreadable.IEC(int64(len(out))))
	return out, nil
}

// Marshal writes doc as XML with the xml declaration, no indentation.
func Marshal(doc *model.Rss) ([]byte, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	buf := &bytes.Buffer{}
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(buf)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("unable to marshal rss: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("unable to marshal rss: %w", err)
	}
	return buf.Bytes(), nil
}

// Canonicalize re-parses an XML document and writes it back indented.
// Whitespace around character data is trimmed and whitespace-only text
// is dropped, so passing the output through Canonicalize again yields
// identical bytes. Namespace prefixes are kept as written. Empty
// elements stay as start and end tag, comments are written verbatim.
func Canonicalize(in []byte, indent string) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(in))
	out := &bytes.Buffer{}
	out.WriteString(xml.Header)
	enc := xml.NewEncoder(out)
	enc.Indent("", indent)
	var elements int
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target == "xml" {
				continue
			}
			err = enc.EncodeToken(t.Copy())
		case xml.StartElement:
			elements++
			err = enc.EncodeToken(flattenStart(t))
		case xml.EndElement:
			err = enc.EncodeToken(xml.EndElement{Name: flatten(t.Name)})
		case xml.CharData:
			text := bytes.TrimSpace(t)
			if len(text) == 0 {
				continue
			}
			err = enc.EncodeToken(xml.CharData(text))
		case xml.Comment:
			err = enc.EncodeToken(t.Copy())
		case xml.Directive:
			err = enc.EncodeToken(t.Copy())
		}
		if err != nil {
			return nil, fmt.Errorf("unable to write xml: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("unable to write xml: %w", err)
	}
	if elements == 0 {
		return nil, errors.New("no root element")
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// flatten folds a raw prefix back into the local name so the encoder
// writes it as-is instead of declaring a new namespace.
func flatten(n xml.Name) xml.Name {
	if n.Space == "" {
		return xml.Name{Local: n.Local}
	}
	return xml.Name{Local: n.Space + ":" + n.Local}
}

func flattenStart(t xml.StartElement) xml.StartElement {
	start := xml.StartElement{
		Name: flatten(t.Name),
		Attr: make([]xml.Attr, 0, len(t.Attr)),
	}
	for _, a := range t.Attr {
		start.Attr = append(start.Attr, xml.Attr{Name: flatten(a.Name), Value: a.Value})
	}
	return start
}
