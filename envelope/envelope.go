// Package envelope turns raw Telesocial response bodies into a generic,
// read-only tree. The service's schema varies per operation and is not
// modeled locally; callers navigate by key and rely on the accessors'
// tolerance for absent fields.
package envelope

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind enumerates the shapes a decoded value can take.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

// Value is one node of the decoded tree. The zero Value is Null. Values
// are immutable after Parse; accessors never return references into
// mutable internals.
type Value struct {
	kind Kind
	str  string
	num  decimal.Decimal
	b    bool
	obj  map[string]Value
	arr  []Value
}

// Envelope is the parsed form of one response: the HTTP status and the
// decoded body tree.
type Envelope struct {
	status int
	root   Value
}

// Parse decodes a response body into an Envelope. The format is chosen
// from contentType, falling back to sniffing the first byte. An empty
// body parses to a Null root; a malformed body is an error.
func Parse(status int, body []byte, contentType string) (*Envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Envelope{status: status}, nil
	}

	var (
		root Value
		err  error
	)
	switch {
	case strings.Contains(contentType, "xml"):
		root, err = parseXML(trimmed)
	case strings.Contains(contentType, "json"):
		root, err = parseJSON(trimmed)
	case trimmed[0] == '<':
		root, err = parseXML(trimmed)
	default:
		root, err = parseJSON(trimmed)
	}
	if err != nil {
		return nil, err
	}
	return &Envelope{status: status, root: root}, nil
}

// Status returns the HTTP status the envelope was built from.
func (e *Envelope) Status() int {
	return e.status
}

// Root returns the decoded body tree.
func (e *Envelope) Root() Value {
	return e.root
}

// Get walks the tree along the given keys. A miss at any step yields a
// Null value, never an error.
func (e *Envelope) Get(path ...string) Value {
	v := e.root
	for _, key := range path {
		v = v.Get(key)
	}
	return v
}

// Find searches the tree depth-first for the first occurrence of key,
// at any nesting level. Missing keys yield a Null value.
func (e *Envelope) Find(key string) Value {
	v, _ := e.root.find(key)
	return v
}

// URI returns the resource URI reported by the service, or "" when the
// response carries none. Creation responses always carry one.
func (e *Envelope) URI() string {
	return e.Find("uri").Str()
}

// Message returns the service's human-readable message field, wherever
// it sits in the response wrapper.
func (e *Envelope) Message() string {
	return e.Find("message").Str()
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Get returns the child under key, or a Null value when v is not an
// object or the key is absent.
func (v Value) Get(key string) Value {
	if v.kind != KindObject {
		return Value{}
	}
	return v.obj[key]
}

// Keys returns the child keys of an object value, unordered.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the element count of an array, 0 otherwise.
func (v Value) Len() int {
	return len(v.arr)
}

// Index returns the i-th element of an array, or Null when out of range.
func (v Value) Index(i int) Value {
	if i < 0 || i >= len(v.arr) {
		return Value{}
	}
	return v.arr[i]
}

// Seq normalizes a scalar-or-list field into a sequence: arrays yield
// their elements, Null yields an empty sequence, and any scalar or
// object yields a one-element sequence. The service collapses
// single-element lists into bare values; Seq undoes that.
func (v Value) Seq() []Value {
	switch v.kind {
	case KindArray:
		out := make([]Value, len(v.arr))
		copy(out, v.arr)
		return out
	case KindNull:
		return []Value{}
	default:
		return []Value{v}
	}
}

// Str returns the value as a string. Numbers and bools are formatted;
// objects, arrays and Null yield "".
func (v Value) Str() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num.String()
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Decimal returns the value as a decimal. String values are parsed,
// which is how numeric leaves arrive in XML bodies. Unparseable or
// non-numeric values yield zero.
func (v Value) Decimal() decimal.Decimal {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		d, err := decimal.NewFromString(strings.TrimSpace(v.str))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// Int returns the integer part of a numeric value, 0 otherwise.
func (v Value) Int() int64 {
	return v.Decimal().IntPart()
}

// Bool returns the value as a bool. The strings "true" and "1" count
// as true, matching XML text content.
func (v Value) Bool() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindString:
		s := strings.TrimSpace(v.str)
		return s == "true" || s == "1"
	default:
		return false
	}
}

func (v Value) find(key string) (Value, bool) {
	switch v.kind {
	case KindObject:
		if c, ok := v.obj[key]; ok {
			return c, true
		}
		for _, c := range v.obj {
			if r, ok := c.find(key); ok {
				return r, true
			}
		}
	case KindArray:
		for _, c := range v.arr {
			if r, ok := c.find(key); ok {
				return r, true
			}
		}
	}
	return Value{}, false
}

func parseJSON(body []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, err
	}
	return fromJSON(raw)
}

func fromJSON(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Value{}, nil
	case string:
		return Value{kind: KindString, str: t}, nil
	case bool:
		return Value{kind: KindBool, b: t}, nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindNumber, num: d}, nil
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, c := range t {
			v, err := fromJSON(c)
			if err != nil {
				return Value{}, err
			}
			obj[k] = v
		}
		return Value{kind: KindObject, obj: obj}, nil
	case []any:
		arr := make([]Value, 0, len(t))
		for _, c := range t {
			v, err := fromJSON(c)
			if err != nil {
				return Value{}, err
			}
			arr = append(arr, v)
		}
		return Value{kind: KindArray, arr: arr}, nil
	default:
		return Value{}, errors.New("unsupported json value")
	}
}

// parseXML walks the token stream into the same tree shape JSON bodies
// produce: the root element becomes a single-key object, repeated child
// elements collapse into an array, and leaf elements become strings.
func parseXML(body []byte) (Value, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return Value{}, errors.New("xml body has no root element")
		}
		if err != nil {
			return Value{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			child, err := decodeElement(dec, start)
			if err != nil {
				return Value{}, err
			}
			return Value{
				kind: KindObject,
				obj:  map[string]Value{start.Name.Local: child},
			}, nil
		}
	}
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (Value, error) {
	children := make(map[string]Value)
	for _, attr := range start.Attr {
		children[attr.Name.Local] = Value{kind: KindString, str: attr.Value}
	}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return Value{}, err
			}
			key := t.Name.Local
			if prev, ok := children[key]; ok {
				if prev.kind == KindArray {
					prev.arr = append(prev.arr, child)
					children[key] = prev
				} else {
					children[key] = Value{kind: KindArray, arr: []Value{prev, child}}
				}
			} else {
				children[key] = child
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if len(children) == 0 {
				return Value{kind: KindString, str: strings.TrimSpace(text.String())}, nil
			}
			return Value{kind: KindObject, obj: children}, nil
		}
	}
}
