package condition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// UnmarshalJSON decodes arrays as lists and objects as hash form, keeping
// object key order. null decodes to the absent marker.
func (s *Spec) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	spec, err := decodeSpec(dec)
	if err != nil {
		return fmt.Errorf("decode condition: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("decode condition: trailing data")
	}
	*s = spec
	return nil
}

// MarshalJSON encodes literals as strings, lists as arrays and hash form as
// objects in entry order.
func (s Spec) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s Spec) encode(buf *bytes.Buffer) error {
	switch s.kind {
	case KindList:
		buf.WriteByte('[')
		for i, item := range s.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMap:
		buf.WriteByte('{')
		for i, p := range s.pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(p.Field)
			if err != nil {
				return fmt.Errorf("encode field %q: %w", p.Field, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := p.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		if s.absent {
			buf.WriteString("null")
			return nil
		}
		text, err := json.Marshal(s.text)
		if err != nil {
			return fmt.Errorf("encode literal: %w", err)
		}
		buf.Write(text)
	}
	return nil
}

func decodeSpec(dec *json.Decoder) (Spec, error) {
	tok, err := dec.Token()
	if err != nil {
		return Spec{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			return decodeList(dec)
		case '{':
			return decodeMap(dec)
		default:
			return Spec{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case nil:
		return Null(), nil
	case json.Number:
		return Spec{text: t.String()}, nil
	default:
		return Lit(t), nil
	}
}

func decodeList(dec *json.Decoder) (Spec, error) {
	var items []Spec
	for dec.More() {
		item, err := decodeSpec(dec)
		if err != nil {
			return Spec{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil { // ]
		return Spec{}, err
	}
	return List(items...), nil
}

func decodeMap(dec *json.Decoder) (Spec, error) {
	var pairs []Pair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Spec{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Spec{}, fmt.Errorf("object key must be a string, got %v", tok)
		}
		value, err := decodeSpec(dec)
		if err != nil {
			return Spec{}, err
		}
		pairs = append(pairs, Field(key, value))
	}
	if _, err := dec.Token(); err != nil { // }
		return Spec{}, err
	}
	return Hash(pairs...), nil
}
