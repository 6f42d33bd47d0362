package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/tidwall/jsonc"
)

func parseJSON(data []byte) (*Document, error) {
	doc := New(JSON)

	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return doc, nil
	}

	if err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}

		key, _ := tok.(string)

		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}

		value, err := jsonScalar(tok)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}

		doc.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding json: trailing data after form object")
	}

	return doc, nil
}

func jsonScalar(tok json.Token) (string, error) {
	switch v := tok.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", nil
	default:
		return "", ErrNested
	}
}

func (d *Document) marshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("{\n")

	for i, k := range d.keys {
		key, err := quoteJSON(k)
		if err != nil {
			return nil, err
		}

		value, err := quoteJSON(d.values[k])
		if err != nil {
			return nil, err
		}

		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)

		if i < len(d.keys)-1 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
	}

	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

func quoteJSON(s string) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding json string: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
