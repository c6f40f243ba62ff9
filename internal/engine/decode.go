package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrUnexpectedToken is returned when the token stream is not well-formed.
	ErrUnexpectedToken = errors.New("engine: unexpected token")
	// ErrTrailingData is returned when input continues after the first value.
	ErrTrailingData = errors.New("engine: trailing data after value")
)

// DuplicateKeyError reports an object key that appears twice. Path is a JSON
// Pointer to the enclosing object.
type DuplicateKeyError struct {
	Path string
	Key  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("engine: key '%s' duplicated at %s", e.Key, pointerOrRoot(e.Path))
}

// DepthError reports input nested deeper than DecodeOptions.MaxDepth.
type DepthError struct {
	Path  string
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("engine: max depth %d exceeded at %s", e.Limit, pointerOrRoot(e.Path))
}

// DecodeOptions controls value decoding.
type DecodeOptions struct {
	// AllowDuplicates keeps the last value of a duplicated key instead of
	// failing with *DuplicateKeyError.
	AllowDuplicates bool
	// MaxDepth limits container nesting; zero means unlimited.
	MaxDepth int
}

// Decode reads exactly one JSON value from src. Objects become map[string]any,
// arrays []any, numbers json.Number.
func Decode(src TokenSource, opt DecodeOptions) (any, error) {
	d := decoder{src: src, opt: opt}
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	v, err := d.value(tok, "", 0)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	return v, nil
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(b []byte, opt DecodeOptions) (any, error) {
	return Decode(NewBytes(b), opt)
}

// ObjectKeys returns the member names of the JSON object in b in document
// order, skipping over member values. Duplicated names fail with
// *DuplicateKeyError. A JSON null yields no keys.
func ObjectKeys(b []byte) ([]string, error) {
	src := NewBytes(b)
	tok, err := src.NextToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind == KindNull {
		return nil, nil
	}
	if tok.Kind != KindBeginObject {
		return nil, ErrUnexpectedToken
	}
	var keys []string
	seen := map[string]struct{}{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case KindEndObject:
			return keys, nil
		case KindKey:
			if _, dup := seen[tok.String]; dup {
				return nil, &DuplicateKeyError{Key: tok.String}
			}
			seen[tok.String] = struct{}{}
			keys = append(keys, tok.String)
			if err := skipValue(src); err != nil {
				return nil, err
			}
		default:
			return nil, ErrUnexpectedToken
		}
	}
}

type decoder struct {
	src TokenSource
	opt DecodeOptions
}

func (d *decoder) value(tok Token, path string, depth int) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		if err := d.enter(path, depth); err != nil {
			return nil, err
		}
		return d.object(path, depth+1)
	case KindBeginArray:
		if err := d.enter(path, depth); err != nil {
			return nil, err
		}
		return d.array(path, depth+1)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	}
	return nil, ErrUnexpectedToken
}

func (d *decoder) enter(path string, depth int) error {
	if d.opt.MaxDepth > 0 && depth >= d.opt.MaxDepth {
		return &DepthError{Path: path, Limit: d.opt.MaxDepth}
	}
	return nil
}

func (d *decoder) object(path string, depth int) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, ErrUnexpectedToken
		}
		if _, dup := m[tok.String]; dup && !d.opt.AllowDuplicates {
			return nil, &DuplicateKeyError{Path: path, Key: tok.String}
		}
		vt, err := d.next()
		if err != nil {
			return nil, err
		}
		v, err := d.value(vt, joinPointer(path, tok.String), depth)
		if err != nil {
			return nil, err
		}
		m[tok.String] = v
	}
}

func (d *decoder) array(path string, depth int) (any, error) {
	arr := []any{}
	for {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := d.value(tok, joinPointer(path, strconv.Itoa(len(arr))), depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func (d *decoder) next() (Token, error) {
	tok, err := d.src.NextToken()
	if errors.Is(err, io.EOF) {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}

func skipValue(src TokenSource) error {
	depth := 0
	for {
		tok, err := src.NextToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		switch tok.Kind {
		case KindBeginObject, KindBeginArray:
			depth++
		case KindEndObject, KindEndArray:
			depth--
		case KindKey:
			continue
		}
		if depth == 0 {
			return nil
		}
	}
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
