package valuejson

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/wippyai/dynvalue/bits"
	"github.com/wippyai/dynvalue/errors"
	"github.com/wippyai/dynvalue/value"
)

// Escape keys recognized inside JSON objects.
const (
	variantKey = "$variant"
	fieldsKey  = "fields"
	bitsKey    = "$bits"
)

// Parse builds a value tree from JSON or JSONC text. Objects become named
// composites with field order preserved, arrays unnamed composites, strings
// str primitives, booleans bool primitives and null the unit (empty unnamed)
// composite. Integers become u64 or, when negative, i64; non-integer numbers
// are rejected because the primitive set has no floats.
//
// Two escape forms build the shapes plain JSON cannot express:
//
//	{"$variant": "Name", "fields": <object or array>}
//	{"$bits": "0110"}
func Parse(data []byte) (value.Value[struct{}], error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return value.Value[struct{}]{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return value.Value[struct{}]{}, errors.InvalidData(errors.PhaseParse, nil,
			"trailing data after value")
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (value.Value[struct{}], error) {
	tok, err := dec.Token()
	if err != nil {
		return value.Value[struct{}]{}, invalid(err)
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (value.Value[struct{}], error) {
	var zero value.Value[struct{}]
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return zero, errors.InvalidData(errors.PhaseParse, nil, "unexpected "+t.String())
		}
	case string:
		return value.Str(t), nil
	case bool:
		return value.Bool(t), nil
	case json.Number:
		return parseNumber(t)
	case nil:
		return value.UnnamedComposite(), nil
	default:
		return zero, errors.InvalidData(errors.PhaseParse, nil, "unexpected token")
	}
}

func parseNumber(n json.Number) (value.Value[struct{}], error) {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		return value.Value[struct{}]{}, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Detail("non-integer number %s has no primitive representation", s).
			Build()
	}
	if strings.HasPrefix(s, "-") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return value.Value[struct{}]{}, invalid(err)
		}
		return value.I64(i), nil
	}
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return value.Value[struct{}]{}, invalid(err)
	}
	return value.U64(u), nil
}

func parseArray(dec *json.Decoder) (value.Value[struct{}], error) {
	var vals []value.Value[struct{}]
	for {
		tok, err := dec.Token()
		if err != nil {
			return value.Value[struct{}]{}, invalid(err)
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return value.UnnamedComposite(vals...), nil
		}
		v, err := parseToken(dec, tok)
		if err != nil {
			return value.Value[struct{}]{}, err
		}
		vals = append(vals, v)
	}
}

func parseObject(dec *json.Decoder) (value.Value[struct{}], error) {
	var zero value.Value[struct{}]
	var fields value.Named[struct{}]
	seen := map[string]bool{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return zero, invalid(err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			break
		}
		key, ok := tok.(string)
		if !ok {
			return zero, errors.InvalidData(errors.PhaseParse, nil, "object key is not a string")
		}
		if seen[key] {
			return zero, errors.New(errors.PhaseParse, errors.KindInvalidData).
				Detail("duplicate field %q", key).
				Build()
		}
		seen[key] = true
		v, err := parseValue(dec)
		if err != nil {
			return zero, errors.Prefix(errors.PhaseParse, err, key)
		}
		fields = append(fields, value.NamedField[struct{}]{Name: key, Value: v})
	}
	if seen[variantKey] {
		return buildVariant(fields)
	}
	if seen[bitsKey] {
		return buildBits(fields)
	}
	return value.Value[struct{}]{Shape: fields}, nil
}

// buildVariant interprets the {"$variant": name, "fields": ...} escape.
func buildVariant(fields value.Named[struct{}]) (value.Value[struct{}], error) {
	var zero value.Value[struct{}]
	var name string
	payload := value.Composite[struct{}](value.Unnamed[struct{}]{})
	for _, f := range fields {
		switch f.Name {
		case variantKey:
			p, ok := f.Value.Shape.(value.Prim[struct{}])
			if !ok {
				return zero, errors.InvalidData(errors.PhaseParse, []string{variantKey}, "variant name must be a string")
			}
			s, ok := p.Value.(value.PrimStr)
			if !ok {
				return zero, errors.InvalidData(errors.PhaseParse, []string{variantKey}, "variant name must be a string")
			}
			name = string(s)
		case fieldsKey:
			c, ok := f.Value.Shape.(value.Composite[struct{}])
			if !ok {
				return zero, errors.InvalidData(errors.PhaseParse, []string{fieldsKey}, "variant fields must be an object or array")
			}
			payload = c
		default:
			return zero, errors.New(errors.PhaseParse, errors.KindInvalidData).
				Detail("unexpected field %q in variant form", f.Name).
				Build()
		}
	}
	return value.Variant(name, payload), nil
}

// buildBits interprets the {"$bits": "0110"} escape.
func buildBits(fields value.Named[struct{}]) (value.Value[struct{}], error) {
	var zero value.Value[struct{}]
	if len(fields) != 1 {
		return zero, errors.InvalidData(errors.PhaseParse, nil, "bit sequence form takes a single field")
	}
	p, ok := fields[0].Value.Shape.(value.Prim[struct{}])
	if !ok {
		return zero, errors.InvalidData(errors.PhaseParse, []string{bitsKey}, "bits must be a string of 0s and 1s")
	}
	s, ok := p.Value.(value.PrimStr)
	if !ok {
		return zero, errors.InvalidData(errors.PhaseParse, []string{bitsKey}, "bits must be a string of 0s and 1s")
	}
	seq := bits.Seq{}
	for _, c := range string(s) {
		switch c {
		case '0':
			seq = seq.Append(false)
		case '1':
			seq = seq.Append(true)
		default:
			return zero, errors.New(errors.PhaseParse, errors.KindInvalidData).
				Detail("bit character %q is not 0 or 1", c).
				Build()
		}
	}
	return value.BitSequence(seq), nil
}

func invalid(err error) error {
	return errors.New(errors.PhaseParse, errors.KindInvalidData).
		Detail("invalid JSON").
		Cause(err).
		Build()
}
