package decode

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/wippyai/dynvalue/bits"
	"github.com/wippyai/dynvalue/errors"
	"github.com/wippyai/dynvalue/value"
)

// Unmarshal decodes the value into out, which must be a non-nil pointer.
// The target type drives the negotiation: exact-width integers, bool, string,
// rune (accepts both char and i32 values), []byte, slices, fixed-length
// arrays, map[string]X, structs, pointers (decoded as Some/None option
// variants), bits.Seq, value.PrimU128/PrimI128, and any.
//
// Struct fields match named-composite entries by `value:"name"` tag first,
// then exact name, then case-insensitively, then by snake_case of the field
// name. Every exported field without a `value:"-"` tag is required.
func Unmarshal[T any](v value.Value[T], out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New(errors.PhaseUnmarshal, errors.KindInvalidData).
			Detail("target must be a non-nil pointer, got %T", out).
			Build()
	}
	dst := rv.Elem()
	hint, err := hintFor(dst.Type())
	if err != nil {
		return err
	}
	_, err = Decode(v, hint, intoVisitor[T]{dst: dst})
	return err
}

var (
	bitsSeqType = reflect.TypeOf(bits.Seq{})
	u128Type    = reflect.TypeOf(value.PrimU128{})
	i128Type    = reflect.TypeOf(value.PrimI128{})
	byteSlice   = reflect.TypeOf([]byte(nil))
	anyType     = reflect.TypeOf((*any)(nil)).Elem()
)

// hintFor derives the negotiation hint from a Go target type.
func hintFor(t reflect.Type) (Hint, error) {
	switch t {
	case bitsSeqType:
		return HintSeq, nil
	case u128Type:
		return HintU128, nil
	case i128Type:
		return HintI128, nil
	case byteSlice:
		return HintBytes, nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return HintBool, nil
	case reflect.String:
		return HintStr, nil
	case reflect.Uint8:
		return HintU8, nil
	case reflect.Uint16:
		return HintU16, nil
	case reflect.Uint32:
		return HintU32, nil
	case reflect.Uint64:
		return HintU64, nil
	case reflect.Int8:
		return HintI8, nil
	case reflect.Int16:
		return HintI16, nil
	case reflect.Int32:
		return HintI32, nil
	case reflect.Int64:
		return HintI64, nil
	case reflect.Pointer:
		return HintOption, nil
	case reflect.Slice:
		return HintSeq, nil
	case reflect.Array:
		return TupleHint(t.Len()), nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return Hint{}, errors.New(errors.PhaseUnmarshal, errors.KindInvalidData).
				Detail("map target must have string keys, got %s", t).
				Build()
		}
		return HintMap, nil
	case reflect.Struct:
		return StructHint(t.Name(), structFieldNames(t)...), nil
	case reflect.Interface:
		if t.NumMethod() != 0 {
			return Hint{}, errors.New(errors.PhaseUnmarshal, errors.KindInvalidData).
				Detail("interface target must be empty interface, got %s", t).
				Build()
		}
		return HintAny, nil
	default:
		// int, uint, uintptr, floats, complex: no unambiguous wire width.
		return Hint{}, errors.New(errors.PhaseUnmarshal, errors.KindInvalidData).
			Detail("unsupported target type %s", t).
			Build()
	}
}

// intoVisitor writes whatever representation the negotiation produced into
// dst. Each callback checks that dst can actually hold the representation;
// pointers other than option cases are allocated through on the way.
type intoVisitor[T any] struct {
	dst reflect.Value
}

// deref allocates through pointer targets. Option None/Some handling happens
// in VisitEnum before this runs, so a pointer reaching a scalar callback
// means the value was not an option variant and fills the pointee directly.
func (iv intoVisitor[T]) deref() reflect.Value {
	dst := iv.dst
	for dst.Kind() == reflect.Pointer {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		dst = dst.Elem()
	}
	return dst
}

func (iv intoVisitor[T]) mismatch(offered string) (any, error) {
	return nil, errors.ShapeMismatch(errors.PhaseUnmarshal, nil, iv.dst.Type().String(), offered)
}

func (iv intoVisitor[T]) VisitBool(x bool) (any, error) {
	dst := iv.deref()
	switch {
	case dst.Kind() == reflect.Bool:
		dst.SetBool(x)
	case dst.Type() == anyType:
		dst.Set(reflect.ValueOf(x))
	default:
		return iv.mismatch("bool")
	}
	return nil, nil
}

func (iv intoVisitor[T]) VisitChar(x rune) (any, error) {
	dst := iv.deref()
	switch {
	case dst.Kind() == reflect.Int32:
		dst.SetInt(int64(x))
	case dst.Type() == anyType:
		dst.Set(reflect.ValueOf(x))
	default:
		return iv.mismatch("char")
	}
	return nil, nil
}

func (iv intoVisitor[T]) VisitStr(x string) (any, error) {
	dst := iv.deref()
	switch {
	case dst.Kind() == reflect.String:
		dst.SetString(x)
	case dst.Type() == anyType:
		dst.Set(reflect.ValueOf(x))
	default:
		return iv.mismatch("str")
	}
	return nil, nil
}

func (iv intoVisitor[T]) setUint(x uint64, kind reflect.Kind, offered string) (any, error) {
	dst := iv.deref()
	switch {
	case dst.Kind() == kind:
		dst.SetUint(x)
	case dst.Type() == anyType:
		dst.Set(uintAs(x, kind))
	default:
		return iv.mismatch(offered)
	}
	return nil, nil
}

func (iv intoVisitor[T]) setInt(x int64, kind reflect.Kind, offered string) (any, error) {
	dst := iv.deref()
	switch {
	case dst.Kind() == kind:
		dst.SetInt(x)
	case dst.Type() == anyType:
		dst.Set(intAs(x, kind))
	default:
		return iv.mismatch(offered)
	}
	return nil, nil
}

func uintAs(x uint64, kind reflect.Kind) reflect.Value {
	switch kind {
	case reflect.Uint8:
		return reflect.ValueOf(uint8(x))
	case reflect.Uint16:
		return reflect.ValueOf(uint16(x))
	case reflect.Uint32:
		return reflect.ValueOf(uint32(x))
	default:
		return reflect.ValueOf(x)
	}
}

func intAs(x int64, kind reflect.Kind) reflect.Value {
	switch kind {
	case reflect.Int8:
		return reflect.ValueOf(int8(x))
	case reflect.Int16:
		return reflect.ValueOf(int16(x))
	case reflect.Int32:
		return reflect.ValueOf(int32(x))
	default:
		return reflect.ValueOf(x)
	}
}

func (iv intoVisitor[T]) VisitU8(x uint8) (any, error) {
	return iv.setUint(uint64(x), reflect.Uint8, "u8")
}

func (iv intoVisitor[T]) VisitU16(x uint16) (any, error) {
	return iv.setUint(uint64(x), reflect.Uint16, "u16")
}

func (iv intoVisitor[T]) VisitU32(x uint32) (any, error) {
	return iv.setUint(uint64(x), reflect.Uint32, "u32")
}

func (iv intoVisitor[T]) VisitU64(x uint64) (any, error) {
	return iv.setUint(x, reflect.Uint64, "u64")
}

func (iv intoVisitor[T]) VisitI8(x int8) (any, error) {
	return iv.setInt(int64(x), reflect.Int8, "i8")
}

func (iv intoVisitor[T]) VisitI16(x int16) (any, error) {
	return iv.setInt(int64(x), reflect.Int16, "i16")
}

func (iv intoVisitor[T]) VisitI32(x int32) (any, error) {
	return iv.setInt(int64(x), reflect.Int32, "i32")
}

func (iv intoVisitor[T]) VisitI64(x int64) (any, error) {
	return iv.setInt(x, reflect.Int64, "i64")
}

func (iv intoVisitor[T]) VisitU128(x value.PrimU128) (any, error) {
	dst := iv.deref()
	switch dst.Type() {
	case u128Type, anyType:
		dst.Set(reflect.ValueOf(x))
	default:
		return iv.mismatch("u128")
	}
	return nil, nil
}

func (iv intoVisitor[T]) VisitI128(x value.PrimI128) (any, error) {
	dst := iv.deref()
	switch dst.Type() {
	case i128Type, anyType:
		dst.Set(reflect.ValueOf(x))
	default:
		return iv.mismatch("i128")
	}
	return nil, nil
}

func (iv intoVisitor[T]) VisitBytes(x []byte) (any, error) {
	dst := iv.deref()
	switch {
	case dst.Type() == byteSlice:
		dst.SetBytes(x)
	case dst.Kind() == reflect.Array && dst.Type().Elem().Kind() == reflect.Uint8:
		if dst.Len() != len(x) {
			return nil, errors.LengthMismatch(errors.PhaseUnmarshal, nil, dst.Len(), len(x))
		}
		reflect.Copy(dst, reflect.ValueOf(x))
	case dst.Type() == anyType:
		dst.Set(reflect.ValueOf(x))
	default:
		return iv.mismatch("bytes")
	}
	return nil, nil
}

func (iv intoVisitor[T]) VisitUnit() (any, error) {
	dst := iv.deref()
	switch {
	case dst.Kind() == reflect.Struct && dst.NumField() == 0:
		// already the zero value
	case dst.Type() == anyType:
		dst.Set(reflect.Zero(anyType))
	default:
		return iv.mismatch("unit")
	}
	return nil, nil
}

func (iv intoVisitor[T]) VisitSeq(seq SeqAccess[T]) (any, error) {
	dst := iv.deref()
	if dst.Type() == bitsSeqType {
		return seqIntoBits[T](seq, dst)
	}
	switch dst.Kind() {
	case reflect.Slice:
		return seqIntoSlice[T](seq, dst)
	case reflect.Array:
		return seqIntoArray[T](seq, dst)
	case reflect.Struct:
		return seqIntoStruct[T](seq, dst)
	case reflect.Interface:
		if dst.Type() == anyType {
			return seqIntoAny[T](seq, dst)
		}
	}
	return iv.mismatch("sequence")
}

func (iv intoVisitor[T]) VisitMap(m *MapAccess[T]) (any, error) {
	dst := iv.deref()
	switch dst.Kind() {
	case reflect.Map:
		if dst.Type().Key().Kind() == reflect.String {
			return mapIntoMap[T](m, dst)
		}
	case reflect.Struct:
		return mapIntoStruct[T](m, dst)
	case reflect.Interface:
		if dst.Type() == anyType {
			return mapIntoAny[T](m, dst)
		}
	}
	return iv.mismatch("map")
}

func (iv intoVisitor[T]) VisitEnum(e *EnumAccess[T]) (any, error) {
	dst := iv.dst
	if dst.Kind() == reflect.Pointer {
		switch e.Name() {
		case "None":
			if err := e.Unit(); err != nil {
				return nil, err
			}
			dst.Set(reflect.Zero(dst.Type()))
			return nil, nil
		case "Some":
			if dst.IsNil() {
				dst.Set(reflect.New(dst.Type().Elem()))
			}
			return e.Tuple(1, someVisitor[T]{
				Base: Base[T]{Want: "option payload"},
				dst:  dst.Elem(),
			})
		default:
			return nil, errors.ShapeMismatch(errors.PhaseUnmarshal, nil,
				dst.Type().String(), "variant "+e.Name())
		}
	}
	if dst.Kind() == reflect.Interface && dst.Type() == anyType {
		return enumIntoAny[T](e, dst)
	}
	return iv.mismatch("variant " + e.Name())
}

// someVisitor unwraps the single payload value of a Some variant into dst.
type someVisitor[T any] struct {
	Base[T]
	dst reflect.Value
}

func (sv someVisitor[T]) VisitSeq(seq SeqAccess[T]) (any, error) {
	hint, err := hintFor(sv.dst.Type())
	if err != nil {
		return nil, err
	}
	return seq.Next(hint, intoVisitor[T]{dst: sv.dst})
}

func seqIntoSlice[T any](seq SeqAccess[T], dst reflect.Value) (any, error) {
	elemType := dst.Type().Elem()
	hint, err := hintFor(elemType)
	if err != nil {
		return nil, err
	}
	out := reflect.MakeSlice(dst.Type(), seq.Len(), seq.Len())
	for i := 0; seq.More(); i++ {
		if _, err := seq.Next(hint, intoVisitor[T]{dst: out.Index(i)}); err != nil {
			return nil, err
		}
	}
	dst.Set(out)
	return nil, nil
}

func seqIntoArray[T any](seq SeqAccess[T], dst reflect.Value) (any, error) {
	if seq.Len() != dst.Len() {
		return nil, errors.LengthMismatch(errors.PhaseUnmarshal, nil, dst.Len(), seq.Len())
	}
	hint, err := hintFor(dst.Type().Elem())
	if err != nil {
		return nil, err
	}
	for i := 0; seq.More(); i++ {
		if _, err := seq.Next(hint, intoVisitor[T]{dst: dst.Index(i)}); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// seqIntoStruct fills struct fields positionally from an unnamed composite.
// The arity must match exactly.
func seqIntoStruct[T any](seq SeqAccess[T], dst reflect.Value) (any, error) {
	fields := settableFields(dst)
	if seq.Len() != len(fields) {
		return nil, errors.LengthMismatch(errors.PhaseUnmarshal, nil, len(fields), seq.Len())
	}
	for _, f := range fields {
		hint, err := hintFor(f.Type())
		if err != nil {
			return nil, err
		}
		if _, err := seq.Next(hint, intoVisitor[T]{dst: f}); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// seqIntoBits rebuilds a bit sequence from its three transport pieces.
func seqIntoBits[T any](seq SeqAccess[T], dst reflect.Value) (any, error) {
	if seq.Len() != 3 {
		return nil, errors.BitSeqField(errors.PhaseUnmarshal,
			"bit sequence transports as 3 pieces")
	}
	var head uint8
	var count uint64
	var data []byte
	if _, err := seq.Next(HintU8, intoVisitor[T]{dst: reflect.ValueOf(&head).Elem()}); err != nil {
		return nil, err
	}
	if _, err := seq.Next(HintU64, intoVisitor[T]{dst: reflect.ValueOf(&count).Elem()}); err != nil {
		return nil, err
	}
	if _, err := seq.Next(HintBytes, intoVisitor[T]{dst: reflect.ValueOf(&data).Elem()}); err != nil {
		return nil, err
	}
	s, err := bits.FromParts(head, count, data)
	if err != nil {
		return nil, err
	}
	dst.Set(reflect.ValueOf(s))
	return nil, nil
}

func seqIntoAny[T any](seq SeqAccess[T], dst reflect.Value) (any, error) {
	out := make([]any, 0, seq.Len())
	for seq.More() {
		var elem any
		if _, err := seq.Next(HintAny, intoVisitor[T]{dst: reflect.ValueOf(&elem).Elem()}); err != nil {
			return nil, err
		}
		out = append(out, elem)
	}
	dst.Set(reflect.ValueOf(out))
	return nil, nil
}

func mapIntoMap[T any](m *MapAccess[T], dst reflect.Value) (any, error) {
	elemType := dst.Type().Elem()
	hint, err := hintFor(elemType)
	if err != nil {
		return nil, err
	}
	out := reflect.MakeMapWithSize(dst.Type(), m.Len())
	for m.More() {
		elem := reflect.New(elemType).Elem()
		name, _, err := m.Next(hint, intoVisitor[T]{dst: elem})
		if err != nil {
			return nil, err
		}
		out.SetMapIndex(reflect.ValueOf(name).Convert(dst.Type().Key()), elem)
	}
	dst.Set(out)
	return nil, nil
}

// mapIntoStruct fills struct fields by name from a named composite. Surplus
// entries are decoded generically and dropped; fields left unmatched fail.
func mapIntoStruct[T any](m *MapAccess[T], dst reflect.Value) (any, error) {
	t := dst.Type()
	seen := make(map[int]bool, t.NumField())
	for m.More() {
		name, _ := m.Peek()
		idx, found := findField(t, name)
		if !found || seen[idx] {
			var sink any
			if _, _, err := m.Next(HintAny, intoVisitor[T]{dst: reflect.ValueOf(&sink).Elem()}); err != nil {
				return nil, err
			}
			continue
		}
		seen[idx] = true
		field := dst.Field(idx)
		hint, err := hintFor(field.Type())
		if err != nil {
			return nil, err
		}
		if _, _, err := m.Next(hint, intoVisitor[T]{dst: field}); err != nil {
			return nil, err
		}
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("value") == "-" {
			continue
		}
		if !seen[i] {
			return nil, errors.UnknownField(errors.PhaseUnmarshal, nil, fieldKey(f))
		}
	}
	return nil, nil
}

func mapIntoAny[T any](m *MapAccess[T], dst reflect.Value) (any, error) {
	out := make(map[string]any, m.Len())
	for m.More() {
		var elem any
		name, _, err := m.Next(HintAny, intoVisitor[T]{dst: reflect.ValueOf(&elem).Elem()})
		if err != nil {
			return nil, err
		}
		out[name] = elem
	}
	dst.Set(reflect.ValueOf(out))
	return nil, nil
}

// enumIntoAny renders a variant as a single-entry map from case name to
// payload; payload-free variants map to nil.
func enumIntoAny[T any](e *EnumAccess[T], dst reflect.Value) (any, error) {
	out := map[string]any{e.Name(): nil}
	if e.Unit() != nil {
		var payload any
		if _, err := e.Newtype(HintAny, intoVisitor[T]{dst: reflect.ValueOf(&payload).Elem()}); err != nil {
			return nil, err
		}
		out[e.Name()] = payload
	}
	dst.Set(reflect.ValueOf(out))
	return nil, nil
}

// settableFields returns the exported, non-skipped fields in declaration
// order.
func settableFields(dst reflect.Value) []reflect.Value {
	t := dst.Type()
	out := make([]reflect.Value, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("value") == "-" {
			continue
		}
		out = append(out, dst.Field(i))
	}
	return out
}

func structFieldNames(t reflect.Type) []string {
	out := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("value") == "-" {
			continue
		}
		out = append(out, fieldKey(f))
	}
	return out
}

// fieldKey returns the name a field matches against: its tag when present,
// otherwise the Go name.
func fieldKey(f reflect.StructField) string {
	if tag := f.Tag.Get("value"); tag != "" && tag != "-" {
		return tag
	}
	return f.Name
}

// findField matches by: 1) value:"name" tag, 2) exact name,
// 3) case-insensitive, 4) snake_case of the Go name.
func findField(t reflect.Type, name string) (int, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag := f.Tag.Get("value"); tag != "" {
			if tag == "-" {
				continue
			}
			if tag == name {
				return i, true
			}
			continue
		}
		if f.Name == name {
			return i, true
		}
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("value") != "" {
			continue
		}
		if strings.EqualFold(f.Name, name) {
			return i, true
		}
		if toSnakeCase(f.Name) == name {
			return i, true
		}
	}
	return 0, false
}

func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteByte('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
