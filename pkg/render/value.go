package render

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// clientMarkup is the state of one client-markup serialization.
type clientMarkup struct {
	// inline holds nested renders written as their serialization instead
	// of a placeholder.
	inline map[*Render]bool

	// nested lists the renders that got a placeholder, in order.
	nested []*Render
}

func (cm *clientMarkup) add(r *Render) {
	for _, n := range cm.nested {
		if n == r {
			return
		}
	}
	cm.nested = append(cm.nested, r)
}

// writeValue appends the string form of an interpolated value.
//
// nil, typed nil pointers and false contribute nothing. Numbers follow
// JavaScript's number formatting: shortest round-trip digits, "0" for
// negative zero, and exponent form ("1e+21", "1e-7") outside
// [1e-6, 1e21). Sequences contribute each element in order.
//
// With a non-nil cm, a nested render built by rt becomes a placeholder
// element registered in the pending registry. Renders from another
// runtime, and renders marked inline, are written fully serialized.
func (rt *Runtime) writeValue(b *strings.Builder, v any, cm *clientMarkup) {
	switch x := v.(type) {
	case nil:
	case *Render:
		if x == nil {
			return
		}
		if cm == nil || x.rt != rt || cm.inline[x] {
			b.WriteString(x.serialized)
			return
		}
		key := rt.PlaceholderID(x)
		rt.registerPending(key, x)
		cm.add(x)
		b.WriteString(`<template id="`)
		b.WriteString(key)
		b.WriteString(`"></template>`)
	case string:
		b.WriteString(x)
	case []byte:
		b.Write(x)
	case bool:
		if x {
			b.WriteString("true")
		}
	case int:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int8:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int16:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int32:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case uint:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint8:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint16:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint32:
		b.WriteString(strconv.FormatUint(uint64(x), 10))
	case uint64:
		b.WriteString(strconv.FormatUint(x, 10))
	case float32:
		b.WriteString(formatFloat(float64(x), 32))
	case float64:
		b.WriteString(formatFloat(x, 64))
	case []any:
		for _, item := range x {
			rt.writeValue(b, item, cm)
		}
	case fmt.Stringer:
		if isNilPointer(v) {
			return
		}
		b.WriteString(x.String())
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				rt.writeValue(b, rv.Index(i).Interface(), cm)
			}
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Chan:
			if rv.IsNil() {
				return
			}
			b.WriteString(fmt.Sprint(v))
		default:
			b.WriteString(fmt.Sprint(v))
		}
	}
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, bitSize)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
