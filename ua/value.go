package ua

import (
	"strconv"
	"strings"
)

// ValueKind discriminates the two value shapes the language works with.
type ValueKind int

const (
	KindNum ValueKind = iota
	KindArray
)

// Value is a stack cell: either a scalar number or a rank-1 array of
// numbers. Arrays do not nest.
type Value struct {
	kind ValueKind
	num  float64
	arr  []float64
}

// Num constructs a scalar value.
func Num(v float64) Value {
	return Value{kind: KindNum, num: v}
}

// Array constructs an array value. The slice is not copied.
func Array(vs []float64) Value {
	return Value{kind: KindArray, arr: vs}
}

func (v Value) Kind() ValueKind { return v.kind }

// IsNum reports whether the value is a scalar.
func (v Value) IsNum() bool { return v.kind == KindNum }

// Num returns the scalar payload. It is only meaningful for KindNum.
func (v Value) Num() float64 { return v.num }

// Array returns the array payload. It is only meaningful for KindArray.
func (v Value) Array() []float64 { return v.arr }

func (v Value) String() string {
	if v.kind == KindNum {
		return formatNum(v.num)
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, n := range v.arr {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatNum(n))
	}
	b.WriteByte(']')
	return b.String()
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
