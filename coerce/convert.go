/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package coerce

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"dirpx.dev/propx/apis"
)

// class is the canonical representation a source value is read into.
type class uint8

const (
	classInvalid class = iota
	classBool
	classInt
	classUint
	classFloat
	classComplex
	classString
)

// scalar holds a source value in its canonical representation.
type scalar struct {
	class class
	b     bool
	i     int64
	u     uint64
	f     float64
	c     complex128
	s     string
}

func classOf(k reflect.Kind) class {
	switch k {
	case reflect.Bool:
		return classBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return classInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return classUint
	case reflect.Float32, reflect.Float64:
		return classFloat
	case reflect.Complex64, reflect.Complex128:
		return classComplex
	case reflect.String:
		return classString
	default:
		return classInvalid
	}
}

// build returns the conversion plan from src to dst.
func build(src, dst reflect.Type) plan {
	if !IsPrimitive(dst.Kind()) {
		return assign(src, dst)
	}
	cls := classOf(src.Kind())
	if cls == classInvalid {
		return func(reflect.Value) (any, error) {
			return nil, fmt.Errorf("%w: cannot convert %s to %s", apis.ErrInvalidConversion, src, dst)
		}
	}
	return func(v reflect.Value) (any, error) {
		out := reflect.New(dst).Elem()
		if err := write(out, read(cls, v)); err != nil {
			return nil, fmt.Errorf("%w: %s to %s: %v", apis.ErrInvalidConversion, src, dst, err)
		}
		return out.Interface(), nil
	}
}

// assign converts values whose type is assignable to the non-primitive dst.
func assign(src, dst reflect.Type) plan {
	if !src.AssignableTo(dst) {
		return func(reflect.Value) (any, error) {
			return nil, fmt.Errorf("%w: %s is not assignable to %s", apis.ErrInvalidConversion, src, dst)
		}
	}
	return func(v reflect.Value) (any, error) {
		return v.Convert(dst).Interface(), nil
	}
}

func read(cls class, v reflect.Value) scalar {
	s := scalar{class: cls}
	switch cls {
	case classBool:
		s.b = v.Bool()
	case classInt:
		s.i = v.Int()
	case classUint:
		s.u = v.Uint()
	case classFloat:
		s.f = v.Float()
	case classComplex:
		s.c = v.Complex()
	case classString:
		s.s = strings.TrimSpace(v.String())
	}
	return s
}

// write stores s into out, whose kind is primitive, with checked range.
func write(out reflect.Value, s scalar) error {
	switch classOf(out.Kind()) {
	case classBool:
		b, err := toBool(s)
		if err != nil {
			return err
		}
		out.SetBool(b)
	case classInt:
		i, err := toInt(s, out.Type().Bits())
		if err != nil {
			return err
		}
		if out.OverflowInt(i) {
			return fmt.Errorf("value %d out of range", i)
		}
		out.SetInt(i)
	case classUint:
		u, err := toUint(s, out.Type().Bits())
		if err != nil {
			return err
		}
		if out.OverflowUint(u) {
			return fmt.Errorf("value %d out of range", u)
		}
		out.SetUint(u)
	case classFloat:
		f, err := toFloat(s, out.Type().Bits())
		if err != nil {
			return err
		}
		if out.OverflowFloat(f) {
			return fmt.Errorf("value %g out of range", f)
		}
		out.SetFloat(f)
	case classComplex:
		c, err := toComplex(s, out.Type().Bits())
		if err != nil {
			return err
		}
		if out.OverflowComplex(c) {
			return fmt.Errorf("value %g out of range", c)
		}
		out.SetComplex(c)
	default:
		return fmt.Errorf("%s is not primitive", out.Type())
	}
	return nil
}

func toBool(s scalar) (bool, error) {
	switch s.class {
	case classBool:
		return s.b, nil
	case classInt:
		return s.i != 0, nil
	case classUint:
		return s.u != 0, nil
	case classFloat:
		return s.f != 0, nil
	case classComplex:
		return s.c != 0, nil
	default:
		return strconv.ParseBool(s.s)
	}
}

func toInt(s scalar, bits int) (int64, error) {
	switch s.class {
	case classBool:
		if s.b {
			return 1, nil
		}
		return 0, nil
	case classInt:
		return s.i, nil
	case classUint:
		if s.u > math.MaxInt64 {
			return 0, fmt.Errorf("value %d out of range", s.u)
		}
		return int64(s.u), nil
	case classFloat:
		return truncInt(s.f)
	case classComplex:
		if imag(s.c) != 0 {
			return 0, fmt.Errorf("value %g has an imaginary part", s.c)
		}
		return truncInt(real(s.c))
	default:
		return strconv.ParseInt(s.s, 10, bits)
	}
}

func toUint(s scalar, bits int) (uint64, error) {
	switch s.class {
	case classBool:
		if s.b {
			return 1, nil
		}
		return 0, nil
	case classInt:
		if s.i < 0 {
			return 0, fmt.Errorf("value %d out of range", s.i)
		}
		return uint64(s.i), nil
	case classUint:
		return s.u, nil
	case classFloat:
		return truncUint(s.f)
	case classComplex:
		if imag(s.c) != 0 {
			return 0, fmt.Errorf("value %g has an imaginary part", s.c)
		}
		return truncUint(real(s.c))
	default:
		return strconv.ParseUint(s.s, 10, bits)
	}
}

func toFloat(s scalar, bits int) (float64, error) {
	switch s.class {
	case classBool:
		if s.b {
			return 1, nil
		}
		return 0, nil
	case classInt:
		return float64(s.i), nil
	case classUint:
		return float64(s.u), nil
	case classFloat:
		return s.f, nil
	case classComplex:
		if imag(s.c) != 0 {
			return 0, fmt.Errorf("value %g has an imaginary part", s.c)
		}
		return real(s.c), nil
	default:
		return strconv.ParseFloat(s.s, bits)
	}
}

func toComplex(s scalar, bits int) (complex128, error) {
	switch s.class {
	case classComplex:
		return s.c, nil
	case classString:
		return strconv.ParseComplex(s.s, bits)
	default:
		f, err := toFloat(s, 64)
		return complex(f, 0), err
	}
}

// truncInt truncates f toward zero. Go's float-to-int conversion is
// implementation-defined out of range, so the range is checked first.
func truncInt(f float64) (int64, error) {
	t := math.Trunc(f)
	if math.IsNaN(t) || t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, fmt.Errorf("value %g out of range", f)
	}
	return int64(t), nil
}

func truncUint(f float64) (uint64, error) {
	t := math.Trunc(f)
	if math.IsNaN(t) || t < 0 || t >= math.MaxUint64 {
		return 0, fmt.Errorf("value %g out of range", f)
	}
	return uint64(t), nil
}
