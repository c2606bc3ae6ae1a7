// Package layering merges partially populated values. Layers are ordered from
// strongest to weakest: a nil pointer, nil map or nil interface in a stronger
// layer lets the weaker layer show through, anything else wins.
package layering

import "reflect"

// Merge folds layers ordered strongest to weakest into a single value. The
// result never aliases maps, slices or pointers owned by the inputs.
func Merge[T any](layers ...T) T {
	var zero T
	if len(layers) == 0 {
		return zero
	}

	acc := Clone(layers[len(layers)-1])
	for i := len(layers) - 2; i >= 0; i-- {
		acc = mergeInto(layers[i], acc)
	}
	return acc
}

// Over applies patch on top of base, keeping base values wherever the patch
// leaves a field unset.
func Over[T any](patch, base T) T {
	return Merge(patch, base)
}

// Clone deep copies pointers, maps, slices and exported struct fields.
func Clone[T any](value T) T {
	rv := reflect.ValueOf(&value).Elem()
	out := reflect.New(rv.Type()).Elem()
	out.Set(deepCopy(rv))
	return out.Interface().(T)
}

func mergeInto[T any](strong, weak T) T {
	sv := reflect.ValueOf(&strong).Elem()
	wv := reflect.ValueOf(&weak).Elem()
	out := reflect.New(sv.Type()).Elem()
	out.Set(merge(sv, wv))
	return out.Interface().(T)
}

func merge(strong, weak reflect.Value) reflect.Value {
	switch strong.Kind() {
	case reflect.Pointer:
		if strong.IsNil() {
			return deepCopy(weak)
		}
		if weak.IsNil() {
			return deepCopy(strong)
		}
		out := reflect.New(strong.Type().Elem())
		out.Elem().Set(merge(strong.Elem(), weak.Elem()))
		return out
	case reflect.Interface:
		if strong.IsNil() {
			return deepCopy(weak)
		}
		return deepCopy(strong)
	case reflect.Map:
		if strong.IsNil() {
			return deepCopy(weak)
		}
		out := reflect.MakeMapWithSize(strong.Type(), strong.Len()+weak.Len())
		if !weak.IsNil() {
			for iter := weak.MapRange(); iter.Next(); {
				out.SetMapIndex(iter.Key(), deepCopy(iter.Value()))
			}
		}
		for iter := strong.MapRange(); iter.Next(); {
			out.SetMapIndex(iter.Key(), deepCopy(iter.Value()))
		}
		return out
	case reflect.Struct:
		out := reflect.New(strong.Type()).Elem()
		for i := 0; i < strong.NumField(); i++ {
			if !out.Field(i).CanSet() {
				continue
			}
			out.Field(i).Set(merge(strong.Field(i), weak.Field(i)))
		}
		return out
	case reflect.Slice:
		if strong.IsNil() {
			return deepCopy(weak)
		}
		return deepCopy(strong)
	default:
		return deepCopy(strong)
	}
}

func deepCopy(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(deepCopy(v.Elem()))
		return out
	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(deepCopy(v.Elem()))
		return out
	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		for iter := v.MapRange(); iter.Next(); {
			out.SetMapIndex(iter.Key(), deepCopy(iter.Value()))
		}
		return out
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(deepCopy(v.Index(i)))
		}
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := 0; i < v.NumField(); i++ {
			if !out.Field(i).CanSet() {
				continue
			}
			out.Field(i).Set(deepCopy(v.Field(i)))
		}
		return out
	default:
		return v
	}
}
