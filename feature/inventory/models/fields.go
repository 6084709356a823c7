package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Field is one comparable field of an asset.
type Field struct {
	Name  string
	Value string
}

// Fields returns the comparable fields of an asset in declaration order.
// Struct fields tagged `cmp:"-"` are excluded.
func Fields(a Asset) []Field {
	v := reflect.Indirect(reflect.ValueOf(a))
	t := v.Type()

	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Tag.Get("cmp") == "-" {
			continue
		}
		fields = append(fields, Field{Name: jsonName(sf), Value: fmt.Sprint(v.Field(i).Interface())})
	}
	return fields
}

// CompareFields lists comparable fields that differ between two assets of the same type.
func CompareFields(stored, incoming Asset) []string {
	if reflect.TypeOf(stored) != reflect.TypeOf(incoming) {
		return []string{fmt.Sprintf("type: stored=%T incoming=%T", stored, incoming)}
	}
	st := Fields(stored)
	in := Fields(incoming)

	var mismatch []string
	for i := range st {
		if st[i].Value != in[i].Value {
			mismatch = append(mismatch, fmt.Sprintf("%s: stored=%s incoming=%s", st[i].Name, st[i].Value, in[i].Value))
		}
	}
	return mismatch
}

// Merge combines two records of the same type sharing an identity key.
// For scalar fields the last non-empty value wins; string lists are unioned
// without duplicates, preserving first-seen order.
func Merge(prev, next Asset) Asset {
	pv := reflect.Indirect(reflect.ValueOf(prev))
	nv := reflect.Indirect(reflect.ValueOf(next))
	if pv.Type() != nv.Type() {
		return next
	}

	out := reflect.New(pv.Type())
	out.Elem().Set(pv)
	ov := out.Elem()

	for i := 0; i < ov.NumField(); i++ {
		field := ov.Field(i)
		incoming := nv.Field(i)
		if field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.String {
			field.Set(reflect.ValueOf(unionStrings(field.Interface().([]string), incoming.Interface().([]string))))
			continue
		}
		if !incoming.IsZero() {
			field.Set(incoming)
		}
	}
	return out.Interface().(Asset)
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range append(append([]string{}, a...), b...) {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func jsonName(sf reflect.StructField) string {
	name := strings.Split(sf.Tag.Get("json"), ",")[0]
	if name == "" {
		return strings.ToLower(sf.Name)
	}
	return name
}

// New returns an empty asset of the given category.
func New(category Category) (Asset, error) {
	switch category {
	case CategoryComputer:
		return &Computer{}, nil
	case CategoryBattery:
		return &Battery{}, nil
	case CategoryFirmware:
		return &Firmware{}, nil
	case CategoryOS:
		return &OperatingSystem{}, nil
	case CategoryNetworkCard:
		return &NetworkCard{}, nil
	case CategoryNetworkPort:
		return &NetworkPort{}, nil
	case CategoryIPAddress:
		return &IPAddress{}, nil
	case CategoryMonitor:
		return &Monitor{}, nil
	case CategoryPeripheral:
		return &Peripheral{}, nil
	case CategoryPrinter:
		return &Printer{}, nil
	case CategorySoftware:
		return &SoftwareInstall{}, nil
	case CategoryVM:
		return &VirtualMachine{}, nil
	case CategoryComponent:
		return &Component{}, nil
	default:
		return nil, fmt.Errorf("unknown category %q", category)
	}
}

// Encode serializes an asset payload for storage.
func Encode(a Asset) (string, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", a.Category(), err)
	}
	return string(b), nil
}

// Decode restores a stored payload into a typed asset.
func Decode(category Category, payload string) (Asset, error) {
	a, err := New(category)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), a); err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", category, err)
	}
	return a, nil
}
