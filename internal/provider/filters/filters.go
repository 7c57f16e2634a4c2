// Package filters holds the raw-JSON response filters shared by the provider
// tool tables. They operate on upstream bodies before normalization, mirroring
// the local filtering the upstream APIs do not offer themselves.
package filters

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// KeepArrayElements keeps only the elements of the array at path whose field
// matches want (case-insensitive). When the path is not an array or nothing
// matches, the body is returned unchanged; an unknown filter value must not
// hide the full answer.
func KeepArrayElements(body []byte, path, field, want string) ([]byte, error) {
	arr := gjson.GetBytes(body, path)
	if !arr.IsArray() {
		return nil, nil
	}

	var kept []string
	arr.ForEach(func(_, el gjson.Result) bool {
		if strings.EqualFold(el.Get(field).String(), want) {
			kept = append(kept, el.Raw)
		}
		return true
	})
	if len(kept) == 0 {
		return nil, nil
	}

	return sjson.SetRawBytes(body, path, []byte("["+strings.Join(kept, ",")+"]"))
}

// KeepArrayElementsContaining keeps only the elements of the array at path
// whose field contains want (case-insensitive). Same unchanged-body fallback
// as KeepArrayElements.
func KeepArrayElementsContaining(body []byte, path, field, want string) ([]byte, error) {
	arr := gjson.GetBytes(body, path)
	if !arr.IsArray() {
		return nil, nil
	}

	needle := strings.ToLower(want)
	var kept []string
	arr.ForEach(func(_, el gjson.Result) bool {
		if strings.Contains(strings.ToLower(el.Get(field).String()), needle) {
			kept = append(kept, el.Raw)
		}
		return true
	})
	if len(kept) == 0 {
		return nil, nil
	}

	return sjson.SetRawBytes(body, path, []byte("["+strings.Join(kept, ",")+"]"))
}

// StringArg reads a resolved tool argument as a string. Absent or non-string
// arguments come back empty, which every filter treats as "no filtering".
func StringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

// KeepObjectKeys keeps only the entries of the object at path whose key
// contains substr (case-insensitive). When the path is not an object or no
// key matches, the body is returned unchanged.
func KeepObjectKeys(body []byte, path, substr string) ([]byte, error) {
	obj := gjson.GetBytes(body, path)
	if !obj.IsObject() {
		return nil, nil
	}

	needle := strings.ToLower(substr)
	var pairs []string
	obj.ForEach(func(key, value gjson.Result) bool {
		if strings.Contains(strings.ToLower(key.String()), needle) {
			pairs = append(pairs, strconv.Quote(key.String())+":"+value.Raw)
		}
		return true
	})
	if len(pairs) == 0 {
		return nil, nil
	}

	return sjson.SetRawBytes(body, path, []byte("{"+strings.Join(pairs, ",")+"}"))
}
