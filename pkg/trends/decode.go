package trends

import (
	"github.com/tidwall/gjson"
)

const maxFragment = 256

// decodeObject checks that body is a JSON object.
func decodeObject(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, invalidBodyError(truncate(string(body)))
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, invalidBodyError(truncate(root.Raw))
	}
	return root, nil
}

// decodeRows navigates default.<path> and returns its array elements. A
// missing path reports the raw "default" member, or "" when even that is
// absent.
func decodeRows(body []byte, path string) ([]gjson.Result, error) {
	root, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	def := root.Get("default")
	rows := def.Get(path)
	if !def.IsObject() || !rows.IsArray() {
		return nil, invalidBodyError(truncate(def.Raw))
	}
	return rows.Array(), nil
}

// requireKeys enforces all-or-nothing presence of the given gjson paths on a
// row and lists the keys the row does have when any is missing.
func requireKeys(row gjson.Result, list string, paths ...string) error {
	if row.IsObject() {
		ok := true
		for _, p := range paths {
			if !row.Get(p).Exists() {
				ok = false
				break
			}
		}
		if ok {
			return nil
		}
	}
	return missingKeysError(list, objectKeys(row))
}

// objectKeys lists the top-level keys of an object in document order.
func objectKeys(v gjson.Result) []string {
	keys := []string{}
	if !v.IsObject() {
		return keys
	}
	v.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

// firstOf reads element 0 of an array member, or the member itself when the
// upstream sent a scalar.
func firstOf(row gjson.Result, key string) gjson.Result {
	v := row.Get(key)
	if v.IsArray() {
		return v.Get("0")
	}
	return v
}

func truncate(s string) string {
	if len(s) <= maxFragment {
		return s
	}
	return s[:maxFragment] + "..."
}
