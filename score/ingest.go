package score

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
	"github.com/jsphweid/tabscore/constants"
	"github.com/jsphweid/tabscore/model"
	"github.com/jsphweid/tabscore/util"
)

// Parse decodes a YAML or JSON score document and ingests it. Mapping order
// in the document is kept; it decides track order and clip order.
func Parse(data []byte, maxDepth int) (*Node, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, model.NewError(model.MalformedScore, "", "cannot decode score: %v", err)
	}
	return Ingest(doc, maxDepth)
}

// Ingest classifies a decoded document once: lists become sequences,
// strings become leaves and mappings become parallel nodes. Anything else
// where a node is expected is rejected.
func Ingest(v any, maxDepth int) (*Node, error) {
	if maxDepth <= 0 {
		maxDepth = constants.GetMaxDepth()
	}
	in := ingester{maxDepth: maxDepth}
	return in.node(v, "$", 0)
}

type ingester struct {
	maxDepth int
}

type item struct {
	key   string
	value any
}

func (in ingester) node(v any, path string, depth int) (*Node, error) {
	if depth > in.maxDepth {
		return nil, model.NewError(model.DepthExceeded, path, "score is nested deeper than %d", in.maxDepth)
	}

	switch t := v.(type) {
	case string:
		return NewLeaf(t), nil
	case []any:
		n := &Node{Kind: Sequence, Children: make([]*Node, 0, len(t))}
		for i, child := range t {
			c, err := in.node(child, fmt.Sprintf("%s[%d]", path, i), depth+1)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, c)
		}
		return n, nil
	}

	if _, ok := util.Number(v); ok {
		return nil, model.NewError(model.MalformedScore, path, "pattern %v is a number, quote it", v)
	}
	items, ok := mapItems(v)
	if !ok {
		return nil, model.NewError(model.MalformedScore, path, "expected a list, string or mapping, got %T", v)
	}
	return in.parallel(items, path, depth)
}

func (in ingester) parallel(items []item, path string, depth int) (*Node, error) {
	n := &Node{Kind: Parallel}
	for _, it := range items {
		childPath := path + "." + it.key
		switch it.key {
		case KeyStartTime:
			return nil, model.NewError(model.ReservedKeyConflict, childPath, "startTime is not a legal score key")
		case KeyRhythm, KeyVelocity:
			s, ok := it.value.(string)
			if _, isNumber := util.Number(it.value); isNumber {
				return nil, model.NewError(model.MalformedScore, childPath, "%s %v is a number, quote it", it.key, it.value)
			}
			if !ok {
				return nil, model.NewError(model.MalformedScore, childPath, "%s must be a string, got %T", it.key, it.value)
			}
			if it.key == KeyRhythm {
				n.Overrides.Rhythm = &s
			} else {
				n.Overrides.Velocity = &s
			}
		case KeyLibrary, KeyVelocityLibrary:
			lib, err := SymbolTable(it.value, childPath)
			if err != nil {
				return nil, err
			}
			if it.key == KeyLibrary {
				n.Overrides.Library = lib
			} else {
				n.Overrides.VelocityLibrary = lib
			}
		case KeyClips:
			child, err := in.node(it.value, childPath, depth+1)
			if err != nil {
				return nil, err
			}
			n.Entries = append(n.Entries, OnSameTrack(child))
		default:
			child, err := in.node(it.value, childPath, depth+1)
			if err != nil {
				return nil, err
			}
			n.Entries = append(n.Entries, OnTrack(it.key, child))
		}
	}
	return n, nil
}

// mapItems returns the entries of an ordered or plain mapping. Plain Go maps
// have no order, so their keys are sorted.
func mapItems(v any) ([]item, bool) {
	switch t := v.(type) {
	case yaml.MapSlice:
		res := make([]item, 0, len(t))
		for _, mi := range t {
			res = append(res, item{key: keyString(mi.Key), value: mi.Value})
		}
		return res, true
	case map[string]any:
		res := make([]item, 0, len(t))
		for _, k := range util.GetKeys(t) {
			res = append(res, item{key: k, value: t[k]})
		}
		return res, true
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[keyString(k)] = val
		}
		return mapItems(m)
	}
	return nil, false
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// SymbolTable converts a decoded mapping or list into a symbol table. List
// entries are addressed by their index, so lists hold at most ten symbols.
func SymbolTable(v any, path string) (model.SymbolTable, error) {
	res := make(model.SymbolTable)
	if list, ok := v.([]any); ok {
		if len(list) > 10 {
			return nil, model.NewError(model.MalformedScore, path, "a list library holds at most 10 entries, got %d", len(list))
		}
		for i, entry := range list {
			values, err := entryValues(entry, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			res[strconv.Itoa(i)] = values
		}
		return res, nil
	}

	items, ok := mapItems(v)
	if !ok {
		return nil, model.NewError(model.MalformedScore, path, "library must be a mapping or a list, got %T", v)
	}
	for _, it := range items {
		if utf8.RuneCountInString(it.key) != 1 {
			return nil, model.NewError(model.MalformedScore, path, "library symbol %q must be a single character", it.key)
		}
		values, err := entryValues(it.value, path+"."+it.key)
		if err != nil {
			return nil, err
		}
		res[it.key] = values
	}
	return res, nil
}

func entryValues(v any, path string) ([]model.Value, error) {
	if list, ok := v.([]any); ok {
		if len(list) == 0 {
			return nil, model.NewError(model.MalformedScore, path, "empty chord")
		}
		res := make([]model.Value, 0, len(list))
		for i, e := range list {
			val, err := value(e, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			res = append(res, val)
		}
		return res, nil
	}
	val, err := value(v, path)
	if err != nil {
		return nil, err
	}
	return []model.Value{val}, nil
}

func value(v any, path string) (model.Value, error) {
	if s, ok := v.(string); ok {
		return model.PitchValue(s), nil
	}
	if n, ok := util.Number(v); ok {
		if n != math.Trunc(n) {
			return model.Value{}, model.NewError(model.MalformedScore, path, "note number %v is not an integer", n)
		}
		return model.NoteValue(int(n)), nil
	}
	if items, ok := mapItems(v); ok {
		return model.TechniqueValue(plainMap(items)), nil
	}
	return model.Value{}, model.NewError(model.MalformedScore, path, "unsupported library value %T", v)
}

// plainMap turns decoded mappings into map[string]any all the way down.
func plainMap(items []item) map[string]any {
	res := make(map[string]any, len(items))
	for _, it := range items {
		res[it.key] = plain(it.value)
	}
	return res
}

func plain(v any) any {
	if items, ok := mapItems(v); ok {
		return plainMap(items)
	}
	if list, ok := v.([]any); ok {
		res := make([]any, len(list))
		for i, e := range list {
			res[i] = plain(e)
		}
		return res
	}
	return v
}
