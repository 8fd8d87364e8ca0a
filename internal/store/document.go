package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type opKind int

const (
	opSet opKind = iota
	opAppend
	opRemove
	opIncrement
)

func (k opKind) String() string {
	switch k {
	case opSet:
		return "set"
	case opAppend:
		return "append"
	case opRemove:
		return "remove"
	case opIncrement:
		return "increment"
	}
	return "unknown"
}

// Op is one path-addressed change to a stored document. Ops passed to a
// single Update are applied in order against the same record.
type Op struct {
	kind  opKind
	path  string
	value any
	elems []any
	delta decimal.Decimal
}

// Set replaces the value at path, creating a missing map key.
func Set(path string, value any) Op {
	return Op{kind: opSet, path: path, value: value}
}

// Append adds elems to the end of the list at path.
func Append(path string, elems ...any) Op {
	return Op{kind: opAppend, path: path, elems: elems}
}

// Remove deletes the list element or map key addressed by path. Later list
// elements shift down by one.
func Remove(path string) Op {
	return Op{kind: opRemove, path: path}
}

// Increment adds delta to the number at path using exact decimal arithmetic.
func Increment(path string, delta decimal.Decimal) Op {
	return Op{kind: opIncrement, path: path, delta: delta}
}

func (o Op) String() string { return o.kind.String() + " " + o.path }

// document is a decoded JSON tree whose numbers are json.Number.
type document = map[string]any

func decodeDocument(raw []byte) (document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// toTree converts an arbitrary value into the same generic form decodeDocument
// produces, so typed values can be spliced into the tree.
func toTree(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode value: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	return out, nil
}

// applyOps applies ops to doc in order.
func applyOps(doc document, ops []Op) error {
	for _, op := range ops {
		if err := applyOp(doc, op); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

func applyOp(doc document, op Op) error {
	segs, err := parsePath(op.path)
	if err != nil {
		return err
	}

	switch op.kind {
	case opSet:
		val, err := toTree(op.value)
		if err != nil {
			return err
		}
		_, err = mutate(doc, segs, func(_ any, _ bool) (any, error) { return val, nil })
		return err

	case opAppend:
		elems := make([]any, 0, len(op.elems))
		for _, e := range op.elems {
			v, err := toTree(e)
			if err != nil {
				return err
			}
			elems = append(elems, v)
		}
		_, err := mutate(doc, segs, func(cur any, exists bool) (any, error) {
			list, ok := cur.([]any)
			if !exists || !ok {
				return nil, fmt.Errorf("%w: not a list", ErrInvalidPath)
			}
			return append(list, elems...), nil
		})
		return err

	case opIncrement:
		_, err := mutate(doc, segs, func(cur any, exists bool) (any, error) {
			num, ok := cur.(json.Number)
			if !exists || !ok {
				return nil, fmt.Errorf("%w: not a number", ErrInvalidPath)
			}
			d, err := decimal.NewFromString(num.String())
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
			}
			return json.Number(d.Add(op.delta).String()), nil
		})
		return err

	case opRemove:
		last := segs[len(segs)-1]
		if len(segs) == 1 {
			if _, ok := doc[last.key]; !ok || last.isIndex {
				return fmt.Errorf("%w: missing %s", ErrInvalidPath, last)
			}
			delete(doc, last.key)
			return nil
		}
		_, err := mutate(doc, segs[:len(segs)-1], func(cur any, exists bool) (any, error) {
			if !exists {
				return nil, fmt.Errorf("%w: missing parent", ErrInvalidPath)
			}
			return removeChild(cur, last)
		})
		return err
	}
	return fmt.Errorf("unsupported op %d", op.kind)
}

func removeChild(parent any, last segment) (any, error) {
	if last.isIndex {
		list, ok := parent.([]any)
		if !ok || last.index >= len(list) {
			return nil, fmt.Errorf("%w: index %d out of range", ErrInvalidPath, last.index)
		}
		out := make([]any, 0, len(list)-1)
		out = append(out, list[:last.index]...)
		return append(out, list[last.index+1:]...), nil
	}
	m, ok := parent.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: not a map", ErrInvalidPath)
	}
	if _, ok := m[last.key]; !ok {
		return nil, fmt.Errorf("%w: missing key %s", ErrInvalidPath, last.key)
	}
	delete(m, last.key)
	return m, nil
}

// mutate walks segs from node and replaces the addressed value with the
// result of leaf. It returns the (possibly new) node.
func mutate(node any, segs []segment, leaf func(cur any, exists bool) (any, error)) (any, error) {
	seg := segs[0]
	rest := segs[1:]

	if seg.isIndex {
		list, ok := node.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s applied to non-list", ErrInvalidPath, seg)
		}
		if seg.index >= len(list) {
			return nil, fmt.Errorf("%w: index %d out of range", ErrInvalidPath, seg.index)
		}
		next, err := step(list[seg.index], true, rest, leaf)
		if err != nil {
			return nil, err
		}
		list[seg.index] = next
		return list, nil
	}

	m, ok := node.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s applied to non-map", ErrInvalidPath, seg)
	}
	cur, exists := m[seg.key]
	if !exists && len(rest) > 0 {
		return nil, fmt.Errorf("%w: missing key %s", ErrInvalidPath, seg.key)
	}
	next, err := step(cur, exists, rest, leaf)
	if err != nil {
		return nil, err
	}
	m[seg.key] = next
	return m, nil
}

func step(cur any, exists bool, rest []segment, leaf func(any, bool) (any, error)) (any, error) {
	if len(rest) == 0 {
		return leaf(cur, exists)
	}
	return mutate(cur, rest, leaf)
}
