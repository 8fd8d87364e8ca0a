package store

import (
	"fmt"
	"strconv"
	"strings"
)

// segment is one step of a document path: a map key or a list index.
type segment struct {
	key     string
	index   int
	isIndex bool
}

func (s segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.key
}

// Path joins keys and indexes into a document path. Strings become keys and
// ints become list indexes: Path("spendingCategories", 2, "amountUsed")
// yields "spendingCategories[2].amountUsed".
func Path(parts ...any) string {
	var b strings.Builder
	for _, p := range parts {
		switch v := p.(type) {
		case int:
			b.WriteString("[" + strconv.Itoa(v) + "]")
		case string:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(v)
		default:
			panic(fmt.Sprintf("store: unsupported path part %T", p))
		}
	}
	return b.String()
}

// parsePath parses name(.name|[index])* into segments.
func parsePath(p string) ([]segment, error) {
	if p == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	var segs []segment
	i := 0
	expectKey := true
	for i < len(p) {
		switch {
		case p[i] == '[':
			end := strings.IndexByte(p[i:], ']')
			if end < 0 || len(segs) == 0 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidPath, p)
			}
			idx, err := strconv.Atoi(p[i+1 : i+end])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("%w: bad index in %q", ErrInvalidPath, p)
			}
			segs = append(segs, segment{index: idx, isIndex: true})
			i += end + 1
			expectKey = false
		case p[i] == '.':
			if expectKey {
				return nil, fmt.Errorf("%w: %q", ErrInvalidPath, p)
			}
			i++
			expectKey = true
		default:
			if !expectKey {
				return nil, fmt.Errorf("%w: %q", ErrInvalidPath, p)
			}
			end := strings.IndexAny(p[i:], ".[")
			if end < 0 {
				end = len(p) - i
			}
			segs = append(segs, segment{key: p[i : i+end]})
			i += end
			expectKey = false
		}
	}
	if expectKey {
		return nil, fmt.Errorf("%w: trailing separator in %q", ErrInvalidPath, p)
	}
	return segs, nil
}
