package store

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPath(t *testing.T) {
	got := Path("spendingCategories", 2, "transactions", 0, "transactionAmount")
	want := "spendingCategories[2].transactions[0].transactionAmount"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestParsePath(t *testing.T) {
	t.Run("nested", func(t *testing.T) {
		segs, err := parsePath("a[1].b[20].c")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(segs) != 5 {
			t.Fatalf("expected 5 segments, got %d", len(segs))
		}
		if segs[1].index != 1 || !segs[1].isIndex {
			t.Errorf("expected index 1, got %+v", segs[1])
		}
		if segs[3].index != 20 {
			t.Errorf("expected index 20, got %+v", segs[3])
		}
		if segs[4].key != "c" {
			t.Errorf("expected key c, got %+v", segs[4])
		}
	})

	for _, bad := range []string{"", ".a", "a.", "a..b", "[0]", "a[x]", "a[-1]", "a[1", "a[0]b"} {
		t.Run("rejects_"+bad, func(t *testing.T) {
			if _, err := parsePath(bad); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("expected ErrInvalidPath for %q, got %v", bad, err)
			}
		})
	}
}

func mustDoc(t *testing.T, raw string) document {
	t.Helper()
	doc, err := decodeDocument([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return doc
}

func encode(t *testing.T, doc document) string {
	t.Helper()
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	return string(raw)
}

func TestApplyOps(t *testing.T) {
	const base = `{"name":"x","list":[{"id":"a","n":1},{"id":"b","n":2},{"id":"c","n":3}]}`

	t.Run("set_nested_field", func(t *testing.T) {
		doc := mustDoc(t, base)
		if err := applyOps(doc, []Op{Set("list[1].id", "z")}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"list":[{"id":"a","n":1},{"id":"z","n":2},{"id":"c","n":3}],"name":"x"}`
		if got := encode(t, doc); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("set_creates_missing_key", func(t *testing.T) {
		doc := mustDoc(t, base)
		if err := applyOps(doc, []Op{Set("extra", map[string]any{"k": 1})}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := doc["extra"]; !ok {
			t.Error("expected extra key to be created")
		}
	})

	t.Run("append", func(t *testing.T) {
		doc := mustDoc(t, base)
		if err := applyOps(doc, []Op{Append("list", map[string]any{"id": "d", "n": 4})}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		list := doc["list"].([]any)
		if len(list) != 4 || list[3].(map[string]any)["id"] != "d" {
			t.Errorf("expected d appended last, got %v", list)
		}
	})

	t.Run("remove_keeps_order", func(t *testing.T) {
		doc := mustDoc(t, base)
		if err := applyOps(doc, []Op{Remove("list[1]")}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"list":[{"id":"a","n":1},{"id":"c","n":3}],"name":"x"}`
		if got := encode(t, doc); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("increment_is_exact", func(t *testing.T) {
		doc := mustDoc(t, `{"v":0.1}`)
		err := applyOps(doc, []Op{
			Increment("v", decimal.RequireFromString("0.2")),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := doc["v"].(json.Number).String(); got != "0.3" {
			t.Errorf("expected 0.3, got %s", got)
		}
	})

	t.Run("ops_apply_in_order", func(t *testing.T) {
		doc := mustDoc(t, base)
		err := applyOps(doc, []Op{
			Remove("list[0]"),
			Increment("list[0].n", decimal.NewFromInt(10)),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first := doc["list"].([]any)[0].(map[string]any)
		if first["id"] != "b" || first["n"].(json.Number).String() != "12" {
			t.Errorf("expected b with n=12, got %v", first)
		}
	})

	t.Run("errors", func(t *testing.T) {
		cases := map[string]Op{
			"index_out_of_range":   Set("list[3].id", "z"),
			"append_to_non_list":   Append("name", 1),
			"increment_non_number": Increment("name", decimal.NewFromInt(1)),
			"remove_missing_key":   Remove("missing"),
			"missing_parent":       Set("nope.child", 1),
			"index_into_map":       Set("name[0]", 1),
			"remove_out_of_range":  Remove("list[9]"),
		}
		for name, op := range cases {
			t.Run(name, func(t *testing.T) {
				doc := mustDoc(t, base)
				if err := applyOps(doc, []Op{op}); !errors.Is(err, ErrInvalidPath) {
					t.Errorf("expected ErrInvalidPath, got %v", err)
				}
			})
		}
	})
}
