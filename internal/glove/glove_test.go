package glove

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeStore writes lines to a temp vector file and returns its path.
func writeStore(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectors.txt")
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeStore(t, "hello 0.1 0.2\nworld 0.3 0.4\n")

	pool, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if pool.Dim() != 2 {
		t.Errorf("expected dim 2, got %d", pool.Dim())
	}
	if pool.Len() != 2 {
		t.Errorf("expected 2 tokens, got %d", pool.Len())
	}

	vec, ok := pool.Lookup("hello")
	if !ok {
		t.Fatal("expected 'hello' in pool")
	}
	if vec[0] != 0.1 || vec[1] != 0.2 {
		t.Errorf("unexpected vector for 'hello': %v", vec)
	}
}

func TestLoad_MalformedLine(t *testing.T) {
	path := writeStore(t, "hello 0.1 0.2\nbroken 0.3\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for mismatched value count")
	}
	if !errors.Is(err, ErrMalformedLine) {
		t.Errorf("expected ErrMalformedLine, got: %v", err)
	}
}

func TestLoad_BadFloat(t *testing.T) {
	path := writeStore(t, "hello 0.1 abc\n")

	_, err := Load(path)
	if !errors.Is(err, ErrMalformedLine) {
		t.Errorf("expected ErrMalformedLine for unparseable value, got: %v", err)
	}
}

func TestLoad_Empty(t *testing.T) {
	path := writeStore(t, "")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty store")
	}
}

func TestLoad_DuplicateFirstWins(t *testing.T) {
	path := writeStore(t, "hello 0.1 0.2\nhello 0.9 0.9\n")

	pool, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if pool.Len() != 1 {
		t.Errorf("expected 1 token after dedup, got %d", pool.Len())
	}
	vec, _ := pool.Lookup("hello")
	if vec[0] != 0.1 {
		t.Errorf("expected first occurrence to win, got %v", vec)
	}
}

func TestPool_TakeConsumes(t *testing.T) {
	pool := NewPool(1)
	pool.Add("a", []float64{1})
	pool.Add("b", []float64{2})

	vec, ok := pool.Take("a")
	if !ok || vec[0] != 1 {
		t.Fatalf("Take(a) = %v, %v", vec, ok)
	}
	if _, ok := pool.Take("a"); ok {
		t.Error("expected second Take(a) to miss")
	}
	if pool.Len() != 1 {
		t.Errorf("expected 1 live token, got %d", pool.Len())
	}
}

func TestPool_EachOrderSurvivesRemoval(t *testing.T) {
	pool := NewPool(1)
	for i, tok := range []string{"a", "b", "c", "d"} {
		pool.Add(tok, []float64{float64(i)})
	}
	pool.Take("b")

	var got []string
	pool.Each(func(token string, _ []float64) bool {
		got = append(got, token)
		return true
	})

	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestPool_EachStopsEarly(t *testing.T) {
	pool := NewPool(1)
	pool.Add("a", []float64{0})
	pool.Add("b", []float64{1})

	count := 0
	pool.Each(func(string, []float64) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("expected iteration to stop after 1 token, got %d", count)
	}
}

func TestPool_Alias(t *testing.T) {
	pool := NewPool(2)
	pool.Add("-", []float64{0.5, 0.6})

	if !pool.Alias("@-@", "-") {
		t.Fatal("expected alias to succeed")
	}
	vec, ok := pool.Lookup("@-@")
	if !ok || vec[0] != 0.5 || vec[1] != 0.6 {
		t.Fatalf("expected aliased vector, got %v, %v", vec, ok)
	}

	// The alias owns a copy, not the source's backing array.
	vec[0] = 9
	src, _ := pool.Lookup("-")
	if src[0] != 0.5 {
		t.Error("alias mutation leaked into source vector")
	}

	if pool.Alias("@-@", "-") {
		t.Error("expected re-alias of existing token to fail")
	}
	if pool.Alias("x", "missing") {
		t.Error("expected alias of missing source to fail")
	}
}

func TestResolveSpecials(t *testing.T) {
	pool := NewPool(1)
	pool.Add("<s>", []float64{1})
	pool.Add("</S>", []float64{2}) // uppercase variant
	pool.Add("hello", []float64{3})

	resolved := ResolveSpecials(pool)

	if vec, ok := resolved["<s>"]; !ok || vec[0] != 1 {
		t.Errorf("expected <s> resolved from exact form, got %v", resolved)
	}
	if vec, ok := resolved["</s>"]; !ok || vec[0] != 2 {
		t.Errorf("expected </s> resolved from uppercase form, got %v", resolved)
	}
	if _, ok := resolved["<unk>"]; ok {
		t.Error("expected absent <unk> to stay unresolved")
	}

	// Resolved tokens are consumed; ordinary tokens stay.
	if _, ok := pool.Lookup("<s>"); ok {
		t.Error("expected <s> removed from pool")
	}
	if _, ok := pool.Lookup("hello"); !ok {
		t.Error("expected 'hello' to remain in pool")
	}
	if pool.Len() != 1 {
		t.Errorf("expected 1 live token, got %d", pool.Len())
	}
}
