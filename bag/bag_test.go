package bag

import (
	"errors"
	"reflect"
	"testing"
)

func TestSetKeepsInsertionOrder(t *testing.T) {
	b := New()
	b.Set("zeta", "1")
	b.Set("alpha", "2")
	b.Set("mid", "3")
	b.Set("zeta", "4")

	if got, want := b.Keys(), []string{"zeta", "alpha", "mid"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if v, ok := b.Get("zeta"); !ok || v != "4" {
		t.Fatalf("Get(zeta) = %q, %v", v, ok)
	}
	if b.Len() != 3 {
		t.Fatalf("Len() = %d", b.Len())
	}
}

func TestZeroAndNilBag(t *testing.T) {
	var zero Bag
	zero.Set("k", "v")
	if v, _ := zero.Get("k"); v != "v" {
		t.Fatalf("zero-value bag should accept writes")
	}

	var nilBag *Bag
	if nilBag.Len() != 0 || nilBag.Keys() != nil || len(nilBag.Map()) != 0 {
		t.Fatalf("nil bag should read as empty")
	}
	if _, ok := nilBag.Get("k"); ok {
		t.Fatalf("nil bag Get should miss")
	}
}

func TestFromMapSortsKeys(t *testing.T) {
	b := FromMap(map[string]string{"b": "2", "a": "1", "c": "3"})
	if got := b.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("Keys() = %v", got)
	}
}

func TestEachStopsOnError(t *testing.T) {
	b := New()
	b.Set("a", "1")
	b.Set("b", "2")
	stop := errors.New("stop")
	var seen []string
	err := b.Each(func(k, _ string) error {
		seen = append(seen, k)
		return stop
	})
	if !errors.Is(err, stop) || len(seen) != 1 {
		t.Fatalf("Each err=%v seen=%v", err, seen)
	}
}

func TestDecode(t *testing.T) {
	type user struct {
		Name string `mapstructure:"user_name"`
		Age  int    `mapstructure:"age"`
	}
	b := New()
	b.Set("user_name", "Sleon")
	b.Set("age", "31")

	var u user
	if err := b.Decode(&u); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if u.Name != "Sleon" || u.Age != 31 {
		t.Fatalf("Decode = %+v", u)
	}

	b.Set("unknown", "x")
	if err := b.Decode(&user{}); err == nil {
		t.Fatalf("expected error for unused key")
	}

	m := map[string]string{}
	if err := b.Decode(&m); err != nil || m["unknown"] != "x" {
		t.Fatalf("Decode into map: %v %v", err, m)
	}
}
