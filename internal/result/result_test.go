package result

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"qc/internal/models"
)

var (
	errLeft  = &models.Error{Kind: models.KindPasswordNotSet}
	errRight = &models.Error{Kind: models.KindNetworkNotSet}
)

func TestMapComposition(t *testing.T) {
	f := func(x int) int { return x + 3 }
	g := func(x int) string { return strconv.Itoa(x * 2) }
	for _, a := range []int{-4, 0, 1, 99} {
		left := Map(Map(Ok(a), f), g)
		right := Map(Ok(a), func(x int) string { return g(f(x)) })
		lv, _ := left.Value()
		rv, _ := right.Value()
		if diff := cmp.Diff(rv, lv); diff != "" {
			t.Fatalf("map composition mismatch for %d (-want +got):\n%s", a, diff)
		}
	}
}

func TestMapSkipsFunctionOnFailure(t *testing.T) {
	called := false
	r := Map(Fail[int](errLeft), func(x int) int {
		called = true
		return x
	})
	if called {
		t.Fatalf("map invoked f on a failure")
	}
	if r.Err() != errLeft {
		t.Fatalf("expected error to propagate unchanged, got %v", r.Err())
	}
}

func TestFlatMapAssociativity(t *testing.T) {
	f := func(x int) Result[int] {
		if x < 0 {
			return Fail[int](errLeft)
		}
		return Ok(x * 10)
	}
	g := func(x int) Result[string] {
		if x > 100 {
			return Fail[string](errRight)
		}
		return Ok(fmt.Sprint(x))
	}
	for _, a := range []int{-1, 0, 5, 50} {
		left := FlatMap(FlatMap(Ok(a), f), g)
		right := FlatMap(Ok(a), func(x int) Result[string] { return FlatMap(f(x), g) })
		lv, lok := left.Value()
		rv, rok := right.Value()
		if lok != rok || lv != rv || left.Err() != right.Err() {
			t.Fatalf("flatMap not associative for %d: (%q,%v,%v) vs (%q,%v,%v)", a, lv, lok, left.Err(), rv, rok, right.Err())
		}
	}
}

func TestFlatMapShortCircuits(t *testing.T) {
	calls := 0
	r := FlatMap(Fail[string](errLeft), func(s string) Result[int] {
		calls++
		return Ok(len(s))
	})
	if calls != 0 {
		t.Fatalf("flatMap invoked f %d times on a failure", calls)
	}
	if !errors.Is(r.Err(), models.ErrPasswordNotSet) {
		t.Fatalf("expected password error, got %v", r.Err())
	}
}

func TestZip(t *testing.T) {
	got, ok := Zip(Ok("secret"), Ok("corp")).Value()
	if !ok {
		t.Fatalf("expected success when both inputs succeed")
	}
	want := Pair[string, string]{First: "secret", Second: "corp"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("zip mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		name string
		a    Result[string]
		b    Result[string]
		want *models.Error
	}{
		{name: "left fails", a: Fail[string](errLeft), b: Ok("v"), want: errLeft},
		{name: "right fails", a: Ok("v"), b: Fail[string](errLeft), want: errLeft},
		{name: "both fail", a: Fail[string](errLeft), b: Fail[string](errRight), want: errLeft},
		{name: "both fail reversed", a: Fail[string](errRight), b: Fail[string](errLeft), want: errRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Zip(tt.a, tt.b)
			if r.IsOk() {
				t.Fatalf("expected failure")
			}
			if r.Err() != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, r.Err())
			}
		})
	}
}

func TestFromError(t *testing.T) {
	r := FromError(3, nil, models.KindStorage)
	if v, ok := r.Value(); !ok || v != 3 {
		t.Fatalf("expected Ok(3), got %v %v", v, r.Err())
	}

	plain := errors.New("denied")
	r = FromError(0, plain, models.KindStorage)
	if r.Err().Kind != models.KindStorage || !errors.Is(r.Err(), plain) {
		t.Fatalf("expected wrapped storage error, got %v", r.Err())
	}

	r = FromError(0, fmt.Errorf("outer: %w", errRight), models.KindStorage)
	if r.Err() != errRight {
		t.Fatalf("expected taxonomy error to pass through, got %v", r.Err())
	}
}

func TestFailNilStillFails(t *testing.T) {
	r := Fail[int](nil)
	if r.IsOk() {
		t.Fatalf("expected failure for nil error")
	}
	if _, err := r.Unpack(); err == nil {
		t.Fatalf("expected Unpack to return an error")
	}
}

func TestMatch(t *testing.T) {
	render := func(r Result[int]) string {
		return Match(r, strconv.Itoa, func(e *models.Error) string { return "error: " + e.Error() })
	}
	if got := render(Ok(7)); got != "7" {
		t.Fatalf("expected 7, got %q", got)
	}
	if got := render(Fail[int](errLeft)); got != "error: password not set" {
		t.Fatalf("unexpected failure rendering %q", got)
	}
}
