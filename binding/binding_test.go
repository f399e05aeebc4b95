package binding

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func TestInterpolate(t *testing.T) {
	data := decode(t, `{"user":{"name":"Ada"},"bins":[{"id":42},{"id":7.5}],"empty":null}`)
	cases := []struct{ in, want string }{
		{"Hello ${user.name}", "Hello Ada"},
		{"Bin ${bins[0].id} / ${bins[1].id}", "Bin 42 / 7.5"},
		{"${missing}", "${missing}"},
		{"${missing|n/a}", "n/a"},
		{"${user.name|nobody}", "Ada"},
		{"[${empty}]", "[]"},
		{"${bins[9].id|-}", "-"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.in, data); got != tc.want {
			t.Fatalf("%q: got %q want %q", tc.in, got, tc.want)
		}
	}
	if got := Interpolate("${a|fallback}", nil); got != "fallback" {
		t.Fatalf("nil data with fallback: got %q", got)
	}
	if got := Interpolate("${a}", nil); got != "${a}" {
		t.Fatalf("nil data: got %q", got)
	}
}

func TestMissing(t *testing.T) {
	data := decode(t, `{"a":1}`)
	got := Missing("${a} ${b} ${c|x} ${d[0]}", data)
	if !reflect.DeepEqual(got, []string{"b", "d[0]"}) {
		t.Fatalf("got %v", got)
	}
}
