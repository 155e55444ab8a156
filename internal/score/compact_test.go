package score

import (
	"testing"
)

var compactTests = []struct {
	in  []Press
	out []PressesCompact
}{
	{[]Press{}, []PressesCompact{}},
	{[]Press{{Tick: 0, Key: 'a'}, {Tick: 3, Key: 's'}}, []PressesCompact{
		{Key: 'a', Ticks: []int{0}},
		{Key: 's', Ticks: []int{3}},
	}},
	{[]Press{{Tick: 1, Key: 'h'}, {Tick: 1, Key: 'a'}, {Tick: 4, Key: 'h'}}, []PressesCompact{
		{Key: 'a', Ticks: []int{1}},
		{Key: 'h', Ticks: []int{1, 4}},
	}},
}

func TestCompactPresses(t *testing.T) {
	equal := func(p, q []PressesCompact) bool {
		if len(p) != len(q) {
			return false
		}
		for i := 0; i < len(p); i++ {
			pi, qi := p[i], q[i]
			if pi.Key != qi.Key {
				return false
			}
			if len(pi.Ticks) != len(qi.Ticks) {
				return false
			}
			for j := 0; j < len(pi.Ticks); j++ {
				if pi.Ticks[j] != qi.Ticks[j] {
					return false
				}
			}
		}
		return true
	}

	for _, test := range compactTests {
		out := compactPresses(test.in)
		if !equal(out, test.out) {
			t.Log("out     ", out)
			t.Log("expected", test.out)
			t.Fail()
		}
	}
}

func TestUncompactPresses(t *testing.T) {
	expected := [][]Press{
		{},
		{{Tick: 0, Key: 'a'}, {Tick: 3, Key: 's'}},
		{{Tick: 1, Key: 'a'}, {Tick: 1, Key: 'h'}, {Tick: 4, Key: 'h'}},
	}
	for i, test := range compactTests {
		out := uncompactPresses(test.out)
		if len(out) != len(expected[i]) {
			t.Fatalf("%d: got %v", i, out)
		}
		for j := range out {
			if out[j] != expected[i][j] {
				t.Log("out     ", out)
				t.Log("expected", expected[i])
				t.Fail()
				break
			}
		}
	}
}
