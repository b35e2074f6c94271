package util

import "testing"

func TestNormalizeSymbol(t *testing.T) {
	cases := map[string]string{
		" btc ":   "BTC",
		"EthUsdt": "ETHUSDT",
		"":        "",
	}
	for in, want := range cases {
		if got := NormalizeSymbol(in); got != want {
			t.Errorf("NormalizeSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseSymbols(t *testing.T) {
	got := ParseSymbols("btc, eth,,sol ")
	want := []string{"BTC", "ETH", "SOL"}
	if len(got) != len(want) {
		t.Fatalf("ParseSymbols returned %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseSymbols[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if res := ParseSymbols(""); len(res) != 0 {
		t.Errorf("ParseSymbols(\"\") = %v, want empty", res)
	}
}
