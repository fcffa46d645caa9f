package editor

import "testing"

func TestLetterForRank(t *testing.T) {
	cases := []struct {
		rank int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, c := range cases {
		if got := letterForRank(c.rank); got != c.want {
			t.Fatalf("rank %d: expected %q, got %q", c.rank, c.want, got)
		}
	}
}

func TestLettersForCollapsesDuplicates(t *testing.T) {
	got := lettersFor([]int{1, 1, 2, 5, 5, 9})
	want := []string{"A", "A", "B", "C", "C", "D"}
	if len(got) != len(want) {
		t.Fatalf("expected %d letters, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
