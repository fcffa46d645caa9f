package editor

import "sort"

// lettersFor derives the display letter for each answer position from its
// index value's rank among the unique values present. Duplicate values
// collapse into one letter slot. values must already be sorted ascending.
func lettersFor(values []int) []string {
	unique := make([]int, 0, len(values))
	seen := make(map[int]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	sort.Ints(unique)

	rank := make(map[int]int, len(unique))
	for i, v := range unique {
		rank[v] = i
	}

	letters := make([]string, len(values))
	for i, v := range values {
		letters[i] = letterForRank(rank[v])
	}
	return letters
}

// letterForRank maps 0→A … 25→Z, then 26→AA, 27→AB and so on
// (bijective base 26).
func letterForRank(rank int) string {
	n := rank + 1
	var buf []byte
	for n > 0 {
		n--
		buf = append([]byte{byte('A' + n%26)}, buf...)
		n /= 26
	}
	return string(buf)
}
