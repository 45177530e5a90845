package glossary

import "sort"

// gojuonOrder lists the hiragana syllabary in dictionary order,
// including voiced and semi-voiced rows.
var gojuonOrder = []rune{
	'あ', 'い', 'う', 'え', 'お',
	'か', 'き', 'く', 'け', 'こ', 'が', 'ぎ', 'ぐ', 'げ', 'ご',
	'さ', 'し', 'す', 'せ', 'そ', 'ざ', 'じ', 'ず', 'ぜ', 'ぞ',
	'た', 'ち', 'つ', 'て', 'と', 'だ', 'ぢ', 'づ', 'で', 'ど',
	'な', 'に', 'ぬ', 'ね', 'の',
	'は', 'ひ', 'ふ', 'へ', 'ほ', 'ば', 'び', 'ぶ', 'べ', 'ぼ', 'ぱ', 'ぴ', 'ぷ', 'ぺ', 'ぽ',
	'ま', 'み', 'む', 'め', 'も',
	'や', 'ゆ', 'よ',
	'ら', 'り', 'る', 'れ', 'ろ',
	'わ', 'を', 'ん',
}

var gojuonIndex = func() map[rune]int {
	index := make(map[rune]int, len(gojuonOrder))
	for i, r := range gojuonOrder {
		index[r] = i
	}
	return index
}()

// Entries whose first rune is not in the syllabary sort after all kana.
const gojuonUnknown = 999

func gojuonKey(text string) int {
	if text == "" {
		return gojuonUnknown
	}
	first := []rune(text)[0]
	// Fold katakana onto the hiragana row.
	if first >= 'ァ' && first <= 'ヺ' {
		first -= 0x60
	}
	if idx, ok := gojuonIndex[first]; ok {
		return idx
	}
	return gojuonUnknown
}

// SortGojuon returns the entries ordered by the gojūon position of
// their source term's first kana, with the term itself as tiebreaker.
// The input is not modified.
func SortGojuon(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		ki, kj := gojuonKey(sorted[i].Source), gojuonKey(sorted[j].Source)
		if ki != kj {
			return ki < kj
		}
		return sorted[i].Source < sorted[j].Source
	})
	return sorted
}
