package textutil

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// ASCII punctuation, CJK punctuation, quotation marks, and sentence-terminal
// marks from many scripts. None of these overlap with ASCII whitespace.
const (
	asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
	cjkPunctuation   = "！＂＃＄％＆＇（）＊＋，－．／：；＜＝＞？＠［＼］＾＿｀｛｜｝～、。〃〈〉《》「」『』【】〔〕〖〗〘〙〚〛〜〝〞〟｟｠｡｢｣､･゠〰⦅⦆"
	quotationMarks   = "«‹»›„‚“‟‘‛”’❛❜\u275F❝❞❮❯⹂〝〞〟＂"
	terminalMarks    = "\u002E\u0964\u0589\u3002\u06d4\u2cf9\u0701\u1362\u166e\u1803\u2cfe\uA4ff\ua60e\ua6f3\u083d\u1b5f" +
		"\u002c\u060c\u3001\u055d\u07f8\u1363\u1808\u14fe\ua60d\ua6f5\u1b5e\u003f\u037e\u00bf\u061f\u055e" +
		"\u0706\u1367\u2cfa\u2cfb\ua60f\u16f7\U00011143\uaaf1\u0021\u00a1\u07f9\u1944\u00b7\U0001039f\U000103d0\U00012470" +
		"\u1361\u1680\U0001091f\u0830\u2014\u2013\u2012\u2010\u2043\ufe63\uff0d\u058a\u1806\u003b\u0387\u061b" +
		"\u1364\u16f6\u2024\u003a\u1365\ua6f4\u1b5d\u2026\ufe19\u0eaf\u00ab\u2039\u00bb\u203a\u201e\u201a" +
		"\u201c\u201f\u2018\u201b\u201d\u2019\u0022"
)

// punctuationBlocks covers the general punctuation and supplemental
// punctuation blocks wholesale.
var punctuationBlocks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2010, Hi: 0x2027, Stride: 1},
		{Lo: 0x2030, Hi: 0x205E, Stride: 1},
		{Lo: 0x2E00, Hi: 0x2E4F, Stride: 1},
	},
}

// Punctuation is the default punctuation class replaced by spaces.
var Punctuation = rangetable.Merge(
	rangetable.New([]rune(asciiPunctuation+cjkPunctuation+quotationMarks+terminalMarks)...),
	punctuationBlocks,
)

// JapaneseAlphabet is the default allow-list: printable ASCII, hiragana,
// katakana, CJK ideographs (extension A, unified, compatibility), and 々.
var JapaneseAlphabet = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0020, Hi: 0x007F, Stride: 1},
		{Lo: 0x3005, Hi: 0x3005, Stride: 1},
		{Lo: 0x3041, Hi: 0x3096, Stride: 1},
		{Lo: 0x30A0, Hi: 0x30FF, Stride: 1},
		{Lo: 0x3400, Hi: 0x4DB5, Stride: 1},
		{Lo: 0x4E00, Hi: 0x9FCB, Stride: 1},
		{Lo: 0xF900, Hi: 0xFA6A, Stride: 1},
	},
	LatinOffset: 1,
}

// IsPunctuation reports whether r belongs to the default punctuation class.
func IsPunctuation(r rune) bool {
	return unicode.Is(Punctuation, r)
}
