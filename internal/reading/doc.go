// Package reading renders text as a pronunciation string for phonetic
// comparison.
//
// Two backends are provided. Kana folds katakana onto hiragana in process and
// leaves ideographs alone, which is enough when the recognizer already emits
// kana-heavy output. Mecab shells out to a MeCab install in yomi mode and
// batches every text of a call over a single stdin stream. Cache memoizes any
// backend and is safe for concurrent use by the workflow's workers.
//
// Readings are treated as noisy: nothing here promises that a reading maps
// back onto the characters it came from.
package reading
