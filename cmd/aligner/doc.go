// Command aligner matches speech recognizer transcriptions of audiobook
// segments to the sentences of their source text.
//
// Every work lives in its own directory under the configured data directory
// and holds a data.db database plus the stripped source text. Typical use:
//
//	aligner import tsv kokoro transcriptions.tsv
//	aligner align kokoro
//	aligner show kokoro
//
// Run "aligner check" to verify the data directory and reading backend.
package main
