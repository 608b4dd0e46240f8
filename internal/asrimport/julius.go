package asrimport

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/jamesohortle/japanese-utilities/internal/store"
)

// inputListen opens the block Julius writes for each new input.
const inputListen = `<INPUT STATUS="LISTEN" `

// Julius writes class IDs such as "<s>" unescaped inside attribute values.
var classIDEscaper = strings.NewReplacer(`"<s>"`, `"&lt;s&gt;"`, `"</s>"`, `"&lt;/s&gt;"`)

type juliusChunk struct {
	Recognitions []juliusRecogOut `xml:"RECOGOUT"`
}

type juliusRecogOut struct {
	Sentences []juliusSentence `xml:"SHYPO"`
}

type juliusSentence struct {
	Rank  string       `xml:"RANK,attr"`
	Words []juliusWord `xml:"WHYPO"`
}

type juliusWord struct {
	Word string `xml:"WORD,attr"`
}

// ReadJulius splits a module-mode output stream into one sentence per input.
// Inputs Julius failed to recognize yield an empty sentence so positions stay
// aligned with the file list. Output before the first input is ignored.
func ReadJulius(r io.Reader) ([]string, error) {
	var (
		sentences []string
		block     strings.Builder
		open      bool
	)
	flush := func() error {
		if !open {
			return nil
		}
		sentence, err := ParseJuliusBlock(block.String())
		if err != nil {
			return fmt.Errorf("input %d: %w", len(sentences)+1, err)
		}
		sentences = append(sentences, sentence)
		block.Reset()
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, inputListen) {
			if err := flush(); err != nil {
				return nil, err
			}
			open = true
		}
		if open {
			block.WriteString(line)
			block.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read julius output: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return sentences, nil
}

// ParseJuliusBlock returns the rank-1 sentence hypothesis of one input block,
// its words concatenated. A block without a recognition result yields "".
func ParseJuliusBlock(block string) (string, error) {
	if strings.TrimSpace(block) == "" {
		return "", nil
	}
	var chunk juliusChunk
	if err := xml.Unmarshal([]byte("<CHUNK>\n"+repairJulius(block)+"\n</CHUNK>"), &chunk); err != nil {
		return "", fmt.Errorf("parse julius xml: %w", err)
	}
	if len(chunk.Recognitions) == 0 {
		return "", nil
	}
	for _, sentence := range chunk.Recognitions[0].Sentences {
		if sentence.Rank != "1" {
			continue
		}
		var b strings.Builder
		for _, w := range sentence.Words {
			b.WriteString(w.Word)
		}
		return b.String(), nil
	}
	return "", nil
}

// repairJulius escapes class IDs and drops the "." terminator lines module
// mode writes after every message.
func repairJulius(block string) string {
	block = classIDEscaper.Replace(block)
	lines := strings.Split(block, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line == "." || line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Pair zips file paths with recognized sentences in order. Extra entries on
// either side are dropped; the second result reports how many.
func Pair(paths, sentences []string) ([]store.Transcription, int) {
	n := min(len(paths), len(sentences))
	out := make([]store.Transcription, n)
	for i := range n {
		out[i] = store.Transcription{Path: paths[i], Text: sentences[i]}
	}
	return out, max(len(paths), len(sentences)) - n
}
