package candidates

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jamesohortle/japanese-utilities/internal/textutil"
)

var blankLines = regexp.MustCompile(`\n{2,}`)

// LoadSource reads a source text file, decodes it from the named encoding,
// and collapses runs of blank lines into a single newline.
func LoadSource(path, encoding string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source text: %w", err)
	}
	text, err := textutil.DecodeText(data, encoding)
	if err != nil {
		return "", err
	}
	return blankLines.ReplaceAllString(strings.TrimSpace(text), "\n"), nil
}
