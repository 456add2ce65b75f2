package extract

import "strings"

type Job struct {
	LocalPath string
	FileName  string
	MIMEType  string
	FileSize  int64
}

type Result struct {
	// Text holds the extracted lines joined with "\n". Blank or
	// whitespace-only lines never survive extraction.
	Text      string
	Method    string
	FileType  string
	PageCount int
	WordCount int
	CharCount int
}

func BuildCounts(text string) (wordCount int, charCount int) {
	charCount = len([]rune(text))
	wordCount = 0
	inWord := false
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' {
			if inWord {
				wordCount++
				inWord = false
			}
			continue
		}
		inWord = true
	}
	if inWord {
		wordCount++
	}
	return
}

// JoinLines splits raw text on newlines, trims each line, drops the blank
// ones, and rejoins the survivors in order.
func JoinLines(raw string) string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
