package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."

	// contextLines is the number of unchanged lines kept around each change.
	contextLines = 3
)

type line struct {
	op   byte
	text string
}

// GenerateUnifiedDiff generates a unified diff comparing expected and actual content line by line.
// Returns empty string if content is identical.
// Truncates diffs exceeding 10,000 lines with a truncation marker.
func GenerateUnifiedDiff(expected, actual []byte, expectedLabel, actualLabel string) string {
	if bytes.Equal(expected, actual) {
		return ""
	}

	lines := lineDiff(string(expected), string(actual))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", expectedLabel)
	fmt.Fprintf(&buf, "+++ %s\n", actualLabel)
	writeHunks(&buf, lines)

	// Check line count and truncate if necessary
	result := buf.String()
	split := strings.Split(result, "\n")
	if len(split) > maxDiffLines {
		truncated := strings.Join(split[:maxDiffLines], "\n")
		return truncated + "\n" + truncateMessage + "\n"
	}

	return result
}

func lineDiff(expected, actual string) []line {
	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	var out []line
	for _, d := range diffs {
		var op byte
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = ' '
		case diffmatchpatch.DiffDelete:
			op = '-'
		case diffmatchpatch.DiffInsert:
			op = '+'
		}
		for _, text := range splitLines(d.Text) {
			out = append(out, line{op: op, text: text})
		}
	}
	return out
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func writeHunks(buf *bytes.Buffer, lines []line) {
	// oldAt[i] and newAt[i] count the lines of each side consumed before lines[i].
	oldAt := make([]int, len(lines)+1)
	newAt := make([]int, len(lines)+1)
	for i, l := range lines {
		oldAt[i+1], newAt[i+1] = oldAt[i], newAt[i]
		if l.op != '+' {
			oldAt[i+1]++
		}
		if l.op != '-' {
			newAt[i+1]++
		}
	}

	for i := 0; i < len(lines); {
		if lines[i].op == ' ' {
			i++
			continue
		}

		start := max(0, i-contextLines)
		last := i
		for j := i; j < len(lines); j++ {
			if lines[j].op != ' ' {
				last = j
			} else if j-last > 2*contextLines {
				break
			}
		}
		stop := min(len(lines), last+contextLines+1)

		oldCount := oldAt[stop] - oldAt[start]
		newCount := newAt[stop] - newAt[start]
		fmt.Fprintf(buf, "@@ -%s +%s @@\n", hunkRange(oldAt[start], oldCount), hunkRange(newAt[start], newCount))
		for _, l := range lines[start:stop] {
			buf.WriteByte(l.op)
			buf.WriteString(l.text)
			buf.WriteByte('\n')
		}

		i = stop
	}
}

func hunkRange(before, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", before)
	}
	return fmt.Sprintf("%d,%d", before+1, count)
}
