package wizard

import "strings"

// choiceList is a bounded single-choice list.
type choiceList struct {
	labels []string
	cursor int
}

func newChoiceList(labels []string, cursor int) choiceList {
	if cursor < 0 || cursor >= len(labels) {
		cursor = 0
	}
	return choiceList{labels: labels, cursor: cursor}
}

// indexOf returns the position of label, or 0 when it is absent.
func indexOf(labels []string, label string) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return 0
}

func (l choiceList) move(key string) choiceList {
	switch key {
	case "up", "k", "shift+tab":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j", "tab":
		if l.cursor < len(l.labels)-1 {
			l.cursor++
		}
	}
	return l
}

func (l choiceList) selected() string {
	if len(l.labels) == 0 {
		return ""
	}
	return l.labels[l.cursor]
}

func (l choiceList) render(b *strings.Builder) {
	for i, label := range l.labels {
		if i == l.cursor {
			b.WriteString(selectedStyle.Render("> " + label))
		} else {
			b.WriteString("  " + label)
		}
		b.WriteString("\n")
	}
}
