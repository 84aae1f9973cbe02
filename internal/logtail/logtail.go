package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A
// maxLines of zero or less returns every line. A missing file yields no
// lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

var levelPattern = regexp.MustCompile(`level=(debug|info|warning|error|fatal)`)

var levelStyles = map[string]lipgloss.Style{
	"debug":   lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
	"info":    lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")),
	"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
	"error":   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	"fatal":   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
}

// Level returns the logrus level name recorded on line, or "" when the
// line carries none.
func Level(line string) string {
	m := levelPattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

// ColorizeLine highlights the level field of a logrus text line. Lines
// without a level are returned unchanged.
func ColorizeLine(line string) string {
	loc := levelPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return line
	}
	style := levelStyles[line[loc[2]:loc[3]]]
	return line[:loc[0]] + style.Render(line[loc[0]:loc[1]]) + line[loc[1]:]
}

// ColorizeLines applies ColorizeLine to every line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ColorizeLine(line)
	}
	return out
}
