package utils

import (
	"bytes"
	"strings"
)

type Row []string

type PrettyTable struct {
	header Row
	rows   []Row
}

func (t *PrettyTable) SetHeader(c ...string) {
	t.header = c
}

func (t *PrettyTable) AddRow(c ...string) {
	t.rows = append(t.rows, c)
}

func (t *PrettyTable) allRows() []Row {
	var ret []Row
	if t.header != nil {
		ret = append(ret, t.header)
	}
	return append(ret, t.rows...)
}

// Render renders the table with columns limited to limitWidths. Columns without limit share
// the space left in totalWidth equally. Cells exceeding their column are wrapped.
func (t *PrettyTable) Render(limitWidths []int, totalWidth int) string {
	rows := t.allRows()
	if len(rows) == 0 {
		return ""
	}
	cols := len(rows[0])

	maxWidth := func(col int, maxW int) int {
		w := 0
		for _, l := range rows {
			if len(l[col]) > w {
				w = len(l[col])
			}
		}
		if maxW != -1 && maxW < w {
			w = maxW
		}
		return w
	}
	subStr := func(str string, s int, e int) string {
		if s > len(str) {
			s = len(str)
		}
		if e > len(str) {
			e = len(str)
		}
		return str[s:e]
	}

	widths := make([]int, cols)
	widthSum := 0
	unlimited := 0
	for i := 0; i < cols; i++ {
		if i < len(limitWidths) {
			widths[i] = maxWidth(i, limitWidths[i])
			widthSum += widths[i]
		} else {
			unlimited++
		}
	}
	if unlimited != 0 {
		remaining := (totalWidth - widthSum - (cols-1)*3 - 4) / unlimited
		for i := len(limitWidths); i < cols; i++ {
			widths[i] = maxWidth(i, -1)
			if remaining > 0 && widths[i] > remaining {
				widths[i] = remaining
			}
			if widths[i] == 0 {
				widths[i] = 1
			}
		}
	}

	hsep := "+-"
	for i := 0; i < cols; i++ {
		hsep += strings.Repeat("-", widths[i])
		if i != cols-1 {
			hsep += "-+-"
		}
	}
	hsep += "-+\n"

	buf := bytes.NewBuffer(nil)
	buf.WriteString(hsep)
	pos := make([]int, cols)
	for ri, l := range rows {
		for i := 0; i < cols; i++ {
			pos[i] = 0
		}

		first := true
		for {
			anyLess := false
			for i := 0; i < cols; i++ {
				if pos[i] < len(l[i]) {
					anyLess = true
				}
			}
			if !anyLess && !first {
				break
			}
			first = false

			buf.WriteString("| ")
			for i := 0; i < cols; i++ {
				x := subStr(l[i], pos[i], pos[i]+widths[i])
				newLine := strings.IndexRune(x, '\n')
				if newLine != -1 {
					x = x[:newLine]
					pos[i] += 1
				}
				pos[i] += len(x)
				buf.WriteString(x)
				buf.WriteString(strings.Repeat(" ", widths[i]-len(x)))
				if i != cols-1 {
					buf.WriteString(" | ")
				}
			}
			buf.WriteString(" |\n")
		}
		if ri == 0 || ri == len(rows)-1 || t.header == nil {
			buf.WriteString(hsep)
		}
	}
	return buf.String()
}
