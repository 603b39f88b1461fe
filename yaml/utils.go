package yaml

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// SafeString returns a string which is sufficiently quoted and escaped for YAML.
func SafeString(str string) string {
	str = strings.Replace(str, "\\", "\\\\", -1)
	str = strings.Replace(str, "\"", "\\\"", -1)
	str = strings.Replace(str, "\n", "\\n", -1)
	return "\"" + str + "\""
}

// Float formats a number with the given precision, NaN and infinities use the YAML spelling.
func Float(value float64, prec int) string {
	switch {
	case math.IsNaN(value):
		return ".nan"
	case math.IsInf(value, 1):
		return ".inf"
	case math.IsInf(value, -1):
		return "-.inf"
	}
	return strconv.FormatFloat(value, 'f', prec, 64)
}

// PrintMatrix outputs a possibly ragged integer matrix in YAML text format.
// Columns are right-aligned to the widest value, except the first printed value which is
// left-aligned so that the block keeps the indentation of its first line.
//
// `indent` is the current YAML indentation level - the number of spaces.
// `name` is the name of the corresponding YAML block. If empty, no separate block is created.
func PrintMatrix(writer io.Writer, matrix [][]int, indent int, name string) {
	// determine the maximum length of each value
	width := 1
	for _, row := range matrix {
		for _, val := range row {
			if w := len(strconv.Itoa(val)); w > width {
				width = w
			}
		}
	}
	if name != "" {
		fmt.Fprintf(writer, "%s%s: |-\n", strings.Repeat(" ", indent), SafeString(name))
		indent += 2
	}
	margin := indent - 1
	if margin < 0 {
		margin = 0
	}
	first := true
	for _, row := range matrix {
		fmt.Fprint(writer, strings.Repeat(" ", margin))
		for _, val := range row {
			if !first {
				fmt.Fprintf(writer, " %[1]*[2]d", width, val)
			} else {
				first = false
				fmt.Fprintf(writer, " %d%s", val, strings.Repeat(" ", width-len(strconv.Itoa(val))))
			}
		}
		fmt.Fprintln(writer)
	}
}
