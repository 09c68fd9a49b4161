package display

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// lcdROM сводит текст к печатному ASCII, который есть в знакогенераторе HD44780:
// диакритика снимается, остальное заменяется на '?'.
func lcdROM() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
		runes.Map(func(r rune) rune {
			if r < 0x20 || r > 0x7E {
				return '?'
			}
			return r
		}),
	)
}

// ToASCII переводит строку в набор символов дисплея.
func ToASCII(s string) string {
	out, _, err := transform.String(lcdROM(), s)
	if err != nil {
		return strings.Map(func(r rune) rune {
			if r < 0x20 || r > 0x7E {
				return '?'
			}
			return r
		}, s)
	}
	return out
}

// Fit приводит строку к ровно width символам: обрезает или дополняет пробелами.
func Fit(s string, width int) string {
	s = ToASCII(s)
	if len(s) > width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Wrap разбивает сообщение на две строки по словам.
// Слово длиннее строки режется; не поместившийся остаток отбрасывается.
func Wrap(msg string, width int) (string, string) {
	words := strings.Fields(ToASCII(msg))
	var lines [2]string
	line := 0
	for _, w := range words {
		for line < 2 {
			cur := lines[line]
			switch {
			case cur == "" && len(w) <= width:
				lines[line] = w
			case cur != "" && len(cur)+1+len(w) <= width:
				lines[line] = cur + " " + w
			case cur == "":
				lines[line] = w[:width]
				w = w[width:]
				line++
				continue
			default:
				line++
				continue
			}
			w = ""
			break
		}
		if line >= 2 {
			break
		}
	}
	return lines[0], lines[1]
}
