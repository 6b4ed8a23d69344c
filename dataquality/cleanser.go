package dataquality

import (
	"regexp"
	"strings"
	"unicode"
)

// Правила очистки меток перед сравнением
// Цепочки повторяют эталонные правила построчно; RE2 не поддерживает
// lookaround, поэтому маскирование цифр с защитой K реализовано сканером
var (
	decimalSeparatorRe = regexp.MustCompile(`(\d)[,.](\d)`)
	splitDigitRunsRe   = regexp.MustCompile(`\b(\d+)\s+(\d+)\b`)
	symbolsRe          = regexp.MustCompile(`[^a-zA-Z0-9\s%]`)
	whitespaceRe       = regexp.MustCompile(`\s+`)

	// Дополнительные свертки единиц измерения для источника CLEAR
	clearCubicRe = regexp.MustCompile(`\bX\s+mX\b`)
	clearLitreRe = regexp.MustCompile(`\bX\s+l\b`)

	// Косметические правила итоговой метки
	finalCubicRe  = regexp.MustCompile(`(?i)\bX\s*mX\b`)
	finalLitreRe  = regexp.MustCompile(`(?i)\s?litre[s]?`)
	finalLitreXRe = regexp.MustCompile(`(?i)\bX\s*l\b`)
	finalZXRe     = regexp.MustCompile(`\bZX\b`)
)

// CleanseLabelCCAP очищает метку источника CCAP
func CleanseLabelCCAP(label string) string {
	if label == "" {
		return ""
	}
	return cleanseCommon(label)
}

// CleanseLabelCLEAR очищает метку источника CLEAR
// Помимо общей цепочки сворачивает замаскированные единицы объема
func CleanseLabelCLEAR(label string) string {
	if label == "" {
		return ""
	}

	label = cleanseCommon(label)
	label = clearCubicRe.ReplaceAllString(label, "xmx")
	label = clearLitreRe.ReplaceAllString(label, "xL")
	return label
}

// cleanseCommon общая цепочка очистки для обоих источников
func cleanseCommon(label string) string {
	label = NormalizeText(label)

	// Убираем десятичные разделители между цифрами: "1,5" -> "15"
	// Повторяем до стабилизации, так как замены могут смыкать новые пары
	for {
		next := decimalSeparatorRe.ReplaceAllString(label, "$1$2")
		if next == label {
			break
		}
		label = next
	}

	// Склеиваем разорванные цифровые прогоны: "10 000" -> "10000"
	label = splitDigitRunsRe.ReplaceAllString(label, "$1$2")

	// Маскируем цифровые прогоны
	label = maskDigitRuns(label)

	// Убираем все символы кроме букв, цифр, пробелов и процента
	label = symbolsRe.ReplaceAllString(label, " ")

	label = whitespaceRe.ReplaceAllString(label, " ")
	return strings.TrimSpace(label)
}

// maskDigitRuns заменяет цифровые прогоны на X
// Цифра сразу после K сохраняется (коды вида K7), остаток прогона маскируется
func maskDigitRuns(text string) string {
	runes := []rune(text)
	var builder strings.Builder

	i := 0
	for i < len(runes) {
		if !unicode.IsDigit(runes[i]) {
			builder.WriteRune(runes[i])
			i++
			continue
		}

		start := i
		for i < len(runes) && unicode.IsDigit(runes[i]) {
			i++
		}

		if start > 0 && runes[start-1] == 'K' {
			builder.WriteRune(runes[start])
			if i-start > 1 {
				builder.WriteRune('X')
			}
		} else {
			builder.WriteRune('X')
		}
	}

	return builder.String()
}

// PostprocessLabel применяет косметические правила к итоговой метке:
// нормализация единиц объема, удаление осиротевших токенов
func PostprocessLabel(label string) string {
	if label == "" {
		return ""
	}

	label = finalCubicRe.ReplaceAllString(label, "Xm3")
	label = finalLitreRe.ReplaceAllString(label, " L")
	label = finalLitreXRe.ReplaceAllString(label, "XL")
	label = finalZXRe.ReplaceAllString(label, "")
	return strings.TrimSpace(label)
}
