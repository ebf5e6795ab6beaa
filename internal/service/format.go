package service

import (
	"fmt"
	"strings"
)

// FormatNames приводит сырое поле имени к отображаемому виду.
// Имена разделяются запятыми, пустые отбрасываются:
//
//	1 имя:  "Alice"
//	2 имени: "Alice & Bob"
//	3+:     "Alice, Bob & Carol"
//
// Пустой ввод превращается в "Unknown".
func FormatNames(raw string) string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			names = append(names, s)
		}
	}

	switch len(names) {
	case 0:
		return "Unknown"
	case 1:
		return names[0]
	case 2:
		return names[0] + " & " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " & " + names[len(names)-1]
	}
}

// Initials выводит инициалы из УЖЕ отформатированного имени.
// Для имён с разделителем " & " — первая буква первого сегмента плюс
// первая буква первого слова последнего сегмента. Для одиночного имени —
// первые буквы первого и последнего слова.
func Initials(name string) string {
	if strings.Contains(name, " & ") {
		parts := strings.Split(name, " & ")

		first := "?"
		if s := strings.TrimSpace(parts[0]); s != "" {
			first = upperFirst(s)
		}
		last := "?"
		if words := strings.Fields(parts[len(parts)-1]); len(words) > 0 {
			last = upperFirst(words[0])
		}
		return first + last
	}

	// запятые без " & " после форматирования не встречаются, но обрабатываем
	var words []string
	if strings.Contains(name, ",") {
		words = strings.Fields(strings.TrimSpace(strings.Split(name, ",")[0]))
	} else {
		words = strings.Fields(name)
	}

	switch len(words) {
	case 0:
		return "?"
	case 1:
		return upperFirst(words[0])
	default:
		return upperFirst(words[0]) + upperFirst(words[len(words)-1])
	}
}

// ColorHint возвращает детерминированный оттенок HSL для имени.
// Скользящий 32-битный хеш h = h*31 + code, оттенок — остаток по модулю 360.
func ColorHint(name string) string {
	var h uint32
	for _, r := range name {
		h = h*31 + uint32(r)
	}
	return fmt.Sprintf("hsl(%d 60%% 90%%)", h%360)
}

// upperFirst возвращает первую руну строки в верхнем регистре.
func upperFirst(s string) string {
	for _, r := range s {
		return strings.ToUpper(string(r))
	}
	return "?"
}
