package config

import "strings"

// resolve は nil でない最後の値を返します。すべて nil なら def。
func resolve[T any](def T, values ...*T) T {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

func ResolveString(def string, values ...*string) string { return resolve(def, values...) }

func ResolveInt(def int, values ...*int) int { return resolve(def, values...) }

func ResolveBool(def bool, values ...*bool) bool { return resolve(def, values...) }

// ResolveStrings treats an explicitly empty list as "clear".
func ResolveStrings(def []string, values ...*[]string) []string {
	result := cloneStrings(def)
	for _, v := range values {
		if v == nil {
			continue
		}
		if len(*v) == 0 {
			result = []string{}
			continue
		}
		result = cloneStrings(*v)
	}
	return result
}

func ResolveAndTrim(def string, values ...*string) string {
	return strings.TrimSpace(ResolveString(def, values...))
}
