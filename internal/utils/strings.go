package utils

import (
	"reflect"
	"runtime"
	"strings"
)

// DeleteEmptyAndTrim trims every entry and drops the empty ones.
func DeleteEmptyAndTrim(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// SplitAndTrim splits a comma separated list and cleans it with
// DeleteEmptyAndTrim.
func SplitAndTrim(list string) []string {
	return DeleteEmptyAndTrim(strings.Split(list, ","))
}

// FunctionName returns the fully qualified name of fn, or an empty string
// when fn is not a function.
func FunctionName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	return f.Name()
}
