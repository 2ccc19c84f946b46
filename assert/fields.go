package assert

import (
	"fmt"
	"sort"
	"strings"
)

// Fields the details of a test case which will be printed next to a failed assertion
type Fields map[string]interface{}

func (f Fields) String() string {
	if len(f) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, fmt.Sprintf("%v:%v", k, v))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
