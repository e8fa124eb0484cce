package utils

import "strings"

func FindStrInSlice(a []string, s string) int {
	for i, v := range a {
		if v == s {
			return i
		}
	}
	return -1
}

// MaskArgs returns a copy of args where the value following any of the given flags is
// replaced with "*****".
func MaskArgs(args []string, secretFlags ...string) []string {
	ret := make([]string, len(args))
	copy(ret, args)
	for i := 0; i < len(ret)-1; i++ {
		if FindStrInSlice(secretFlags, ret[i]) != -1 {
			ret[i+1] = "*****"
			i++
		}
	}
	return ret
}

func ShellJoin(args []string) string {
	return strings.Join(args, " ")
}
