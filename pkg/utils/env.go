package utils

import (
	"fmt"
	log "github.com/sirupsen/logrus"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ParseEnvConfigList returns the value of PREFIX (index -1) and all PREFIX_<n> values.
func ParseEnvConfigList(prefix string) map[int]string {
	ret := make(map[int]string)

	r := regexp.MustCompile(fmt.Sprintf(`^%s_(\d+)$`, prefix))

	for _, e := range os.Environ() {
		eq := strings.Index(e, "=")
		if eq == -1 {
			log.Panicf("unexpected env var %s", e)
		}
		n := e[:eq]
		v := e[eq+1:]

		if n == prefix {
			ret[-1] = v
			continue
		}

		m := r.FindStringSubmatch(n)
		if m == nil {
			continue
		}
		x, _ := strconv.ParseInt(m[1], 10, 32)
		ret[int(x)] = v
	}
	return ret
}
