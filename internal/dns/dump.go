package dns

import (
	"fmt"
	"strings"
)

// DumpHex renders a packet as a 16-bytes-per-line hex dump for the
// query-inspection CLI and debug logging.
func DumpHex(packet []byte) string {
	var b strings.Builder
	b.Grow(len(packet) * 3)
	for i, by := range packet {
		if i > 0 {
			if i%16 == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		fmt.Fprintf(&b, "%02x", by)
	}
	return b.String()
}
