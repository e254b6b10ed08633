package metrics

import (
	"bytes"
	"fmt"

	"github.com/prometheus/common/expfmt"
)

// DumpText renders every metric in the widget registry in Prometheus
// text exposition format. The terminal adapter prints this on demand
// since the widget exposes no scrape endpoint.
func DumpText() (string, error) {
	families, err := customRegistry.Gather()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGatherFailed, err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return "", fmt.Errorf("%w: %v", ErrGatherFailed, err)
		}
	}
	return buf.String(), nil
}
