package folio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigFormat(t *testing.T) {
	cfg := DefaultConfig("COT")

	assert.Equal(t, "COT-00001", cfg.Format(1))
	assert.Equal(t, "COT-00542", cfg.Format(542))
	assert.Equal(t, "COT-123456", cfg.Format(123456))

	// Zero pad width falls back to the default.
	assert.Equal(t, "VEH-00007", Config{Prefix: "VEH"}.Format(7))
}

func TestParseNumber(t *testing.T) {
	for _, prefix := range []string{"COT", "FLT", "VEH", "DRV", "CLI"} {
		cfg := DefaultConfig(prefix)
		for _, n := range []int64{1, 99, 100000} {
			assert.Equal(t, n, ParseNumber(cfg.Format(n)), "prefix %s n %d", prefix, n)
		}
	}

	assert.Equal(t, int64(-1), ParseNumber(""))
	assert.Equal(t, int64(-1), ParseNumber("no-digits-x"))
	assert.Equal(t, int64(-1), ParseNumber("COT00001"))
}
