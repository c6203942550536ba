package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrryniu/invoice-ingest/internal/extract"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1 234,56 zł", 1234.56},
		{"1234.56", 1234.56},
		{"300,00", 300.0},
		{"369,00 PLN", 369.0},
		{"-50,25", -50.25},
		{"1234", 1234.0},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := extract.ParseAmount(tc.in)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 0.0001)
		})
	}
}

func TestParseAmount_Rejects(t *testing.T) {
	for _, in := range []string{"abc", "", "zł", "1.234,56", ",,", "--"} {
		t.Run(in, func(t *testing.T) {
			_, err := extract.ParseAmount(in)
			assert.Error(t, err, "expected %q to be rejected, not parsed as zero", in)
		})
	}
}

func TestNormalizeNIP(t *testing.T) {
	nip, ok := extract.NormalizeNIP("123-456-32-18")
	require.True(t, ok)
	assert.Equal(t, "1234563218", nip)

	_, ok = extract.NormalizeNIP("123-456-78-9") // nine digits
	assert.False(t, ok)

	_, ok = extract.NormalizeNIP("12345678901") // eleven digits
	assert.False(t, ok)

	_, ok = extract.NormalizeNIP("PL 1234563218")
	assert.True(t, ok, "country prefix is stripped with the other non-digits")
}

func TestScore(t *testing.T) {
	assert.Zero(t, extract.Score(0, 9))
	assert.Zero(t, extract.Score(3, 0))
	assert.InDelta(t, 1.0/3.0, extract.Score(3, 9), 0.0001)
	assert.Equal(t, 1.0, extract.Score(9, 9))
	assert.Equal(t, 1.0, extract.Score(12, 9), "score is clamped to 1")
}
