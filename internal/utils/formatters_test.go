package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPercent(t *testing.T) {
	require.Equal(t, "12.0%", FormatPercent(12))
	require.Equal(t, "-5.0%", FormatPercent(-5))
	require.Equal(t, "40.5%", FormatPercent(40.49))
}

func TestAbbreviateNumber(t *testing.T) {
	require.Equal(t, "842", AbbreviateNumber(842))
	require.Equal(t, "1.2K", AbbreviateNumber(1240))
	require.Equal(t, "2K", AbbreviateNumber(2000))
	require.Equal(t, "3.4M", AbbreviateNumber(3400000))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", Truncate("short", 10))
	require.Equal(t, "very lo...", Truncate("very long reason text", 10))
}
