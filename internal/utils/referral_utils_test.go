package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateInviteLink(t *testing.T) {
	link, err := GenerateInviteLink("https://app.recliq.example", "CHINEDU-4K2")
	require.NoError(t, err)
	require.Equal(t, "https://app.recliq.example/join?ref=CHINEDU-4K2", link)

	_, err = GenerateInviteLink("", "CHINEDU-4K2")
	require.Error(t, err)
	_, err = GenerateInviteLink("https://app.recliq.example", "")
	require.Error(t, err)
}

func TestGenerateInviteQRCode(t *testing.T) {
	png, err := GenerateInviteQRCode("https://app.recliq.example", "AMINA-7T8")
	require.NoError(t, err)
	// PNG-сигнатура.
	require.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
