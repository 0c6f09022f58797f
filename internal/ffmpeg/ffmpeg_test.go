package ffmpeg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbeOutput(t *testing.T) {
	data := []byte(`{
		"streams": [
			{"codec_type": "video", "codec_name": "mjpeg"},
			{"codec_type": "audio", "codec_name": "mp3", "sample_rate": "44100"}
		],
		"format": {"duration": "12.500000", "format_name": "mp3", "bit_rate": "128000"}
	}`)

	info, err := ParseProbeOutput(data)
	require.NoError(t, err)
	assert.Equal(t, 12500*time.Millisecond, info.Duration)
	assert.Equal(t, "mp3", info.Format)
	assert.Equal(t, "mp3", info.Codec)
	assert.Equal(t, 44100, info.SampleRate)
}

func TestParseProbeOutputErrors(t *testing.T) {
	for _, data := range []string{`not json`, `{"format":{}}`, `{"format":{"duration":"abc"}}`} {
		_, err := ParseProbeOutput([]byte(data))
		assert.Error(t, err, data)
	}
}
