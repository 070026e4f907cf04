package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVideoFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    VideoFormat
		wantErr bool
	}{
		{in: "1280x720-24", want: VideoFormat{Width: 1280, Height: 720, CRF: 24}},
		{in: "11x11-11", want: VideoFormat{Width: 11, Height: 11, CRF: 11}},
		{in: "1280x720", wantErr: true},
		{in: "1280-24", wantErr: true},
		{in: "ax720-24", wantErr: true},
		{in: "1280x720-300", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVideoFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestVideoFormatText(t *testing.T) {
	var vf VideoFormat
	require.NoError(t, vf.UnmarshalText([]byte("1920x1080-20")))
	text, err := vf.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1920x1080-20", string(text))
	assert.Error(t, vf.UnmarshalText([]byte("bogus")))
}
