package media

import (
	"fmt"
	"strconv"
	"strings"
)

// VideoFormat identifies one encoded rendition of a channel, rendered as
// "WIDTHxHEIGHT-CRF". It is a plain value and can be used as a map key.
type VideoFormat struct {
	Width  uint16
	Height uint16
	CRF    uint8
}

func (vf VideoFormat) String() string {
	return fmt.Sprintf("%dx%d-%d", vf.Width, vf.Height, vf.CRF)
}

// ParseVideoFormat parses the "WIDTHxHEIGHT-CRF" form produced by String.
func ParseVideoFormat(s string) (VideoFormat, error) {
	res, crf, ok := strings.Cut(s, "-")
	if !ok {
		return VideoFormat{}, fmt.Errorf("video format %q: missing crf", s)
	}
	w, h, ok := strings.Cut(res, "x")
	if !ok {
		return VideoFormat{}, fmt.Errorf("video format %q: missing resolution", s)
	}

	width, err := strconv.ParseUint(w, 10, 16)
	if err != nil {
		return VideoFormat{}, fmt.Errorf("video format %q: width: %w", s, err)
	}
	height, err := strconv.ParseUint(h, 10, 16)
	if err != nil {
		return VideoFormat{}, fmt.Errorf("video format %q: height: %w", s, err)
	}
	c, err := strconv.ParseUint(crf, 10, 8)
	if err != nil {
		return VideoFormat{}, fmt.Errorf("video format %q: crf: %w", s, err)
	}
	return VideoFormat{Width: uint16(width), Height: uint16(height), CRF: uint8(c)}, nil
}

// MarshalText lets formats appear as plain strings in YAML and JSON.
func (vf VideoFormat) MarshalText() ([]byte, error) {
	return []byte(vf.String()), nil
}

func (vf *VideoFormat) UnmarshalText(text []byte) error {
	parsed, err := ParseVideoFormat(string(text))
	if err != nil {
		return err
	}
	*vf = parsed
	return nil
}
