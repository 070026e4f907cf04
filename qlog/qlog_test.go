package qlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uccmisl/godash-bola/algorithms"
	"github.com/uccmisl/godash-bola/media"
)

type nopWriteCloser struct {
	io.Writer
	closed bool
}

func (w *nopWriteCloser) Close() error {
	w.closed = true
	return nil
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
func (failingWriter) Close() error              { return nil }

func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m), sc.Text())
		out = append(out, m)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestStreamTracerRecordsABREvents(t *testing.T) {
	var buf bytes.Buffer
	w := &nopWriteCloser{Writer: &buf}
	tr := NewStreamTracer(w, PerspectiveServer, StreamID("abc/1"))

	vf := media.VideoFormat{Width: 1280, Height: 720, CRF: 24}
	bounds := algorithms.BufferBounds{MinChunks: 1.5, MaxChunks: 7.5}
	tr.ParametersCalculated("abc", 180180, bounds, algorithms.Solution{
		Kind:   algorithms.Solved,
		Params: algorithms.Parameters{V: 0.93, Gp: 5},
	})
	tr.ParametersCalculated("abc", 360360, bounds, algorithms.Solution{Kind: algorithms.Degenerate})
	tr.FormatSelected("abc", 180180, algorithms.EncodedOption{Format: vf, Size: 150000, Utility: 13.4}, 2.5)
	tr.Debug("note", "hello")
	stats := NewBufferStats()
	stats.PlayoutTime = 5 * time.Second
	stats.MaxTime = 15 * time.Second
	tr.UpdateBufferOccupancy(MediaTypeVideo, stats)
	require.NoError(t, tr.Close())
	assert.True(t, w.closed)

	lines := decodeLines(t, buf.Bytes())
	require.Len(t, lines, 6)

	header := lines[0]
	assert.Equal(t, "draft-02", header["qlog_version"])
	vantage := header["trace"].(map[string]any)["vantage_point"].(map[string]any)
	assert.Equal(t, "server", vantage["type"])
	assert.Equal(t, "abc/1", vantage["name"])

	solved := lines[1]
	assert.Equal(t, "abr:parameters_updated", solved["name"])
	data := solved["data"].(map[string]any)
	assert.Equal(t, "solved", data["kind"])
	assert.InDelta(t, 0.93, data["v"], 1e-12)
	assert.InDelta(t, 5, data["gp"], 1e-12)
	assert.InDelta(t, 180180, data["ts"], 0)

	degenerate := lines[2]["data"].(map[string]any)
	assert.Equal(t, "degenerate", degenerate["kind"])
	assert.NotContains(t, degenerate, "v")

	selected := lines[3]
	assert.Equal(t, "abr:format_selected", selected["name"])
	data = selected["data"].(map[string]any)
	assert.Equal(t, "1280x720-24", data["format"])
	assert.InDelta(t, 150000, data["size"], 0)
	assert.InDelta(t, 2.5, data["buffer_chunks"], 1e-12)

	assert.Equal(t, "generic:note", lines[4]["name"])

	occupancy := lines[5]
	assert.Equal(t, "buffer:occupancy_update", occupancy["name"])
	data = occupancy["data"].(map[string]any)
	assert.InDelta(t, 5000, data["playout_ms"], 0)
	assert.NotContains(t, data, "playout_bytes")
}

func TestStreamTracerSweeps(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&nopWriteCloser{Writer: &buf}, PerspectiveClient, StreamID("sweep"))

	ladder := algorithms.Ladder{
		{Format: media.VideoFormat{Width: 1, Height: 1, CRF: 1}, Size: 44319, Utility: 10.48},
		{Format: media.VideoFormat{Width: 2, Height: 2, CRF: 1}, Size: 93355, Utility: 12.26},
		{Format: media.VideoFormat{Width: 3, Height: 3, CRF: 1}, Size: 889893, Utility: 17.78},
	}
	sol, err := algorithms.CalculateParameters(algorithms.BufferBounds{MinChunks: 1.5, MaxChunks: 7.5}, ladder)
	require.NoError(t, err)

	objectives, err := algorithms.SweepObjectives(sol.Params, ladder, 2.002, 25, 3)
	require.NoError(t, err)
	decisions, err := algorithms.SweepDecisions(sol.Params, ladder, 2.002, 25, 100)
	require.NoError(t, err)

	tr.RecordObjectiveSweep(objectives)
	tr.RecordDecisionSweep(decisions)
	require.NoError(t, tr.Close())

	lines := decodeLines(t, buf.Bytes())
	require.Len(t, lines, 1+len(objectives)+len(decisions))
	assert.Equal(t, "abr:objective_sample", lines[1]["name"])
	assert.Equal(t, "abr:decision_sample", lines[len(lines)-1]["name"])
	last := lines[len(lines)-1]["data"].(map[string]any)
	assert.Equal(t, "3x3-1", last["format"])
}

func TestStreamTracerCloseReportsWriteError(t *testing.T) {
	tr := NewStreamTracer(failingWriter{}, PerspectiveServer, StreamID("broken"))
	tr.Debug("a", "b")
	err := tr.Close()
	assert.EqualError(t, err, "disk full")

	// Later events and closes are harmless.
	tr.Debug("c", "d")
	assert.EqualError(t, tr.Close(), "disk full")
}

func TestTracerForStream(t *testing.T) {
	var got []string
	tracer := NewTracer(func(p Perspective, streamID string) io.WriteCloser {
		got = append(got, p.String()+" "+streamID)
		if streamID == "skip" {
			return nil
		}
		return &nopWriteCloser{Writer: io.Discard}
	})

	assert.Nil(t, tracer.TracerForStream(PerspectiveClient, "skip"))
	st := tracer.TracerForStream(PerspectiveServer, "abc")
	require.NotNil(t, st)
	require.NoError(t, st.Close())
	assert.Equal(t, []string{"client skip", "server abc"}, got)
}
