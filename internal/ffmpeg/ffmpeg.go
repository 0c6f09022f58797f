// Package ffmpeg wraps ffprobe for narration audio diagnostics.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// ErrUnavailable is returned when ffprobe is not installed.
var ErrUnavailable = errors.New("ffprobe not found in PATH")

// FFProbeOutput is the part of ffprobe's JSON output we read.
type FFProbeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
		BitRate    string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
	} `json:"streams"`
}

// AudioInfo summarizes an audio resource.
type AudioInfo struct {
	Duration   time.Duration `json:"duration"`
	Format     string        `json:"format"`
	Codec      string        `json:"codec,omitempty"`
	SampleRate int           `json:"sampleRate,omitempty"`
}

// Available reports whether ffprobe can be run.
func Available() bool {
	_, err := exec.LookPath("ffprobe")
	return err == nil
}

// ProbeAudio runs ffprobe against a file path or URL.
func ProbeAudio(ctx context.Context, input string) (AudioInfo, error) {
	if !Available() {
		return AudioInfo{}, ErrUnavailable
	}
	// ffprobe -v quiet -print_format json -show_format -show_streams <input>
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		input,
	)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return AudioInfo{}, fmt.Errorf("ffprobe failed: %w\nStderr: %s", err, stderr.String())
	}
	return ParseProbeOutput(out.Bytes())
}

// ParseProbeOutput decodes ffprobe JSON into an AudioInfo.
func ParseProbeOutput(data []byte) (AudioInfo, error) {
	var probe FFProbeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return AudioInfo{}, fmt.Errorf("error unmarshalling ffprobe output: %w", err)
	}
	if probe.Format.Duration == "" {
		return AudioInfo{}, fmt.Errorf("could not retrieve duration from ffprobe output")
	}
	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return AudioInfo{}, fmt.Errorf("error parsing duration string '%s': %w", probe.Format.Duration, err)
	}

	info := AudioInfo{
		Duration: time.Duration(seconds * float64(time.Second)),
		Format:   probe.Format.FormatName,
	}
	for _, s := range probe.Streams {
		if s.CodecType != "audio" {
			continue
		}
		info.Codec = s.CodecName
		info.SampleRate, _ = strconv.Atoi(s.SampleRate)
		break
	}
	return info, nil
}
