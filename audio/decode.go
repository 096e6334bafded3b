// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package audio plays the background music of the viewer from a
// positional source, attenuated by the listener's distance from it.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/reisen"
	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/h2non/filetype"
)

var (
	// ErrNotAudio is returned for files that are not a known audio format.
	ErrNotAudio = errors.New("audio: not an audio file")

	// ErrNoAudioStream is returned for media files without an audio stream.
	ErrNoAudioStream = errors.New("audio: no audio stream")
)

// sniffLen is how many header bytes filetype needs to match any type.
const sniffLen = 261

// Detect returns the audio file type extension (such as "wav" or "mp3")
// of the data in r, based on its magic bytes.
func Detect(r io.Reader) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	head = head[:n]
	if !filetype.IsAudio(head) {
		return "", ErrNotAudio
	}
	kind, err := filetype.Match(head)
	if err != nil {
		return "", err
	}
	return kind.Extension, nil
}

// DetectFile returns the audio file type extension of the given file.
func DetectFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return Detect(f)
}

// Open opens the audio file at the given path for streaming.
// WAV files are streamed from disk; any other audio format
// is fully decoded into memory with ffmpeg.
// The returned streamer must be closed when done.
func Open(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext, err := DetectFile(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("audio: open %q: %w", path, err)
	}
	if ext == "wav" {
		f, err := os.Open(path)
		if err != nil {
			return nil, beep.Format{}, err
		}
		s, format, err := wav.Decode(f)
		if err != nil {
			f.Close()
			return nil, beep.Format{}, fmt.Errorf("audio: decode %q: %w", path, err)
		}
		return s, format, nil
	}
	samples, format, err := decodeMedia(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("audio: decode %q: %w", path, err)
	}
	return newMemStream(samples), format, nil
}

// decodeMedia decodes the first audio stream of the given media file
// into stereo samples.
func decodeMedia(path string) ([][2]float64, beep.Format, error) {
	media, err := reisen.NewMedia(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	defer media.Close()
	streams := media.AudioStreams()
	if len(streams) == 0 {
		return nil, beep.Format{}, ErrNoAudioStream
	}
	if err := media.OpenDecode(); err != nil {
		return nil, beep.Format{}, err
	}
	defer media.CloseDecode()
	as := streams[0]
	if err := as.Open(); err != nil {
		return nil, beep.Format{}, err
	}
	defer as.Close()

	var samples [][2]float64
	for {
		packet, got, err := media.ReadPacket()
		if err != nil {
			return nil, beep.Format{}, err
		}
		if !got {
			break
		}
		if !isStreamPacket(packet, as.Index()) {
			continue
		}
		frame, got, err := as.ReadAudioFrame()
		if err != nil {
			return nil, beep.Format{}, err
		}
		if !got || frame == nil {
			continue
		}
		samples = appendSamples(samples, frame.Data())
	}
	format := beep.Format{SampleRate: beep.SampleRate(as.SampleRate()), NumChannels: 2, Precision: 2}
	return samples, format, nil
}

// isStreamPacket returns whether packet holds audio for the stream
// with the given index. ReadPacket returns a nil packet when the
// decoder needs more input.
func isStreamPacket(packet *reisen.Packet, index int) bool {
	return packet != nil && packet.Type() == reisen.StreamAudio && packet.StreamIndex() == index
}

// appendSamples appends the interleaved little-endian float64
// stereo samples in data to samples.
func appendSamples(samples [][2]float64, data []byte) [][2]float64 {
	for len(data) >= 16 {
		l := math.Float64frombits(binary.LittleEndian.Uint64(data[0:8]))
		r := math.Float64frombits(binary.LittleEndian.Uint64(data[8:16]))
		samples = append(samples, [2]float64{l, r})
		data = data[16:]
	}
	return samples
}

// memStream is an in-memory [beep.StreamSeekCloser].
type memStream struct {
	data [][2]float64
	pos  int
}

func newMemStream(data [][2]float64) *memStream {
	return &memStream{data: data}
}

func (s *memStream) Stream(buf [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	n = copy(buf, s.data[s.pos:])
	s.pos += n
	return n, true
}

func (s *memStream) Err() error    { return nil }
func (s *memStream) Len() int      { return len(s.data) }
func (s *memStream) Position() int { return s.pos }
func (s *memStream) Close() error  { return nil }

func (s *memStream) Seek(p int) error {
	if p < 0 || p > len(s.data) {
		return fmt.Errorf("audio: seek position %d out of range [0, %d]", p, len(s.data))
	}
	s.pos = p
	return nil
}
