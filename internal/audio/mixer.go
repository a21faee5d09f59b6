// Package audio is the demo's audio add-on: sample playback on top of ebiten's audio context.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// NoSound is the id of "no sample loaded". Keep ids at NoSound while the app is
// out of focus so nothing is left playing.
const NoSound int32 = -1

var ErrUnknownSound = errors.New("audio: unknown sound id")

// Format is a supported sample encoding.
type Format int

const (
	FormatWAV Format = iota
	FormatMP3
)

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return FormatWAV, nil
	case ".mp3":
		return FormatMP3, nil
	default:
		return 0, fmt.Errorf("audio: unsupported sample %q", path)
	}
}

// player is the part of *audio.Player the mixer drives.
type player interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	SetVolume(v float64)
	Close() error
}

type sound struct {
	player player
	// resume is set when PauseAll stopped a playing sound.
	resume bool
}

// Mixer owns the loaded samples. It is used from the frame thread only.
type Mixer struct {
	ctx    *audio.Context
	sounds map[int32]*sound
	next   int32
	log    *slog.Logger
}

// NewMixer attaches to the process-wide audio context, creating it at sampleRate if needed.
func NewMixer(sampleRate int, log *slog.Logger) *Mixer {
	if log == nil {
		log = slog.Default()
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Mixer{
		ctx:    ctx,
		sounds: make(map[int32]*sound),
		log:    log.With("component", "audio"),
	}
}

// LoadSound decodes the file at path and returns its id.
func (m *Mixer) LoadSound(path string, loop bool) (int32, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return NoSound, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return NoSound, fmt.Errorf("audio: read sample: %w", err)
	}
	return m.LoadSoundFrom(bytes.NewReader(data), f, loop)
}

// LoadSoundFrom decodes an in-memory sample.
func (m *Mixer) LoadSoundFrom(r io.ReadSeeker, f Format, loop bool) (int32, error) {
	var (
		src    io.ReadSeeker
		length int64
	)
	switch f {
	case FormatWAV:
		s, err := wav.DecodeWithSampleRate(m.ctx.SampleRate(), r)
		if err != nil {
			return NoSound, fmt.Errorf("audio: decode wav: %w", err)
		}
		src, length = s, s.Length()
	case FormatMP3:
		s, err := mp3.DecodeWithSampleRate(m.ctx.SampleRate(), r)
		if err != nil {
			return NoSound, fmt.Errorf("audio: decode mp3: %w", err)
		}
		src, length = s, s.Length()
	default:
		return NoSound, fmt.Errorf("audio: unknown format %d", f)
	}

	var stream io.Reader = src
	if loop {
		stream = audio.NewInfiniteLoop(src, length)
	}
	p, err := m.ctx.NewPlayer(stream)
	if err != nil {
		return NoSound, fmt.Errorf("audio: new player: %w", err)
	}

	return m.add(p), nil
}

func (m *Mixer) add(p player) int32 {
	id := m.next
	m.next++
	m.sounds[id] = &sound{player: p}
	return id
}

func (m *Mixer) get(id int32) (*sound, error) {
	s, ok := m.sounds[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSound, id)
	}
	return s, nil
}

// Play starts or continues a sound.
func (m *Mixer) Play(id int32) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.player.Play()
	return nil
}

// Stop pauses a sound and rewinds it.
func (m *Mixer) Stop(id int32) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.player.Pause()
	return s.player.Rewind()
}

// SetVolume sets a sound's volume in [0, 1].
func (m *Mixer) SetVolume(id int32, v float64) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.player.SetVolume(v)
	return nil
}

func (m *Mixer) IsPlaying(id int32) bool {
	s, err := m.get(id)
	return err == nil && s.player.IsPlaying()
}

// PauseAll pauses every playing sound and remembers which ones to resume.
func (m *Mixer) PauseAll() {
	for _, s := range m.sounds {
		s.resume = s.player.IsPlaying()
		if s.resume {
			s.player.Pause()
		}
	}
}

// ResumeAll restarts the sounds stopped by PauseAll.
func (m *Mixer) ResumeAll() {
	for _, s := range m.sounds {
		if s.resume {
			s.player.Play()
			s.resume = false
		}
	}
}

// Unload stops and releases a sound.
func (m *Mixer) Unload(id int32) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	delete(m.sounds, id)
	return s.player.Close()
}

// Close releases every sound.
func (m *Mixer) Close() {
	for id, s := range m.sounds {
		if err := s.player.Close(); err != nil {
			m.log.Warn("failed to close sound", "id", id, "error", err)
		}
		delete(m.sounds, id)
	}
}
