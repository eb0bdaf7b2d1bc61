package assets

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	cfg "github.com/automoto/lodis-galaga/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// AudioLoader handles loading and caching of sound effects. A sound comes
// from its override file under dir when present, otherwise it is
// synthesized from its tone.
type AudioLoader struct {
	sfxCache map[cfg.SoundID][]byte // decoded PCM per sound
	context  *audio.Context
	dir      string
	rnd      *rand.Rand
}

// NewAudioLoader creates a new audio loader with the given context
func NewAudioLoader(ctx *audio.Context, dir string) *AudioLoader {
	return &AudioLoader{
		sfxCache: make(map[cfg.SoundID][]byte),
		context:  ctx,
		dir:      dir,
		rnd:      rand.New(rand.NewSource(1)),
	}
}

// PreloadSFX decodes or synthesizes a sound effect and caches it.
// Call this at startup to avoid decode lag on first play.
func (l *AudioLoader) PreloadSFX(id cfg.SoundID) error {
	if _, ok := l.sfxCache[id]; ok {
		return nil
	}
	data, err := l.pcm(id)
	if err != nil {
		return err
	}
	l.sfxCache[id] = data
	return nil
}

// LoadSFX returns a new player for the sound each time.
func (l *AudioLoader) LoadSFX(id cfg.SoundID) (*audio.Player, error) {
	if err := l.PreloadSFX(id); err != nil {
		return nil, err
	}
	return l.context.NewPlayer(bytes.NewReader(l.sfxCache[id]))
}

func (l *AudioLoader) pcm(id cfg.SoundID) ([]byte, error) {
	if path, ok := cfg.Sound.SFXPaths[id]; ok && l.dir != "" {
		data, err := l.decodeFile(filepath.Join(l.dir, path))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	tone, ok := cfg.Sound.Tones[id]
	if !ok {
		return nil, fmt.Errorf("no sound for id %d", id)
	}
	return Tone(tone, l.context.SampleRate(), l.rnd), nil
}

func (l *AudioLoader) decodeFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Decode based on file extension
	ext := strings.ToLower(filepath.Ext(path))
	var stream io.Reader
	switch ext {
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(l.context.SampleRate(), bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode ogg %s: %w", path, err)
		}
		stream = s
	case ".wav":
		s, err := wav.DecodeWithSampleRate(l.context.SampleRate(), bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode wav %s: %w", path, err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}

	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded audio %s: %w", path, err)
	}
	return decoded, nil
}
