package ebiten

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/zyedidia/generic/mapset"
)

var audioExts = []string{".ogg", ".wav", ".mp3"}

// ClipPlayer plays one-shot voice cues from <dir>/audio.
type ClipPlayer struct {
	ctx *audio.Context
	dir string
	log *slog.Logger

	players []*audio.Player
	missing mapset.Set[string]
}

// NewClipPlayer creates the audio context. Only one may exist per process.
func NewClipPlayer(dir string, log *slog.Logger) *ClipPlayer {
	return &ClipPlayer{
		ctx:     audio.NewContext(sampleRate),
		dir:     dir,
		log:     log,
		missing: mapset.New[string](),
	}
}

// PlayClip starts the clip named key. Missing or undecodable clips are
// logged and skipped.
func (c *ClipPlayer) PlayClip(key string) {
	if key == "" || c.missing.Has(key) {
		return
	}
	c.reap()

	for _, path := range assetCandidates(c.dir, "audio", key, audioExts) {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			c.log.Warn("audio clip unreadable", "key", key, "path", path, "error", err)
			break
		}

		stream, err := decodeClip(path, data)
		if err != nil {
			c.log.Warn("audio clip undecodable", "key", key, "path", path, "error", err)
			break
		}
		player, err := c.ctx.NewPlayer(stream)
		if err != nil {
			c.log.Warn("audio player failed", "key", key, "error", err)
			return
		}
		player.Play()
		c.players = append(c.players, player)
		c.log.Debug("audio clip playing", "key", key)
		return
	}

	c.missing.Put(key)
	c.log.Warn("audio clip missing", "key", key, "dir", c.dir)
}

// reap closes players whose clip has finished.
func (c *ClipPlayer) reap() {
	playing := c.players[:0]
	for _, p := range c.players {
		if p.IsPlaying() {
			playing = append(playing, p)
			continue
		}
		_ = p.Close()
	}
	c.players = playing
}

// Close stops every clip.
func (c *ClipPlayer) Close() {
	for _, p := range c.players {
		_ = p.Close()
	}
	c.players = nil
}

func decodeClip(path string, data []byte) (io.ReadSeeker, error) {
	r := bytes.NewReader(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.DecodeWithSampleRate(sampleRate, r)
	case ".mp3":
		return mp3.DecodeWithSampleRate(sampleRate, r)
	case ".ogg":
		return vorbis.DecodeWithSampleRate(sampleRate, r)
	default:
		return nil, fmt.Errorf("unsupported audio format %q", filepath.Ext(path))
	}
}
