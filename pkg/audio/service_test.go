package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	err    error
	inits  int
	played []beep.Streamer

	sync.Mutex
}

func (f *fakeSink) Init(sr beep.SampleRate, bufferSize int) error {
	f.inits++
	return f.err
}

func (f *fakeSink) Play(s ...beep.Streamer) {
	f.played = append(f.played, s...)
}

func (f *fakeSink) Clear() {
	f.played = nil
}

// pull streams n samples from everything played, like the speaker would.
func (f *fakeSink) pull(n int) {
	buf := make([][2]float64, n)

	f.Lock()
	defer f.Unlock()

	for _, s := range f.played {
		s.Stream(buf)
	}
}

func writeTrack(t *testing.T, name string, samples int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: DefaultSampleRate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Silence(samples), format))

	return path
}

func TestStartFailureDegrades(t *testing.T) {
	sink := &fakeSink{err: errors.New("no device")}
	s := NewService([]string{"missing.wav"}, 1, sink)

	assert.Error(t, s.Start())
	assert.True(t, s.Disabled())

	// Later calls neither retry nor fail.
	assert.NoError(t, s.Start())
	assert.Equal(t, 1, sink.inits)

	s.PlayMusic()
	s.NextTrack()
	s.PlayLineClear(4)
	s.PlayGameOver()
	s.Stop()

	assert.False(t, s.Playing())
	assert.Empty(t, sink.played)

	require.NoError(t, s.SetTrack(0))
	assert.Error(t, s.SetTrack(1))
}

func TestMissingTrack(t *testing.T) {
	sink := &fakeSink{}
	s := NewService([]string{filepath.Join(t.TempDir(), "missing.wav")}, 1, sink)

	require.NoError(t, s.Start())
	require.Len(t, sink.played, 1)

	s.PlayMusic()
	assert.False(t, s.Playing())
}

func TestPlaylist(t *testing.T) {
	sink := &fakeSink{}
	tracks := []string{writeTrack(t, "a.wav", 64), writeTrack(t, "b.wav", 64), writeTrack(t, "c.wav", 64)}
	s := NewService(tracks, 1, sink)

	require.NoError(t, s.Start())

	s.PlayMusic()
	assert.True(t, s.Playing())
	assert.Equal(t, 0, s.Track())

	s.NextTrack()
	assert.Equal(t, 1, s.Track())

	require.NoError(t, s.SetTrack(2))
	assert.Equal(t, 2, s.Track())
	assert.Error(t, s.SetTrack(3))
	assert.Error(t, s.SetTrack(-1))

	s.NextTrack()
	assert.Equal(t, 0, s.Track())

	s.Stop()
	assert.False(t, s.Playing())
}

func TestTrackAdvancesWhenFinished(t *testing.T) {
	sink := &fakeSink{}
	tracks := []string{writeTrack(t, "a.wav", 32), writeTrack(t, "b.wav", 32)}
	s := NewService(tracks, 1, sink)

	require.NoError(t, s.Start())
	s.PlayMusic()

	sink.pull(512)

	assert.Eventually(t, func() bool {
		return s.Track() == 1 && s.Playing()
	}, time.Second, 5*time.Millisecond)
}

func TestVolume(t *testing.T) {
	sink := &fakeSink{}
	s := NewService(nil, 0.5, sink)

	assert.Equal(t, 0.5, s.Volume())
	assert.InDelta(t, math.Log10(0.5), s.master.Volume, 1e-9)
	assert.False(t, s.master.Silent)

	s.SetVolume(2)
	assert.Equal(t, 1.0, s.Volume())
	assert.InDelta(t, 0, s.master.Volume, 1e-9)

	s.SetVolume(0)
	assert.True(t, s.master.Silent)

	s.SetVolume(0.8)
	s.SetMute(true)
	assert.True(t, s.Muted())
	assert.True(t, s.master.Silent)
	assert.Equal(t, 0.8, s.Volume())

	s.SetMute(false)
	assert.False(t, s.master.Silent)
}

func TestEffects(t *testing.T) {
	sink := &fakeSink{}
	s := NewService(nil, 1, sink)

	// Not started yet.
	s.PlayLineClear(1)
	assert.Equal(t, 0, s.soundMix.Len())

	require.NoError(t, s.Start())

	s.PlayLineClear(2)
	s.PlayGameOver()
	assert.Equal(t, 2, s.soundMix.Len())
	assert.Equal(t, 0, s.musicMix.Len())

	// Effects finish and leave the mixer.
	for i := 0; i < 10; i++ {
		sink.pull(4096)
	}
	sink.Lock()
	assert.Equal(t, 0, s.soundMix.Len())
	sink.Unlock()

	s.PlayGameOver()
	s.Stop()
	assert.Equal(t, 0, s.soundMix.Len())
	// Both channels survive Stop.
	assert.Equal(t, 2, s.mixer.Len())
}

func TestChannelVolumes(t *testing.T) {
	s := NewService(nil, 1, &fakeSink{})

	assert.Equal(t, 1.0, s.MusicVolume())
	assert.Equal(t, 1.0, s.EffectsVolume())
	assert.Equal(t, 2, s.mixer.Len())

	s.SetMusicVolume(0.5)
	assert.Equal(t, 0.5, s.MusicVolume())
	assert.InDelta(t, math.Log10(0.5), s.musicGain.Volume, 1e-9)
	assert.False(t, s.musicGain.Silent)

	// Channels do not touch the master or each other.
	assert.InDelta(t, 0, s.master.Volume, 1e-9)
	assert.InDelta(t, 0, s.soundGain.Volume, 1e-9)

	s.SetEffectsVolume(0)
	assert.Equal(t, 0.0, s.EffectsVolume())
	assert.True(t, s.soundGain.Silent)
	assert.False(t, s.musicGain.Silent)

	s.SetEffectsVolume(3)
	assert.Equal(t, 1.0, s.EffectsVolume())
	assert.False(t, s.soundGain.Silent)

	s.SetMusicVolume(-1)
	assert.Equal(t, 0.0, s.MusicVolume())
	assert.True(t, s.musicGain.Silent)
}

func TestLineClearSoundLength(t *testing.T) {
	s := NewService(nil, 1, &fakeSink{})

	length := func(st beep.Streamer) int {
		var total int
		buf := make([][2]float64, 512)
		for {
			n, ok := st.Stream(buf)
			total += n
			if !ok {
				return total
			}
		}
	}

	note := s.sampleRate.N(noteDuration)
	assert.Equal(t, note, length(s.lineClearSound(0)))
	assert.Equal(t, 3*note, length(s.lineClearSound(3)))
	assert.Equal(t, 4*note, length(s.lineClearSound(9)))
	assert.Equal(t, 4*note, length(s.gameOverSound()))
}
