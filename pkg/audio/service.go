package audio

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
)

const (
	DefaultSampleRate = beep.SampleRate(44100)
	resampleQuality   = 4
)

// Service owns the music playlist and sound effects. Every operation is a
// no-op once the output device failed to initialise, so the game runs
// silently instead of aborting.
type Service struct {
	Tracks []string

	sink       Sink
	sampleRate beep.SampleRate

	// mixer feeds master and holds one channel for music and one for
	// effects, each with its own gain.
	mixer     *beep.Mixer
	master    *effects.Volume
	musicMix  *beep.Mixer
	musicGain *effects.Volume
	soundMix  *beep.Mixer
	soundGain *effects.Volume

	music      *beep.Ctrl
	closer     beep.StreamSeekCloser
	track      int
	generation int
	playing    bool

	volume        float64
	musicVolume   float64
	effectsVolume float64
	muted         bool
	started       bool
	disabled      bool

	*sync.Mutex
}

// NewService creates a service for the given playlist. A nil sink plays
// through the system speaker.
func NewService(tracks []string, volume float64, sink Sink) *Service {
	if sink == nil {
		sink = speakerSink{}
	}

	mixer := &beep.Mixer{}
	music := &beep.Mixer{}
	sounds := &beep.Mixer{}

	s := &Service{
		Tracks:        tracks,
		sink:          sink,
		sampleRate:    DefaultSampleRate,
		mixer:         mixer,
		master:        &effects.Volume{Streamer: mixer, Base: 10},
		musicMix:      music,
		musicGain:     &effects.Volume{Streamer: music, Base: 10},
		soundMix:      sounds,
		soundGain:     &effects.Volume{Streamer: sounds, Base: 10},
		musicVolume:   1,
		effectsVolume: 1,
		Mutex:         new(sync.Mutex),
	}
	mixer.Add(s.musicGain, s.soundGain)
	s.setVolumeL(volume)

	return s
}

// Start opens the output device. On failure the service logs the error,
// disables itself and returns the error for the caller to report.
func (s *Service) Start() error {
	s.Lock()
	defer s.Unlock()

	if s.started || s.disabled {
		return nil
	}

	err := s.sink.Init(s.sampleRate, s.sampleRate.N(100*time.Millisecond))
	if err != nil {
		s.disabled = true
		log.Printf("Audio disabled: %s", err)
		return fmt.Errorf("failed to initialize audio: %w", err)
	}

	s.sink.Play(s.master)
	s.started = true

	return nil
}

func (s *Service) Disabled() bool {
	s.Lock()
	defer s.Unlock()

	return s.disabled
}

func (s *Service) activeL() bool {
	return s.started && !s.disabled
}

// PlayMusic starts the current track. Tracks advance automatically when one
// ends.
func (s *Service) PlayMusic() {
	s.Lock()
	defer s.Unlock()

	if !s.activeL() || len(s.Tracks) == 0 || s.playing {
		return
	}

	s.playTrackL(s.track)
}

func (s *Service) NextTrack() {
	s.Lock()
	defer s.Unlock()

	if !s.activeL() || len(s.Tracks) == 0 {
		return
	}

	s.playTrackL((s.track + 1) % len(s.Tracks))
}

// SetTrack switches to track i of the playlist and plays it.
func (s *Service) SetTrack(i int) error {
	s.Lock()
	defer s.Unlock()

	if i < 0 || i >= len(s.Tracks) {
		return fmt.Errorf("unknown track %d", i)
	}

	if !s.activeL() {
		s.track = i
		return nil
	}

	s.playTrackL(i)
	return nil
}

func (s *Service) Track() int {
	s.Lock()
	defer s.Unlock()

	return s.track
}

func (s *Service) Playing() bool {
	s.Lock()
	defer s.Unlock()

	return s.playing
}

func (s *Service) playTrackL(i int) {
	s.stopMusicL()
	s.track = i

	name := s.Tracks[i]

	f, err := os.Open(name)
	if err != nil {
		log.Printf("Failed to open track %s: %s", name, err)
		return
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		log.Printf("Failed to decode track %s: %s", name, err)
		return
	}

	var music beep.Streamer = streamer
	if format.SampleRate != s.sampleRate {
		music = beep.Resample(resampleQuality, format.SampleRate, s.sampleRate, streamer)
	}

	s.generation++
	generation := s.generation

	s.closer = streamer
	s.music = &beep.Ctrl{Streamer: beep.Seq(music, beep.Callback(func() {
		// Runs under the sink's lock.
		go s.trackEnded(generation)
	}))}
	s.playing = true

	s.sink.Lock()
	s.musicMix.Add(s.music)
	s.sink.Unlock()
}

func (s *Service) trackEnded(generation int) {
	s.Lock()
	defer s.Unlock()

	if generation != s.generation || !s.activeL() {
		return
	}

	s.playing = false
	s.playTrackL((s.track + 1) % len(s.Tracks))
}

func (s *Service) stopMusicL() {
	s.generation++

	if s.music != nil {
		s.sink.Lock()
		s.music.Streamer = nil
		s.sink.Unlock()

		s.music = nil
	}

	if s.closer != nil {
		s.closer.Close()
		s.closer = nil
	}

	s.playing = false
}

// SetVolume sets the master volume, clamped to [0, 1].
func (s *Service) SetVolume(v float64) {
	s.Lock()
	defer s.Unlock()

	s.sink.Lock()
	s.setVolumeL(v)
	s.sink.Unlock()
}

func (s *Service) setVolumeL(v float64) {
	s.volume = setGain(s.master, v)
	if s.muted {
		s.master.Silent = true
	}
}

func (s *Service) Volume() float64 {
	s.Lock()
	defer s.Unlock()

	return s.volume
}

// SetMusicVolume sets the gain of the music channel, clamped to [0, 1]. It
// applies on top of the master volume.
func (s *Service) SetMusicVolume(v float64) {
	s.Lock()
	defer s.Unlock()

	s.sink.Lock()
	s.musicVolume = setGain(s.musicGain, v)
	s.sink.Unlock()
}

func (s *Service) MusicVolume() float64 {
	s.Lock()
	defer s.Unlock()

	return s.musicVolume
}

// SetEffectsVolume sets the gain of the sound effects channel, clamped to
// [0, 1]. It applies on top of the master volume.
func (s *Service) SetEffectsVolume(v float64) {
	s.Lock()
	defer s.Unlock()

	s.sink.Lock()
	s.effectsVolume = setGain(s.soundGain, v)
	s.sink.Unlock()
}

func (s *Service) EffectsVolume() float64 {
	s.Lock()
	defer s.Unlock()

	return s.effectsVolume
}

func (s *Service) SetMute(muted bool) {
	s.Lock()
	defer s.Unlock()

	s.muted = muted

	s.sink.Lock()
	s.setVolumeL(s.volume)
	s.sink.Unlock()
}

func (s *Service) Muted() bool {
	s.Lock()
	defer s.Unlock()

	return s.muted
}

func (s *Service) PlayLineClear(lines int) {
	s.playEffect(func() beep.Streamer { return s.lineClearSound(lines) })
}

func (s *Service) PlayGameOver() {
	s.playEffect(s.gameOverSound)
}

func (s *Service) playEffect(sound func() beep.Streamer) {
	s.Lock()
	defer s.Unlock()

	if !s.activeL() {
		return
	}

	streamer := sound()

	s.sink.Lock()
	s.soundMix.Add(streamer)
	s.sink.Unlock()
}

// Stop silences music and effects. PlayMusic resumes the current track from
// its start.
func (s *Service) Stop() {
	s.Lock()
	defer s.Unlock()

	if !s.activeL() {
		return
	}

	s.stopMusicL()

	s.sink.Lock()
	s.musicMix.Clear()
	s.soundMix.Clear()
	s.sink.Unlock()
}
