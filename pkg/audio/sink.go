package audio

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Sink is the output device. The default plays through beep's speaker.
type Sink interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerSink struct{}

func (speakerSink) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}

func (speakerSink) Play(s ...beep.Streamer) { speaker.Play(s...) }

func (speakerSink) Clear() { speaker.Clear() }

func (speakerSink) Lock() { speaker.Lock() }

func (speakerSink) Unlock() { speaker.Unlock() }
