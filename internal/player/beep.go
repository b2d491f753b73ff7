package player

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

const (
	dialRetries = 5
	retryDelay  = 250 * time.Millisecond

	// volumeSpan maps the linear [0,1] level onto the exponential volume
	// scale: level 0 sits volumeSpan powers of two below level 1.
	volumeSpan = 5.0
)

var (
	speakerOnce     sync.Once
	mixerSampleRate beep.SampleRate
)

// Beep decodes an MP3 stream in-process and plays it on the default audio
// device. It cannot demux HLS, so it suits direct radio feeds only.
type Beep struct {
	streamer beep.StreamSeekCloser
	body     io.Closer
	vol      *effects.Volume
	level    float64
	muted    bool
	poster   string
	source   Source
}

func NewBeep() *Beep {
	return &Beep{level: 1}
}

func dialAndDecode(url string, tries int) (beep.StreamSeekCloser, beep.Format, io.ReadCloser, error) {
	var err error
	for i := 0; i < tries; i++ {
		var resp *http.Response
		resp, err = http.Get(url)
		if err != nil {
			time.Sleep(retryDelay)
			continue
		}

		decoded, format, derr := mp3.Decode(resp.Body)
		if derr == nil {
			return decoded, format, resp.Body, nil
		}
		err = derr

		resp.Body.Close()
		time.Sleep(retryDelay)
	}
	return nil, beep.Format{}, nil, err
}

func (b *Beep) SetSource(src Source) error {
	b.stop()
	b.source = src

	decoded, format, body, err := dialAndDecode(src.Address, dialRetries)
	if err != nil {
		return err
	}

	speakerOnce.Do(func() {
		mixerSampleRate = format.SampleRate
		speaker.Init(mixerSampleRate, mixerSampleRate.N(time.Second/10))
	})

	stream := beep.Streamer(decoded)
	if format.SampleRate != mixerSampleRate {
		stream = beep.Resample(4, format.SampleRate, mixerSampleRate, decoded)
	}

	b.streamer = decoded
	b.body = body
	b.vol = &effects.Volume{
		Streamer: stream,
		Base:     2,
		Volume:   (b.level - 1) * volumeSpan,
		Silent:   b.muted || b.level == 0,
	}
	return nil
}

func (b *Beep) Play() error {
	if b.vol == nil {
		return nil
	}
	speaker.Clear()
	speaker.Play(b.vol)
	return nil
}

func (b *Beep) Volume() float64 { return b.level }

func (b *Beep) SetVolume(v float64) {
	b.level = v
	b.applyVolume()
}

func (b *Beep) Muted() bool { return b.muted }

func (b *Beep) SetMuted(muted bool) {
	b.muted = muted
	b.applyVolume()
}

// applyVolume mutates the playing streamer, which requires the speaker
// lock while the mixer is running.
func (b *Beep) applyVolume() {
	if b.vol == nil {
		return
	}
	speaker.Lock()
	b.vol.Volume = (b.level - 1) * volumeSpan
	b.vol.Silent = b.muted || b.level == 0
	speaker.Unlock()
}

// Poster is kept for the metadata panel; an audio engine has nothing to
// show it on.
func (b *Beep) Poster(url string) { b.poster = url }

func (b *Beep) stop() {
	speaker.Clear()
	if b.streamer != nil {
		b.streamer.Close()
		b.streamer = nil
	}
	if b.body != nil {
		b.body.Close()
		b.body = nil
	}
	b.vol = nil
}

func (b *Beep) Close() error {
	b.stop()
	return nil
}
