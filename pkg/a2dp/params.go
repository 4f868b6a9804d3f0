package a2dp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rcbridge/rcbridge-go/pkg/convert"
)

// ErrInvalidParams is returned when test extras are missing or malformed.
var ErrInvalidParams = errors.New("invalid power test parameters")

// Extra keys.
const (
	KeyCodecType           = "CodecType"
	KeySampleRate          = "SampleRate"
	KeyBitsPerSample       = "BitsPerSample"
	KeyChannelMode         = "ChannelMode"
	KeyLdacPlaybackQuality = "LdacPlaybackQuality"
	KeyCodecSpecific2      = "CodecSpecific2"
	KeyCodecSpecific3      = "CodecSpecific3"
	KeyCodecSpecific4      = "CodecSpecific4"
	KeyStartTime           = "StartTime"
	KeyPlayTime            = "PlayTime"
	KeyIdleTime            = "IdleTime"
	KeyRepetitions         = "Repetitions"
	KeyMusicURL            = "MusicURL"
	KeyNotPlay             = "NotPlay"
	KeyMute                = "Mute"
)

// Params describes one power test run.
type Params struct {
	Codec       CodecConfig   `json:"codec"`
	StartTime   time.Duration `json:"startTime"`
	PlayTime    time.Duration `json:"playTime"`
	IdleTime    time.Duration `json:"idleTime"`
	Repetitions int           `json:"repetitions"`
	MusicURL    string        `json:"musicUrl"`

	// NotPlay runs the alarm chain without playing music.
	NotPlay bool `json:"notPlay,omitempty"`

	// Mute skips device and codec checks and plays at zero volume.
	Mute bool `json:"mute,omitempty"`
}

// Alarms returns the number of alarms after the first START.
func (p Params) Alarms() int {
	return 2 * p.Repetitions
}

// ParseParams reads test parameters from intent-style extras. Numeric extras
// may be numbers or decimal strings; times are in seconds. NotPlay and Mute
// are enabled by their presence unless explicitly false.
func ParseParams(extras map[string]any) (Params, error) {
	p := Params{
		Codec: CodecConfig{
			CodecType:     CodecTypeInvalid,
			Priority:      CodecPriorityHighest,
			SampleRate:    SampleRateNone,
			BitsPerSample: BitsPerSampleNone,
			ChannelMode:   ChannelModeStereo,
		},
		Repetitions: 1,
	}
	if len(extras) == 0 {
		return p, fmt.Errorf("%w: no parameters specified", ErrInvalidParams)
	}

	var err error
	if p.Codec.CodecType, err = requiredInt(extras, KeyCodecType); err != nil {
		return p, err
	}
	if p.Codec.SampleRate, err = requiredInt(extras, KeySampleRate); err != nil {
		return p, err
	}
	if p.Codec.BitsPerSample, err = requiredInt(extras, KeyBitsPerSample); err != nil {
		return p, err
	}
	if p.Codec.ChannelMode, err = optionalInt(extras, KeyChannelMode, p.Codec.ChannelMode); err != nil {
		return p, err
	}

	specific := []struct {
		key string
		dst *int64
	}{
		{KeyLdacPlaybackQuality, &p.Codec.Specific1},
		{KeyCodecSpecific2, &p.Codec.Specific2},
		{KeyCodecSpecific3, &p.Codec.Specific3},
		{KeyCodecSpecific4, &p.Codec.Specific4},
	}
	for _, s := range specific {
		n, err := optionalInt(extras, s.key, 0)
		if err != nil {
			return p, err
		}
		*s.dst = int64(n)
	}

	start, err := requiredInt(extras, KeyStartTime)
	if err != nil {
		return p, err
	}
	play, err := requiredInt(extras, KeyPlayTime)
	if err != nil {
		return p, err
	}
	idle, err := optionalInt(extras, KeyIdleTime, 0)
	if err != nil {
		return p, err
	}
	if p.Repetitions, err = optionalInt(extras, KeyRepetitions, p.Repetitions); err != nil {
		return p, err
	}
	p.StartTime = time.Duration(start) * time.Second
	p.PlayTime = time.Duration(play) * time.Second
	p.IdleTime = time.Duration(idle) * time.Second

	url, ok := extras[KeyMusicURL]
	if !ok {
		return p, fmt.Errorf("%w: %s is required", ErrInvalidParams, KeyMusicURL)
	}
	p.MusicURL, _ = url.(string)

	p.NotPlay = flag(extras, KeyNotPlay)
	p.Mute = flag(extras, KeyMute)

	return p, p.Validate()
}

// Validate checks the values that make a run impossible.
func (p Params) Validate() error {
	switch {
	case p.PlayTime <= 0:
		return fmt.Errorf("%w: %s must be positive", ErrInvalidParams, KeyPlayTime)
	case p.StartTime <= 0:
		return fmt.Errorf("%w: %s must be positive", ErrInvalidParams, KeyStartTime)
	case p.IdleTime < 0:
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidParams, KeyIdleTime)
	case p.Repetitions < 1:
		return fmt.Errorf("%w: %s must be at least 1", ErrInvalidParams, KeyRepetitions)
	case strings.TrimSpace(p.MusicURL) == "":
		return fmt.Errorf("%w: %s is empty", ErrInvalidParams, KeyMusicURL)
	case p.Codec.CodecType == CodecTypeInvalid:
		return fmt.Errorf("%w: invalid %s", ErrInvalidParams, KeyCodecType)
	case p.Codec.SampleRate == SampleRateNone:
		return fmt.Errorf("%w: %s not set", ErrInvalidParams, KeySampleRate)
	case p.Codec.BitsPerSample == BitsPerSampleNone:
		return fmt.Errorf("%w: %s not set", ErrInvalidParams, KeyBitsPerSample)
	}
	return nil
}

func requiredInt(extras map[string]any, key string) (int, error) {
	if _, ok := extras[key]; !ok {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalidParams, key)
	}
	return optionalInt(extras, key, 0)
}

func optionalInt(extras map[string]any, key string, def int) (int, error) {
	v, ok := extras[key]
	if !ok {
		return def, nil
	}
	if s, ok := v.(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %q is not an integer", ErrInvalidParams, key, s)
		}
		return n, nil
	}
	n, ok := convert.ToInt(v)
	if !ok {
		return 0, fmt.Errorf("%w: %s: %v is not an integer", ErrInvalidParams, key, v)
	}
	return n, nil
}

func flag(extras map[string]any, key string) bool {
	v, ok := extras[key]
	if !ok {
		return false
	}
	if b, ok := convert.ToBool(v); ok {
		return b
	}
	if s, ok := v.(string); ok {
		return !strings.EqualFold(strings.TrimSpace(s), "false")
	}
	return true
}
