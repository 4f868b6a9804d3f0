package a2dp

import "fmt"

// Source codec types.
const (
	CodecTypeSBC     = 0
	CodecTypeAAC     = 1
	CodecTypeAptX    = 2
	CodecTypeAptXHD  = 3
	CodecTypeLDAC    = 4
	CodecTypeInvalid = 1000000
)

// Unset sample rate and bit depth.
const (
	SampleRateNone    = 0
	BitsPerSampleNone = 0
)

// Channel modes.
const (
	ChannelModeNone   = 0
	ChannelModeMono   = 1
	ChannelModeStereo = 2
)

// CodecPriorityHighest is the priority requested for a codec preference.
const CodecPriorityHighest = 1000000

// CodecConfig is an A2DP codec configuration.
type CodecConfig struct {
	CodecType     int   `cbor:"codecType" json:"codecType"`
	Priority      int   `cbor:"priority,omitempty" json:"priority,omitempty"`
	SampleRate    int   `cbor:"sampleRate" json:"sampleRate"`
	BitsPerSample int   `cbor:"bitsPerSample" json:"bitsPerSample"`
	ChannelMode   int   `cbor:"channelMode" json:"channelMode"`
	Specific1     int64 `cbor:"codecSpecific1,omitempty" json:"codecSpecific1,omitempty"`
	Specific2     int64 `cbor:"codecSpecific2,omitempty" json:"codecSpecific2,omitempty"`
	Specific3     int64 `cbor:"codecSpecific3,omitempty" json:"codecSpecific3,omitempty"`
	Specific4     int64 `cbor:"codecSpecific4,omitempty" json:"codecSpecific4,omitempty"`
}

// Matches reports whether the active configuration got satisfies the
// requested configuration c. Codec-specific value 1 (LDAC playback quality)
// is compared only for LDAC.
func (c CodecConfig) Matches(got CodecConfig) bool {
	if got.CodecType != c.CodecType ||
		got.SampleRate != c.SampleRate ||
		got.BitsPerSample != c.BitsPerSample ||
		got.ChannelMode != c.ChannelMode {
		return false
	}
	if c.CodecType == CodecTypeLDAC {
		return got.Specific1 == c.Specific1
	}
	return true
}

// String formats the configuration for logs.
func (c CodecConfig) String() string {
	return fmt.Sprintf("codec=%d rate=%d bits=%d mode=%d specific=[%d %d %d %d]",
		c.CodecType, c.SampleRate, c.BitsPerSample, c.ChannelMode,
		c.Specific1, c.Specific2, c.Specific3, c.Specific4)
}

// CodecStatus is the profile's current codec state.
type CodecStatus struct {
	Config     CodecConfig
	Local      []CodecConfig
	Selectable []CodecConfig
}
