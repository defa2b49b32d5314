package audio

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// pulseNormVolume is PA_VOLUME_NORM, the raw value of 100%.
const pulseNormVolume = 65536

// sinkInput is the subset of `pactl -f json list sink-inputs` we use.
type sinkInput struct {
	Index      uint32                  `json:"index"`
	Mute       bool                    `json:"mute"`
	Volume     map[string]channelLevel `json:"volume"`
	Properties map[string]string       `json:"properties"`
}

type channelLevel struct {
	Value int `json:"value"`
}

func parseSinkInputs(data []byte) ([]sinkInput, error) {
	var inputs []sinkInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("decode pactl output: %w", err)
	}
	return inputs, nil
}

// processName prefers the binary name, which is what users put in the
// whitelist; application.name is a fallback for clients that omit it.
func (in sinkInput) processName() string {
	if bin := in.Properties["application.process.binary"]; bin != "" {
		return bin
	}
	return in.Properties["application.name"]
}

// level averages the channel volumes into [0, 1].
func (in sinkInput) level() float64 {
	if len(in.Volume) == 0 {
		return 0
	}
	total := 0
	for _, ch := range in.Volume {
		total += ch.Value
	}
	return clamp(float64(total) / float64(len(in.Volume)) / pulseNormVolume)
}

func rawVolume(level float64) string {
	return strconv.Itoa(int(clamp(level)*pulseNormVolume + 0.5))
}
