package config

import "time"

// PatchChannels returns the default patch: the two middle and two uplight PARs.
func PatchChannels() []ChannelConfig {
	s := make([]ChannelConfig, 0)

	s = append(s, patchFrontMiddlePars()...)
	s = append(s, patchUplightPars()...)

	return s
}

func patchFrontMiddlePars() []ChannelConfig {
	return []ChannelConfig{
		// left middle par
		{
			Name:     "left_middle_par",
			Address:  115,
			Duration: 2 * time.Second,
			Curve:    "default",
		},
		// right middle par
		{
			Name:     "right_middle_par",
			Address:  139,
			Duration: 2 * time.Second,
			Curve:    "default",
		},
	}
}

func patchUplightPars() []ChannelConfig {
	return []ChannelConfig{
		// left uplight par (A.123 -> 122)
		{
			Name:         "left_uplight_par",
			Address:      122,
			Duration:     time.Second,
			ConstantTime: true,
			Curve:        "srgb",
		},
		// right uplight par (A.131 -> 130)
		{
			Name:         "right_uplight_par",
			Address:      130,
			Duration:     time.Second,
			ConstantTime: true,
			Curve:        "srgb",
		},
	}
}
