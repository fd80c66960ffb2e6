package segment

// ActivityChannels maps a platform to its ordered channel list. The list has
// set semantics: insertion order is preserved, duplicates are suppressed.
type ActivityChannels map[string][]string

func (c ActivityChannels) Clone() ActivityChannels {
	out := make(ActivityChannels, len(c))
	for platform, channels := range c {
		cp := make([]string, len(channels))
		copy(cp, channels)
		out[platform] = cp
	}
	return out
}

// Append adds the channel to the platform's list unless already present.
// The second return reports whether anything changed.
func (c ActivityChannels) Append(platform, channel string) (ActivityChannels, bool) {
	for _, existing := range c[platform] {
		if existing == channel {
			return c, false
		}
	}
	out := c.Clone()
	out[platform] = append(out[platform], channel)
	return out, true
}
