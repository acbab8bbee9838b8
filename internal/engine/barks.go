package engine

// BarkSet maps a trait id to its pool of flavor lines. A matched trait
// hook draws one line uniformly.
type BarkSet map[string][]string

// Pick returns a line for the trait, or "" when the trait has no pool.
func (b BarkSet) Pick(traitID string, stream *Stream) string {
	lines := b[traitID]
	if len(lines) == 0 {
		return ""
	}
	return lines[stream.Intn(len(lines))]
}

// PickAll draws one line per matched trait, skipping traits without a
// pool. Order follows the matched trait order.
func (b BarkSet) PickAll(traitIDs []string, stream *Stream) []string {
	var out []string
	for _, id := range traitIDs {
		if line := b.Pick(id, stream.Child(id)); line != "" {
			out = append(out, line)
		}
	}
	return out
}
