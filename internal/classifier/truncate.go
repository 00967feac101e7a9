package classifier

import "classifyd/internal/engine"

// Truncate shortens enc to at most maxTokens tokens. Leading tokens are kept
// and the trailing special tokens (e.g. [SEP]) are preserved, which matches
// right-side truncation of a single sequence. maxTokens <= 0 disables it.
func Truncate(enc engine.Encoding, maxTokens int) (engine.Encoding, bool) {
	n := enc.Len()
	if maxTokens <= 0 || n <= maxTokens {
		return enc, false
	}
	tail := 0
	for i := n - 1; i >= 0 && i < len(enc.Special) && enc.Special[i]; i-- {
		tail++
	}
	if tail >= maxTokens {
		tail = 0
	}
	head := maxTokens - tail
	return engine.Encoding{
		IDs:           cut(enc.IDs, head, tail),
		AttentionMask: cut(enc.AttentionMask, head, tail),
		TypeIDs:       cut(enc.TypeIDs, head, tail),
		Special:       cut(enc.Special, head, tail),
	}, true
}

func cut[T any](xs []T, head, tail int) []T {
	if len(xs) == 0 {
		return nil
	}
	out := make([]T, 0, head+tail)
	out = append(out, xs[:head]...)
	return append(out, xs[len(xs)-tail:]...)
}
