package router

import (
	"context"
	"strings"
)

// Classify is a case-insensitive substring match with no side effects besides a debug line.
func (r *KeywordRouter) Classify(ctx context.Context, message string) Intent {
	lower := strings.ToLower(message)
	for _, k := range r.keywords {
		if strings.Contains(lower, k) {
			r.l.Debugf(ctx, "%s: keyword %q matched, intent=%s", LogPrefixClassify, k, IntentFreight)
			return IntentFreight
		}
	}

	r.l.Debugf(ctx, "%s: no keyword matched, intent=%s", LogPrefixClassify, IntentGeneral)
	return IntentGeneral
}
