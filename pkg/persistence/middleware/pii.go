package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/campaignguide/pkg/domain"
	"github.com/aretw0/campaignguide/pkg/ports"
)

// Mask replaces redacted free text.
const Mask = "***"

type piiMiddleware struct {
	next     ports.Store
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks the free text typed at
// steps whose id (or input id) matches one of the patterns. Masking happens
// on Save only; the caller's snapshot is left untouched.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.Store) ports.Store {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, campaignID string, snapshot *domain.Snapshot) error {
	cloned := *snapshot
	cloned.Entries = m.mask(snapshot.Entries)
	cloned.Linked = m.mask(snapshot.Linked)
	return m.next.Save(ctx, campaignID, &cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, campaignID string) (*domain.Snapshot, error) {
	return m.next.Load(ctx, campaignID)
}

func (m *piiMiddleware) Delete(ctx context.Context, campaignID string) error {
	return m.next.Delete(ctx, campaignID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// mask returns a copy of entries with matching text replaced.
func (m *piiMiddleware) mask(entries []domain.Entry) []domain.Entry {
	if entries == nil {
		return nil
	}
	out := make([]domain.Entry, len(entries))
	for i, e := range entries {
		if e.Text != "" && (m.matches(e.Step) || m.matches(e.InputID)) {
			e.Text = Mask
		}
		out[i] = e
	}
	return out
}

func (m *piiMiddleware) matches(id string) bool {
	if id == "" {
		return false
	}
	for _, p := range m.patterns {
		if p.MatchString(id) {
			return true
		}
	}
	return false
}
