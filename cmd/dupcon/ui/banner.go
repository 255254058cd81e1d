package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Banner kinds. Server-supplied types are normalized case-insensitively;
// anything unrecognized renders as info.
const (
	BannerSuccess = "success"
	BannerError   = "error"
	BannerInfo    = "info"
)

// bannerExpiredMsg dismisses a banner. The sequence number ties the tick
// to the banner it was scheduled for, so a newer banner is not cut short
// by an older banner's timer.
type bannerExpiredMsg struct{ seq int }

// Banner is the transient status line shown after an operation. It
// auto-dismisses after its TTL.
type Banner struct {
	message string
	kind    string
	seq     int
	ttl     time.Duration
}

// NewBanner creates an empty banner with the given lifetime.
func NewBanner(ttl time.Duration) Banner {
	return Banner{ttl: ttl}
}

// Show replaces the banner content and schedules its dismissal.
func (b *Banner) Show(message, kind string) tea.Cmd {
	b.message = message
	b.kind = normalizeBannerKind(kind)
	b.seq++
	seq := b.seq
	return tea.Tick(b.ttl, func(time.Time) tea.Msg {
		return bannerExpiredMsg{seq: seq}
	})
}

// Update handles banner expiry. Other messages are ignored.
func (b *Banner) Update(msg tea.Msg) {
	if expired, ok := msg.(bannerExpiredMsg); ok && expired.seq == b.seq {
		b.message = ""
		b.kind = ""
	}
}

// Visible reports whether there is a banner to render.
func (b Banner) Visible() bool { return b.message != "" }

// View renders the banner, or an empty string when dismissed.
func (b Banner) View(styles Styles) string {
	if b.message == "" {
		return ""
	}
	switch b.kind {
	case BannerSuccess:
		return styles.BannerSuccess.Render(b.message)
	case BannerError:
		return styles.BannerError.Render(b.message)
	default:
		return styles.BannerInfo.Render(b.message)
	}
}

func normalizeBannerKind(kind string) string {
	switch strings.ToLower(kind) {
	case BannerSuccess:
		return BannerSuccess
	case BannerError:
		return BannerError
	default:
		return BannerInfo
	}
}
