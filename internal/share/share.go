// internal/share/share.go
//
// Sharing/reward adapter. The server formats the shareable result text and
// resolves the client-reported platform capability into an outcome; the
// actual share sheet or clipboard write happens on the client. Every
// outcome maps to a distinct transient notice, and none of them blocks the
// reveal-credit grant in the share-for-reveals flow.

package share

import (
	"fmt"

	"github.com/kwtplay/logoquiz/internal/logos"
)

// Capability is what the client reports its host platform can do.
type Capability string

const (
	CapabilityNative    Capability = "native"    // navigator.share or equivalent
	CapabilityClipboard Capability = "clipboard" // clipboard write only
	CapabilityNone      Capability = "none"      // neither available
)

// Outcome classifies how a share request ends up being delivered.
type Outcome string

const (
	OutcomePlatformShare Outcome = "platform_share"
	OutcomeClipboard     Outcome = "clipboard"
	OutcomeUnsupported   Outcome = "unsupported"
)

// Resolve maps a reported capability to the share outcome. Unknown
// capabilities degrade to unsupported rather than erroring.
func Resolve(c Capability) Outcome {
	switch c {
	case CapabilityNative:
		return OutcomePlatformShare
	case CapabilityClipboard:
		return OutcomeClipboard
	default:
		return OutcomeUnsupported
	}
}

// NoticeFor returns the transient notice text for an outcome. The platform
// share sheet is its own feedback, so that outcome has no notice.
func NoticeFor(o Outcome) string {
	switch o {
	case OutcomeClipboard:
		return "Copied result to clipboard!"
	case OutcomeUnsupported:
		return "Sharing not supported. Copy manually."
	default:
		return ""
	}
}

// Summary formats the shareable result string.
func Summary(solved int, level logos.Level, elapsedSeconds int, url string) string {
	return fmt.Sprintf(
		"🏆 I solved %d Kuwaiti logos on %s in just %s.\nThink you can beat me? ⏱️\n👉 Play now: %s",
		solved, level, FormatTime(elapsedSeconds), url,
	)
}

// FormatTime renders seconds as zero-padded mm:ss.
func FormatTime(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
