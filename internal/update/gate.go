package update

import (
	"context"
	"errors"
	"fmt"

	"pkt.systems/pslog"
)

// ErrGateClosed is returned when startup must stop: an update is required
// or the version could not be verified.
var ErrGateClosed = errors.New("update gate closed")

// Notifier is the UI surface the gate needs.
type Notifier interface {
	Warn(title, message string)
	OpenURL(url string) error
}

const (
	updateTitle    = "Update required"
	updateMessage  = "This is not the latest version and cannot be started.\nPlease visit the homepage and download the latest version."
	offlineTitle   = "Check internet connection"
	offlineMessage = "Unable to verify that this is the latest version.\nPlease connect to the internet and try again."
)

// Gate runs the check once. Only StatusLatest lets startup continue; every
// other outcome shows a modal message and returns ErrGateClosed.
func Gate(ctx context.Context, checker *Checker, notifier Notifier, homepage string) error {
	log := pslog.Ctx(ctx)

	status, rel, err := checker.Check(ctx)
	remote := rel.TagName
	if v, perr := ParseVersion(rel.TagName); perr == nil {
		remote = v.String()
	}
	switch status {
	case StatusLatest:
		log.Debug("version check passed", "current", checker.Current, "remote", remote)
		return nil
	case StatusUpdateNeeded:
		log.Warn("update required", "current", checker.Current, "remote", remote)
		if notifier != nil {
			notifier.Warn(updateTitle, updateMessage)
			if homepage != "" {
				if err := notifier.OpenURL(homepage); err != nil {
					log.Warn("open homepage failed", "url", homepage, "err", err)
				}
			}
		}
		return fmt.Errorf("%w: version %s is older than %s", ErrGateClosed, checker.Current, remote)
	default:
		log.Error("version check failed", "err", err)
		if notifier != nil {
			notifier.Warn(offlineTitle, offlineMessage)
		}
		return fmt.Errorf("%w: %v", ErrGateClosed, err)
	}
}
