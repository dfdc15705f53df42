package remote

import (
	"context"
	"net"
	"net/http"
	"strings"

	"heatman/internal/models"
)

// lockedSentinel is the body the lock server returns while the session is locked.
const lockedSentinel = "1"

// Pinger sends a single echo request. A host that does not answer in time is
// reported as (false, nil).
type Pinger interface {
	Ping(ctx context.Context, ip net.IP) (bool, error)
}

// PresenceProbe checks whether the companion computer is on and unlocked.
type PresenceProbe struct {
	ip      net.IP
	lockURL string
	pinger  Pinger
	client  *http.Client
}

func NewPresenceProbe(ip net.IP, lockURL string, pinger Pinger, client *http.Client) *PresenceProbe {
	return &PresenceProbe{ip: ip, lockURL: lockURL, pinger: pinger, client: client}
}

// PoweredOn reports whether the computer answers a liveness probe.
func (p *PresenceProbe) PoweredOn(ctx context.Context) (bool, error) {
	return p.pinger.Ping(ctx, p.ip)
}

// LockStatus asks the lock server on the computer. It never fails: any
// transport problem or non-2xx answer yields LockUnknown.
func (p *PresenceProbe) LockStatus(ctx context.Context) models.LockStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.lockURL, nil)
	if err != nil {
		return models.LockUnknown
	}
	body, err := get(req, p.client)
	if err != nil {
		return models.LockUnknown
	}
	if strings.TrimSpace(string(body)) == lockedSentinel {
		return models.LockLocked
	}
	return models.LockUnlocked
}
