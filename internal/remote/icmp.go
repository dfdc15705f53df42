package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

const (
	protocolICMP = 1
	echoPayload  = "heatman"
)

// ICMPPinger sends ICMP echo requests. Unprivileged mode uses a datagram ICMP
// socket (net.ipv4.ping_group_range must include the process group), privileged
// mode a raw socket.
type ICMPPinger struct {
	timeout    time.Duration
	privileged bool
	seq        atomic.Uint32
}

func NewICMPPinger(timeout time.Duration, privileged bool) *ICMPPinger {
	return &ICMPPinger{timeout: timeout, privileged: privileged}
}

// Ping sends one echo request and waits up to the configured timeout for the
// matching reply.
func (p *ICMPPinger) Ping(ctx context.Context, ip net.IP) (bool, error) {
	network, dst := "udp4", net.Addr(&net.UDPAddr{IP: ip})
	if p.privileged {
		network, dst = "ip4:icmp", &net.IPAddr{IP: ip}
	}

	conn, err := icmp.ListenPacket(network, "0.0.0.0")
	if err != nil {
		return false, fmt.Errorf("%w: listen %s: %w", ErrProbe, network, err)
	}
	defer func() { _ = conn.Close() }()

	deadline := time.Now().Add(p.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return false, fmt.Errorf("%w: set deadline: %w", ErrProbe, err)
	}

	seq := int(p.seq.Add(1) & 0xffff)
	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{ID: os.Getpid() & 0xffff, Seq: seq, Data: []byte(echoPayload)},
	}
	wb, err := msg.Marshal(nil)
	if err != nil {
		return false, fmt.Errorf("%w: marshal echo: %w", ErrProbe, err)
	}
	if _, err := conn.WriteTo(wb, dst); err != nil {
		return classifyPingError(err)
	}

	rb := make([]byte, 1500)
	for {
		n, peer, err := conn.ReadFrom(rb)
		if err != nil {
			return classifyPingError(err)
		}
		if !peerIP(peer).Equal(ip) {
			continue
		}
		rm, err := icmp.ParseMessage(protocolICMP, rb[:n])
		if err != nil || rm.Type != ipv4.ICMPTypeEchoReply {
			continue
		}
		// datagram sockets rewrite the ID, so only the sequence is compared
		if echo, ok := rm.Body.(*icmp.Echo); ok && echo.Seq == seq {
			return true, nil
		}
	}
}

// classifyPingError maps socket errors to probe results. Timeouts and
// unreachable hosts are evidence the machine is off.
func classifyPingError(err error) (bool, error) {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return false, nil
	}
	if errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.EHOSTDOWN) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %w", ErrProbe, err)
}

func peerIP(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.UDPAddr:
		return a.IP
	case *net.IPAddr:
		return a.IP
	default:
		return nil
	}
}
