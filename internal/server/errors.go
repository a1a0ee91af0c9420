package server

import (
	"context"
	"fmt"
	"time"

	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"
)

// BindError reports that the listening socket could not be created.
// It is fatal: the server does not retry.
type BindError struct {
	Addr string
	Err  error
	// Holder is the process already listening on the port, when it could be
	// identified.
	Holder *PortHolder
}

func (e *BindError) Error() string {
	msg := fmt.Sprintf("bind %s: %v", e.Addr, e.Err)
	if e.Holder != nil {
		msg += fmt.Sprintf(" (port held by %s)", e.Holder)
	}
	return msg
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// PortHolder identifies a process listening on a TCP port.
type PortHolder struct {
	PID  int32
	Name string
}

func (h *PortHolder) String() string {
	if h.Name == "" {
		return fmt.Sprintf("pid %d", h.PID)
	}
	return fmt.Sprintf("%s, pid %d", h.Name, h.PID)
}

// holderLookupTimeout bounds the connection table scan done after a failed bind.
const holderLookupTimeout = 2 * time.Second

// FindPortHolder looks for a process listening on the TCP port.
// It returns nil when none is found or the connection table is unreadable,
// e.g. for sockets owned by other users.
func FindPortHolder(ctx context.Context, port int) *PortHolder {
	if port <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, holderLookupTimeout)
	defer cancel()

	conns, err := psnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return nil
	}
	for _, c := range conns {
		if c.Status != "LISTEN" || c.Laddr.Port != uint32(port) || c.Pid == 0 {
			continue
		}
		holder := &PortHolder{PID: c.Pid}
		if p, err := process.NewProcessWithContext(ctx, c.Pid); err == nil {
			if name, err := p.NameWithContext(ctx); err == nil {
				holder.Name = name
			}
		}
		return holder
	}
	return nil
}
