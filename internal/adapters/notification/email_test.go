package notification

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// A peer that accepts the connection but never speaks SMTP must not block
// the caller past its context deadline.
func TestSendMail_SilentPeerHonorsContextDeadline(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	// Accept the connection but never send a greeting.
	connCh := make(chan net.Conn, 1)
	go func() {
		conn, acceptErr := ln.Accept()
		if acceptErr == nil {
			connCh <- conn
		}
	}()
	defer func() {
		select {
		case conn := <-connCh:
			_ = conn.Close()
		default:
		}
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	sender := NewSMTPSender(SMTPConfig{
		Host: host,
		Port: port,
		From: "noreply@synchro.ai",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = sender.SendMail(ctx, "owner@kopi.example", "Your SynchroAI consultation is booked", "<p>hi</p>")
	elapsed := time.Since(start)

	require.Error(t, err)
	require.Less(t, elapsed, 5*time.Second, "SendMail must give up at the context deadline, not hang on a silent peer")
}

func TestSendMail_ExpiredContextFailsImmediately(t *testing.T) {
	sender := NewSMTPSender(SMTPConfig{
		Host: "127.0.0.1",
		Port: "2525",
		From: "noreply@synchro.ai",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sender.SendMail(ctx, "owner@kopi.example", "subject", "<p>hi</p>")
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}
