package kafka

import (
	"context"
	"testing"
	"time"
)

func waitClosed(t *testing.T, p *Producer) {
	t.Helper()
	done := make(chan struct{})
	go func() { p.WaitClosed(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("WaitClosed did not return")
	}
}

func TestProducer_CloseThenCancel(t *testing.T) {
	// urutan shutdown cmd/api: Close() dulu, baru cancel(). Setelah Close()
	// dua case select sama-sama ready; branch mana pun yang kepilih tidak
	// boleh panic atau hang. Ulangi supaya kedua branch kena.
	for i := 0; i < 100; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		p := NewProducer([]string{"127.0.0.1:1"}, "transaction.created", 8)
		p.Start(ctx)
		p.Close()
		cancel()
		waitClosed(t, p)
	}
}

func TestProducer_CancelThenClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewProducer([]string{"127.0.0.1:1"}, "transaction.created", 8)
	p.Start(ctx)
	cancel()
	waitClosed(t, p)
	p.Close() // idempotent setelah loop sudah menutup inbox sendiri
}

func TestProducer_CloseIdempotent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := NewProducer([]string{"127.0.0.1:1"}, "transaction.created", 8)
	p.Start(ctx)
	p.Close()
	p.Close()
	waitClosed(t, p)
}
