package notifications

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubNotifier struct {
	err   error
	calls int
}

func (s *stubNotifier) SendBookingReceipt(ctx context.Context, in SendBookingReceiptInput) error {
	s.calls++
	return s.err
}

func testInput() SendBookingReceiptInput {
	return SendBookingReceiptInput{
		Email:     "dave@example.com",
		BookingID: "b-1",
	}
}

func TestProtectedNotifierPassesThroughWhenClosed(t *testing.T) {
	inner := &stubNotifier{}

	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{})

	if err := n.SendBookingReceipt(context.Background(), testInput()); err != nil {
		t.Fatalf("send returned error: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}
}

func TestProtectedNotifierOpensAfterThreshold(t *testing.T) {
	inner := &stubNotifier{err: errors.New("smtp down")}

	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{
		FailureThreshold: 3,
		Cooldown:         time.Minute,
	})

	for i := 0; i < 3; i++ {
		if err := n.SendBookingReceipt(context.Background(), testInput()); err == nil {
			t.Fatalf("send %d: expected failure", i)
		}
	}

	// circuit is open now; the inner notifier must not be touched again
	err := n.SendBookingReceipt(context.Background(), testInput())

	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("err = %v, want ErrCircuitOpen", err)
	}

	if inner.calls != 3 {
		t.Errorf("inner calls = %d, want 3", inner.calls)
	}
}

func TestProtectedNotifierHalfOpenRecovery(t *testing.T) {
	inner := &stubNotifier{err: errors.New("smtp down")}

	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{
		FailureThreshold: 1,
		Cooldown:         10 * time.Millisecond,
	})

	if err := n.SendBookingReceipt(context.Background(), testInput()); err == nil {
		t.Fatal("expected failure to open the circuit")
	}

	if err := n.SendBookingReceipt(context.Background(), testInput()); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("err = %v, want ErrCircuitOpen", err)
	}

	time.Sleep(15 * time.Millisecond)

	// cooldown elapsed; the trial call succeeds and closes the circuit
	inner.err = nil

	if err := n.SendBookingReceipt(context.Background(), testInput()); err != nil {
		t.Fatalf("trial call returned error: %v", err)
	}

	if err := n.SendBookingReceipt(context.Background(), testInput()); err != nil {
		t.Fatalf("post-recovery call returned error: %v", err)
	}
}

func TestProtectedNotifierHalfOpenFailureReopens(t *testing.T) {
	inner := &stubNotifier{err: errors.New("smtp down")}

	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{
		FailureThreshold: 1,
		Cooldown:         10 * time.Millisecond,
	})

	if err := n.SendBookingReceipt(context.Background(), testInput()); err == nil {
		t.Fatal("expected failure to open the circuit")
	}

	time.Sleep(15 * time.Millisecond)

	// trial call fails; the circuit snaps back open without waiting for the
	// threshold again
	if err := n.SendBookingReceipt(context.Background(), testInput()); err == nil {
		t.Fatal("expected trial call to fail")
	}

	if err := n.SendBookingReceipt(context.Background(), testInput()); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("err = %v, want ErrCircuitOpen", err)
	}
}
