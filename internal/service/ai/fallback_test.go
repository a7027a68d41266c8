package ai

import (
	"strings"
	"testing"
)

func TestFallbackReplyRefund(t *testing.T) {
	reply := FallbackReply("I need a refund")

	if !strings.Contains(reply, "5-7 business days") {
		t.Fatalf("expected refund branch, got %q", reply)
	}
	if strings.Contains(reply, "available 24/7") {
		t.Fatalf("generic branch must not win for refund queries: %q", reply)
	}
}

func TestFallbackReplyFirstMatchWins(t *testing.T) {
	// "payment" is checked before "refund", so the transaction branch wins.
	reply := FallbackReply("refund for my payment")

	if !strings.Contains(reply, "'Transactions' section") {
		t.Fatalf("expected transaction branch, got %q", reply)
	}
}

func TestFallbackReplySettlement(t *testing.T) {
	reply := FallbackReply("when do I get my money")

	if !strings.Contains(reply, "Settlement typically occurs") {
		t.Fatalf("expected settlement branch, got %q", reply)
	}
}

func TestFallbackReplyCommission(t *testing.T) {
	reply := FallbackReply("what fee do you charge")

	if !strings.Contains(reply, "Commission rates vary") {
		t.Fatalf("expected commission branch, got %q", reply)
	}
}

func TestFallbackReplyGeneric(t *testing.T) {
	reply := FallbackReply("hello there")

	if reply != genericFallback {
		t.Fatalf("expected generic branch, got %q", reply)
	}
}

func TestFallbackReplyCaseInsensitive(t *testing.T) {
	if FallbackReply("REFUND NOW") != fallbackRules[2].reply {
		t.Fatal("matching must ignore case")
	}
}
