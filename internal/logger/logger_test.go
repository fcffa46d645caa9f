package logger

import "testing"

func TestRedactKVs(t *testing.T) {
	kv := redactKVs([]interface{}{
		"questionnaireId", "qn-1",
		"token", "secret-token",
		"email", "jo@example.org",
		"status", 200,
	})

	if kv[1] != "qn-1" {
		t.Fatalf("plain value must pass through, got %v", kv[1])
	}
	if kv[3] != "[REDACTED]" {
		t.Fatalf("token value must be redacted, got %v", kv[3])
	}
	if kv[5] != "[REDACTED]" {
		t.Fatalf("email value must be redacted, got %v", kv[5])
	}
	if kv[7] != 200 {
		t.Fatalf("non-sensitive value must pass through, got %v", kv[7])
	}
}

func TestRedactKVsLeavesOriginalUntouched(t *testing.T) {
	in := []interface{}{"token", "secret"}
	_ = redactKVs(in)
	if in[1] != "secret" {
		t.Fatalf("input slice must not be mutated, got %v", in[1])
	}
}

func TestIsSensitiveKey(t *testing.T) {
	for key, want := range map[string]bool{
		"token":         true,
		"sessionToken":  false, // checked lowercased by the caller
		"sessiontoken":  true,
		"passcode":      true,
		"authorization": true,
		"questionId":    false,
	} {
		if got := isSensitiveKey(key); got != want {
			t.Fatalf("key %q: expected %v, got %v", key, want, got)
		}
	}
}
