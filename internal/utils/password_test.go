package utils

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("p@ssw0rd", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "" || hash == "p@ssw0rd" {
		t.Fatalf("expected non-empty hash distinct from input")
	}
	if !VerifyPassword(hash, "p@ssw0rd") {
		t.Fatalf("expected verify ok")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatalf("expected verify fail")
	}
}

func TestPasswordHashIsSalted(t *testing.T) {
	a, err := HashPassword("same-password", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("same-password", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct hashes for the same password")
	}
}
