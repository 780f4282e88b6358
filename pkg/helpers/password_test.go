package helpers

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "password" {
		t.Fatalf("hash equals the plain password")
	}
	if !CompareHashAndPassword(hash, "password") {
		t.Fatalf("hash does not verify against the password")
	}
	if CompareHashAndPassword(hash, "wrong") {
		t.Fatalf("hash verifies against a wrong password")
	}
}
