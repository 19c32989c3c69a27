package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	passwords := []string{
		"hunter2",
		"correct horse battery staple",
		"пароль-with-mixed-scripts-123",
		"  leading and trailing spaces  ",
	}

	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		if err != nil {
			t.Fatalf("Hash(%q) error = %v", password, err)
		}
		if hash == password {
			t.Fatalf("Hash(%q) returned the plaintext", password)
		}
		if !hasher.Verify(password, hash) {
			t.Errorf("Verify rejected the password that produced %q", hash)
		}
		if hasher.Verify(password+"x", hash) {
			t.Errorf("Verify accepted a near-miss for %q", password)
		}
	}
}

func TestPasswordHasherRejectsWrongInputs(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("swordfish")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if hasher.Verify("", hash) {
		t.Error("Verify accepted an empty password")
	}
	if hasher.Verify("Swordfish", hash) {
		t.Error("Verify accepted a case-flipped password")
	}
	if hasher.Verify("swordfish", "not-a-bcrypt-hash") {
		t.Error("Verify accepted a malformed hash")
	}
}

func TestPasswordHasherCostConfiguration(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "explicit cost is honored", cost: 6, want: 6},
		{name: "zero falls back to default", cost: 0, want: DefaultBcryptCost},
		{name: "negative falls back to default", cost: -3, want: DefaultBcryptCost},
		{name: "above max falls back to default", cost: bcrypt.MaxCost + 1, want: DefaultBcryptCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewPasswordHasher(tt.cost)
			if hasher.cost != tt.want {
				t.Fatalf("cost = %d, want %d", hasher.cost, tt.want)
			}
		})
	}

	// The configured cost must actually end up in the hash.
	hash, err := NewPasswordHasher(6).Hash("swordfish")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost() error = %v", err)
	}
	if cost != 6 {
		t.Errorf("hash cost = %d, want 6", cost)
	}
}

func TestPasswordHasherSaltsEachHash(t *testing.T) {
	hasher := NewPasswordHasher(bcrypt.MinCost)

	first, err := hasher.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Fatal("two hashes of the same password are identical")
	}
	if !hasher.Verify("samepassword", first) || !hasher.Verify("samepassword", second) {
		t.Error("Verify rejected one of the salted hashes")
	}
}
