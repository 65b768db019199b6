package authutil

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse 1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse 1" {
		t.Fatal("hash must not equal plaintext")
	}
	if !CheckPassword("correct horse 1", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrong password 1", hash) {
		t.Error("wrong password accepted")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"ok", "greenday7", false},
		{"too short", "abc1", true},
		{"no digit", "passwordword", true},
		{"no letter", "1234567890", true},
		{"over 72 bytes", string(make([]byte, 73)) + "a1", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidatePassword(%q) err=%v, wantErr=%v", tc.password, err, tc.wantErr)
			}
		})
	}
}
