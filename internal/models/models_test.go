package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewAccountDefaults(t *testing.T) {
	account := NewAccount("alice", "hash")

	if account.Username != "alice" || account.PasswordHash != "hash" {
		t.Fatalf("identity fields wrong: %+v", account)
	}
	if account.Coins != 0 || account.AttackCoins != 0 {
		t.Errorf("fresh account has non-zero balances: %+v", account)
	}
	if len(account.Collection) != 0 {
		t.Errorf("fresh account owns colors: %v", account.Collection)
	}
	if len(account.UnlockedZones) != 1 || account.UnlockedZones[0] != ZoneGrays {
		t.Errorf("zones = %v, want [grays]", account.UnlockedZones)
	}
	if account.CreatedAt == 0 {
		t.Error("CreatedAt not set")
	}
}

func TestAccountOwns(t *testing.T) {
	account := NewAccount("bob", "")
	account.Collection = []string{"c-g01", "c-0042"}

	if !account.Owns("c-g01") || !account.Owns("c-0042") {
		t.Error("owned color not reported")
	}
	if account.Owns("c-0001") {
		t.Error("unowned color reported as owned")
	}
}

func TestAccountHasZone(t *testing.T) {
	account := NewAccount("carol", "")

	if !account.HasZone(ZoneGrays) {
		t.Error("grays must always be available")
	}
	if account.HasZone(ZoneWarm) {
		t.Error("warm reported before unlock")
	}

	account.UnlockedZones = append(account.UnlockedZones, ZoneWarm)
	if !account.HasZone(ZoneWarm) {
		t.Error("warm not reported after unlock")
	}
}

func TestAccountPasswordHashNotSerialized(t *testing.T) {
	account := NewAccount("dan", "secret-hash")

	data, err := json.Marshal(account)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "secret-hash") {
		t.Error("password hash leaked into JSON")
	}
}

func TestCredentialsValidate(t *testing.T) {
	cases := []struct {
		req     CredentialsRequest
		wantErr bool
	}{
		{CredentialsRequest{Username: "alice", Password: "pw"}, false},
		{CredentialsRequest{Username: "", Password: "pw"}, true},
		{CredentialsRequest{Username: "alice", Password: ""}, true},
		{CredentialsRequest{}, true},
	}
	for i, c := range cases {
		err := c.req.Validate()
		if c.wantErr && err != ErrMissingField {
			t.Errorf("case %d: expected ErrMissingField, got %v", i, err)
		}
		if !c.wantErr && err != nil {
			t.Errorf("case %d: unexpected error %v", i, err)
		}
	}
}

func TestGenerateTransactionID(t *testing.T) {
	a := GenerateTransactionID()
	b := GenerateTransactionID()

	if !strings.HasPrefix(a, "tx_") {
		t.Errorf("id %q missing prefix", a)
	}
	if a == b {
		t.Error("consecutive ids collide")
	}
}
