package persistence

import (
	"path/filepath"
	"testing"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(Config{Driver: "sqlite", SQLitePath: path})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAccountAndLookupRoundTrip(t *testing.T) {
	db := newTestDatabase(t)

	id, err := db.CreateAccount("Hero", "hashed-pw", "Heroic")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	byUsername, err := db.GetAccountByUsername("Hero")
	if err != nil {
		t.Fatalf("GetAccountByUsername failed: %v", err)
	}
	if byUsername.ID != id {
		t.Errorf("ID = %d, want %d", byUsername.ID, id)
	}
	if byUsername.Nickname != "Heroic" {
		t.Errorf("Nickname = %q, want Heroic", byUsername.Nickname)
	}

	byID, err := db.GetAccountByID(id)
	if err != nil {
		t.Fatalf("GetAccountByID failed: %v", err)
	}
	if byID.Username != "Hero" {
		t.Errorf("Username = %q, want Hero", byID.Username)
	}
}

func TestGetAccountByUsernameMissingReturnsErrNotFound(t *testing.T) {
	db := newTestDatabase(t)

	_, err := db.GetAccountByUsername("nobody")
	if err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateNicknamePersists(t *testing.T) {
	db := newTestDatabase(t)
	id, _ := db.CreateAccount("Hero", "hash", "Old")

	if err := db.UpdateNickname(id, "New"); err != nil {
		t.Fatalf("UpdateNickname failed: %v", err)
	}

	acc, err := db.GetAccountByID(id)
	if err != nil {
		t.Fatalf("GetAccountByID failed: %v", err)
	}
	if acc.Nickname != "New" {
		t.Errorf("Nickname = %q, want New", acc.Nickname)
	}
}

func TestRecordLoginAttemptDoesNotError(t *testing.T) {
	db := newTestDatabase(t)
	id, _ := db.CreateAccount("Hero", "hash", "Heroic")

	err := db.RecordLoginAttempt(LoginAttempt{
		AccountID: &id, Username: "Hero", IP: "127.0.0.1", Success: true,
	})
	if err != nil {
		t.Errorf("RecordLoginAttempt failed: %v", err)
	}
}

func testPlayerRecord() PlayerRecord {
	return PlayerRecord{
		HP: 500, MaxHP: 500, BaseAtk: 50, BaseDef: 20,
		Exp: 0, Level: 1, Gold: 100, PosX: 1, PosY: 1, FloorLevel: 1,
	}
}

func TestPlayerSaveLoadRoundTrip(t *testing.T) {
	db := newTestDatabase(t)
	accountID, err := db.CreateAccount("Hero", "hash", "Heroic")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	playerID, err := db.CreatePlayer(accountID, testPlayerRecord())
	if err != nil {
		t.Fatalf("CreatePlayer failed: %v", err)
	}

	rec := testPlayerRecord()
	rec.HP = 321
	rec.Gold = 9999
	rec.FloorLevel = 7
	if err := db.PersistPlayer(playerID, rec); err != nil {
		t.Fatalf("PersistPlayer failed: %v", err)
	}

	eq := &EquipmentRecord{Name: "Flaming Sword", Atk: 30, Rarity: "epic"}
	if err := db.PersistEquipment(playerID, "weapon", eq); err != nil {
		t.Fatalf("PersistEquipment failed: %v", err)
	}

	affixes := []AffixRecord{{Slot: "weapon", Kind: "attack_boost", BaseValue: 5, Level: 2}}
	if err := db.PersistAffixes(playerID, "weapon", affixes); err != nil {
		t.Fatalf("PersistAffixes failed: %v", err)
	}

	inventory := map[string]int{"Potion+50": 3}
	if err := db.PersistInventory(playerID, inventory); err != nil {
		t.Fatalf("PersistInventory failed: %v", err)
	}

	snap, err := db.LoadPlayer(playerID)
	if err != nil {
		t.Fatalf("LoadPlayer failed: %v", err)
	}
	if snap.Player.HP != 321 || snap.Player.Gold != 9999 || snap.Player.FloorLevel != 7 {
		t.Errorf("player fields did not round-trip: %+v", snap.Player)
	}
	if len(snap.Equipment) != 1 || snap.Equipment[0].Name != "Flaming Sword" {
		t.Errorf("equipment did not round-trip: %+v", snap.Equipment)
	}
	if len(snap.Affixes) != 1 || snap.Affixes[0].Kind != "attack_boost" {
		t.Errorf("affixes did not round-trip: %+v", snap.Affixes)
	}
	if snap.Inventory["Potion+50"] != 3 {
		t.Errorf("inventory did not round-trip: %+v", snap.Inventory)
	}
}

func TestSaveLifecycle(t *testing.T) {
	db := newTestDatabase(t)
	accountID, _ := db.CreateAccount("Hero", "hash", "Heroic")
	playerID, _ := db.CreatePlayer(accountID, testPlayerRecord())

	if _, err := db.GetLatestSave(playerID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound before any save, got %v", err)
	}

	if err := db.UpsertSave(playerID, 3, "autosave", true); err != nil {
		t.Fatalf("UpsertSave failed: %v", err)
	}
	save, err := db.GetLatestSave(playerID)
	if err != nil {
		t.Fatalf("GetLatestSave failed: %v", err)
	}
	if save.FloorLevel != 3 {
		t.Errorf("FloorLevel = %d, want 3", save.FloorLevel)
	}

	// A second upsert replaces the first rather than stacking rows.
	if err := db.UpsertSave(playerID, 8, "autosave", true); err != nil {
		t.Fatalf("second UpsertSave failed: %v", err)
	}
	save, err = db.GetLatestSave(playerID)
	if err != nil {
		t.Fatalf("GetLatestSave after second upsert failed: %v", err)
	}
	if save.FloorLevel != 8 {
		t.Errorf("FloorLevel = %d, want 8", save.FloorLevel)
	}

	if err := db.DeleteSave(playerID); err != nil {
		t.Fatalf("DeleteSave failed: %v", err)
	}
	if _, err := db.GetLatestSave(playerID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestGetPlayerByAccountID(t *testing.T) {
	db := newTestDatabase(t)
	accountID, _ := db.CreateAccount("Hero", "hash", "Heroic")
	playerID, _ := db.CreatePlayer(accountID, testPlayerRecord())

	rec, err := db.GetPlayerByAccountID(accountID)
	if err != nil {
		t.Fatalf("GetPlayerByAccountID failed: %v", err)
	}
	if rec.PlayerID != playerID {
		t.Errorf("PlayerID = %d, want %d", rec.PlayerID, playerID)
	}
}
