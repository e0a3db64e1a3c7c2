package gameconfig

import "testing"

func TestDefaultHasEntryForEveryWeaponAffix(t *testing.T) {
	cfg := Default()
	kinds := []string{
		"attack_boost", "damage_mult", "armor_pen", "life_steal", "gold_bonus",
		"critical_chance", "combo_chance", "kill_heal", "exp_bonus", "thorn_damage",
		"damage_reduction", "percent_damage", "floor_bonus", "lucky_hit", "berserk_mode",
	}
	for _, k := range kinds {
		if _, ok := cfg.WeaponAffix[k]; !ok {
			t.Errorf("missing weapon affix tuning for %q", k)
		}
	}
}

func TestDefaultHasEntryForEveryArmorAffix(t *testing.T) {
	cfg := Default()
	kinds := []string{
		"defense_boost", "damage_reduction", "thorn_reflect", "block_chance", "dodge_chance",
		"hp_boost", "floor_heal", "kill_heal", "potion_boost",
	}
	for _, k := range kinds {
		if _, ok := cfg.ArmorAffix[k]; !ok {
			t.Errorf("missing armor affix tuning for %q", k)
		}
	}
}

func TestDefaultHasEntryForEveryRarity(t *testing.T) {
	cfg := Default()
	for _, r := range []string{"common", "rare", "epic", "legendary"} {
		if _, ok := cfg.Rarity[r]; !ok {
			t.Errorf("missing rarity tuning for %q", r)
		}
	}
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	cfg, err := Load("/nonexistent/path/gameconfig.yaml")
	if err != nil {
		t.Fatalf("Load on missing file returned error: %v", err)
	}
	if cfg.Player.StartingMaxHP != 500 {
		t.Errorf("expected default starting max hp, got %d", cfg.Player.StartingMaxHP)
	}
}

func TestStartingStatsMatchSpecScenario(t *testing.T) {
	cfg := Default()
	if cfg.Player.StartingMaxHP != 500 || cfg.Player.StartingAtk != 50 || cfg.Player.StartingDef != 20 {
		t.Errorf("starting stats = %+v, want hp=500 atk=50 def=20", cfg.Player)
	}
}
