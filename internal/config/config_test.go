package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PLAYERS", "GAMES", "SEED", "SUBSETS", "SUBSET_MIN", "SUBSET_MAX", "WORKERS", "NEURAL_MODEL_PATH", "VERBOSE"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	if len(cfg.Players) != 2 || cfg.Players[0] != "random" || cfg.Players[1] != "advanced" {
		t.Errorf("unexpected default players %v", cfg.Players)
	}
	if cfg.Games != 100000 {
		t.Errorf("expected 100000 games, got %d", cfg.Games)
	}
	if cfg.Seed != 0 {
		t.Errorf("expected seed 0, got %d", cfg.Seed)
	}
	if cfg.SubsetCount != 15 || cfg.MinSubset != 3 || cfg.MaxSubset != 5 {
		t.Errorf("unexpected subset defaults %d [%d, %d]", cfg.SubsetCount, cfg.MinSubset, cfg.MaxSubset)
	}
	if cfg.Workers < 1 || cfg.Workers != DefaultWorkers() {
		t.Errorf("expected %d workers, got %d", DefaultWorkers(), cfg.Workers)
	}
	if cfg.NeuralModelPath != "models/policy.onnx" {
		t.Errorf("unexpected model path %q", cfg.NeuralModelPath)
	}
	if cfg.Verbose {
		t.Error("expected verbose off by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PLAYERS", " simple , advanced,, random ")
	t.Setenv("GAMES", "500")
	t.Setenv("SEED", "-42")
	t.Setenv("SUBSETS", "20")
	t.Setenv("WORKERS", "3")
	t.Setenv("SUBSET_MIN", "bogus")
	t.Setenv("VERBOSE", "true")

	cfg := Load()
	want := []string{"simple", "advanced", "random"}
	if len(cfg.Players) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.Players)
	}
	for i := range want {
		if cfg.Players[i] != want[i] {
			t.Errorf("player %d: expected %s, got %s", i, want[i], cfg.Players[i])
		}
	}
	if cfg.Games != 500 || cfg.Seed != -42 || cfg.SubsetCount != 20 || cfg.Workers != 3 {
		t.Errorf("env values not applied: %+v", cfg)
	}
	if cfg.MinSubset != 3 {
		t.Errorf("unparsable value should fall back to 3, got %d", cfg.MinSubset)
	}
	if !cfg.Verbose {
		t.Error("expected VERBOSE=true to enable verbose games")
	}
}

func TestCPUDescription(t *testing.T) {
	if CPUDescription() == "" {
		t.Error("expected a CPU description")
	}
}
