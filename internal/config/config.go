package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/klauspost/cpuid/v2"
)

// Config holds simulation configuration loaded from environment variables.
type Config struct {
	Players         []string
	Games           int
	Seed            int64
	SubsetCount     int
	MinSubset       int
	MaxSubset       int
	Workers         int
	NeuralModelPath string
	Verbose         bool
}

// Load reads configuration from environment variables with sensible defaults.
// VERBOSE=true logs the winning subsets and every move; binaries raise the
// log level to debug for it.
func Load() *Config {
	return &Config{
		Players:         splitList(envOrDefault("PLAYERS", "random,advanced")),
		Games:           intOrDefault("GAMES", 100000),
		Seed:            int64OrDefault("SEED", 0),
		SubsetCount:     intOrDefault("SUBSETS", 15),
		MinSubset:       intOrDefault("SUBSET_MIN", 3),
		MaxSubset:       intOrDefault("SUBSET_MAX", 5),
		Workers:         intOrDefault("WORKERS", DefaultWorkers()),
		NeuralModelPath: envOrDefault("NEURAL_MODEL_PATH", "models/policy.onnx"),
		Verbose:         os.Getenv("VERBOSE") == "true",
	}
}

// DefaultWorkers is the number of physical cores, or the logical CPU count
// when the core count is unknown.
func DefaultWorkers() int {
	if n := cpuid.CPU.PhysicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// CPUDescription names the host CPU for run banners.
func CPUDescription() string {
	if cpuid.CPU.BrandName == "" {
		return runtime.GOARCH
	}
	return cpuid.CPU.BrandName
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOrDefault(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func int64OrDefault(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
