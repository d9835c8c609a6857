package envvars

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	// Backup and defer restore of environment variables
	backup := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range backup {
			pair := splitEnv(env)
			os.Setenv(pair[0], pair[1])
		}
	}()

	t.Run("all env vars set", func(t *testing.T) {
		os.Clearenv()
		os.Setenv(ProjectID, "study-prod")
		os.Setenv(Environment, "production")
		os.Setenv(Port, "9090")
		os.Setenv(OperatorSecret, "s3cret")
		os.Setenv(StoreBackend, FirestoreBackend)
		os.Setenv(MaxJoinedGroups, "12")
		os.Setenv(InactivityAfter, "96h")
		os.Setenv(GhostWindow, "90m")
		os.Setenv(SweepBatchSize, "450")
		os.Setenv(GeminiAPIKey, "key")
		os.Setenv(GeminiModel, "gemini-pro")
		os.Setenv(FCMEnabled, "false")
		os.Setenv(PromptBucket, "prompts")
		os.Setenv(LogLevel, "debug")

		expected := Env{
			ProjectID:        "study-prod",
			Environment:      ProductionEnv,
			Port:             "9090",
			OperatorSecret:   "s3cret",
			StoreBackend:     FirestoreBackend,
			MaxJoinedGroups:  12,
			InactivityWindow: 96 * time.Hour,
			GhostWindow:      90 * time.Minute,
			SweepBatchSize:   450,
			GeminiAPIKey:     "key",
			GeminiModel:      "gemini-pro",
			FCMEnabled:       false,
			PromptBucket:     "prompts",
			LogLevel:         "debug",
		}

		if got := GetEnv(); !reflect.DeepEqual(got, expected) {
			t.Errorf("GetEnv() = %v, want %v", got, expected)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		os.Clearenv()
		os.Setenv(OperatorSecret, "s3cret")
		os.Setenv(StoreBackend, MemoryBackend)

		got := GetEnv()
		if got.Environment != DevEnv {
			t.Errorf("Expected environment to default to dev, got %s", got.Environment)
		}
		if got.MaxJoinedGroups != 7 {
			t.Errorf("Expected max joined groups to default to 7, got %d", got.MaxJoinedGroups)
		}
		if got.InactivityWindow != 72*time.Hour || got.GhostWindow != 2*time.Hour {
			t.Errorf("unexpected windows: %v %v", got.InactivityWindow, got.GhostWindow)
		}
		if got.SweepBatchSize != 300 {
			t.Errorf("Expected batch size 300, got %d", got.SweepBatchSize)
		}
		if got.FCMEnabled {
			t.Errorf("Expected FCM to be disabled outside production")
		}
	})

	t.Run("batch size is clamped and bad values fall back", func(t *testing.T) {
		os.Clearenv()
		os.Setenv(OperatorSecret, "s3cret")
		os.Setenv(StoreBackend, MemoryBackend)
		os.Setenv(SweepBatchSize, "5000")
		os.Setenv(MaxJoinedGroups, "many")

		got := GetEnv()
		if got.SweepBatchSize != 500 {
			t.Errorf("Expected batch size clamped to 500, got %d", got.SweepBatchSize)
		}
		if got.MaxJoinedGroups != 7 {
			t.Errorf("Expected fallback to 7, got %d", got.MaxJoinedGroups)
		}
	})
}

func TestIsProd(t *testing.T) {
	tests := []struct {
		name string
		env  Env
		want bool
	}{
		{"production env", Env{Environment: ProductionEnv}, true},
		{"dev env", Env{Environment: DevEnv}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProd(tt.env); got != tt.want {
				t.Errorf("IsProd() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDev(t *testing.T) {
	tests := []struct {
		name string
		env  Env
		want bool
	}{
		{"production env", Env{Environment: ProductionEnv}, false},
		{"dev env", Env{Environment: DevEnv}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDev(tt.env); got != tt.want {
				t.Errorf("IsDev() = %v, want %v", got, tt.want)
			}
		})
	}
}

func splitEnv(env string) []string {
	var s []string
	for i := 0; i < len(env); i++ {
		if env[i] == '=' {
			s = append(s, env[:i])
			s = append(s, env[i+1:])
			return s
		}
	}
	// Return slice with empty strings if no '=' is found
	return []string{"", ""}
}
