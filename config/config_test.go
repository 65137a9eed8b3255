package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPasswordPolicyValidate(t *testing.T) {
	policy := PasswordPolicy{
		MinLength:        8,
		MaxLength:        20,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumber:    true,
		RequireSpecial:   true,
	}

	if err := policy.Validate("short"); err == nil {
		t.Fatalf("expected error for short password")
	}
	if err := policy.Validate("lowercase1!"); err == nil {
		t.Fatalf("expected error for missing uppercase")
	}
	if err := policy.Validate("UPPERCASE1!"); err == nil {
		t.Fatalf("expected error for missing lowercase")
	}
	if err := policy.Validate("NoNumber!"); err == nil {
		t.Fatalf("expected error for missing number")
	}
	if err := policy.Validate("NoSpecial1"); err == nil {
		t.Fatalf("expected error for missing special")
	}
	if err := policy.Validate("WayTooLongPassword1!x"); err == nil {
		t.Fatalf("expected error for password over 20 characters")
	}
	if err := policy.Validate("GoodPass1!"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
}

func TestEnvGetters(t *testing.T) {
	t.Setenv("SB_STRING", "value")
	t.Setenv("SB_MINUTES", "30")
	t.Setenv("SB_BAD_MINUTES", "half an hour")
	t.Setenv("SB_BOOL", "true")
	t.Setenv("SB_BAD_BOOL", "maybe")
	t.Setenv("SB_INT", "42")
	t.Setenv("SB_BAD_INT", "forty-two")

	cases := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"string set", getEnv("SB_STRING", "fallback"), "value"},
		{"string unset", getEnv("SB_MISSING", "fallback"), "fallback"},
		{"minutes", getDurationEnv("SB_MINUTES", 5*time.Minute), 30 * time.Minute},
		{"minutes invalid", getDurationEnv("SB_BAD_MINUTES", 5*time.Minute), 5 * time.Minute},
		{"bool", getBoolEnv("SB_BOOL", false), true},
		{"bool invalid", getBoolEnv("SB_BAD_BOOL", true), true},
		{"int", getIntEnv("SB_INT", 5), 42},
		{"int invalid", getIntEnv("SB_BAD_INT", 5), 5},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, tc.got)
		}
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	t.Setenv("JWT_SECRET", "")
	t.Setenv("MYSQL_DSN", "")
	if cfg, err := Load(); err == nil || cfg != nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}

func TestLoadRequiresMySQLDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MYSQL_DSN", "")
	if cfg, err := Load(); err == nil || cfg != nil {
		t.Fatalf("expected error when MYSQL_DSN is missing")
	}
}

func TestLoadSuccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MYSQL_DSN", "user:pass@tcp(db:3306)/skillbase?parseTime=true")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("JWT_SIGNIN_TTL", "20")
	t.Setenv("JWT_VERIFIED_TTL", "240")
	t.Setenv("VERIFICATION_TOKEN_TTL", "120")
	t.Setenv("RESET_TOKEN_TTL", "30")
	t.Setenv("MAX_EMAILS_SENT", "3")
	t.Setenv("SIGNIN_MAX_FAILURES", "4")
	t.Setenv("SIGNIN_LOCK_DURATION", "15")
	t.Setenv("PASSWORD_MIN_LENGTH", "10")
	t.Setenv("PASSWORD_REQUIRE_UPPERCASE", "false")
	t.Setenv("PASSWORD_REQUIRE_LOWERCASE", "true")
	t.Setenv("PASSWORD_REQUIRE_NUMBER", "false")
	t.Setenv("PASSWORD_REQUIRE_SPECIAL", "false")
	t.Setenv("FRONTEND_URL", "https://skillbase.test/")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.skillbase.test/")
	t.Setenv("S3_USE_PATH_STYLE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HTTP.Port != "8081" {
		t.Fatalf("unexpected port: %s", cfg.HTTP.Port)
	}
	if cfg.MySQL.DSN != "user:pass@tcp(db:3306)/skillbase?parseTime=true" {
		t.Fatalf("unexpected mysql dsn: %s", cfg.MySQL.DSN)
	}
	if cfg.JWT.SignInTTL != 20*time.Minute || cfg.JWT.VerifiedTTL != 240*time.Minute {
		t.Fatalf("unexpected jwt ttl: %v %v", cfg.JWT.SignInTTL, cfg.JWT.VerifiedTTL)
	}
	if cfg.Tokens.VerificationTTL != 120*time.Minute || cfg.Tokens.ResetTTL != 30*time.Minute || cfg.Tokens.MaxEmailsSent != 3 {
		t.Fatalf("unexpected token config: %+v", cfg.Tokens)
	}
	if cfg.Lockout.MaxFailures != 4 || cfg.Lockout.Duration != 15*time.Minute {
		t.Fatalf("unexpected lockout config: %+v", cfg.Lockout)
	}
	if cfg.Password.Policy.MinLength != 10 ||
		cfg.Password.Policy.MaxLength != 20 ||
		cfg.Password.Policy.RequireUppercase != false ||
		cfg.Password.Policy.RequireLowercase != true ||
		cfg.Password.Policy.RequireNumber != false ||
		cfg.Password.Policy.RequireSpecial != false {
		t.Fatalf("unexpected password policy: %+v", cfg.Password.Policy)
	}
	if cfg.App.FrontendURL != "https://skillbase.test" || cfg.Storage.PublicBaseURL != "https://cdn.skillbase.test" {
		t.Fatalf("expected trailing slashes trimmed, got %q %q", cfg.App.FrontendURL, cfg.Storage.PublicBaseURL)
	}
	if !cfg.Storage.UsePathStyle {
		t.Fatalf("expected path style storage")
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		MySQL: MySQLConfig{DSN: "user:pass@tcp(localhost:3306)/skillbase?parseTime=true"},
	}
	got := cfg.DSN()
	if got != cfg.MySQL.DSN {
		t.Fatalf("expected %q, got %q", cfg.MySQL.DSN, got)
	}
}

func TestLoadUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/skillbase?parseTime=true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HTTP.Port == "" || cfg.MySQL.DSN == "" {
		t.Fatalf("expected defaults to be populated")
	}
	if cfg.Mail.From != "skillbase@system.com" || cfg.Lockout.MaxFailures != 5 || cfg.Tokens.MaxEmailsSent != 5 {
		t.Fatalf("unexpected defaults: %+v %+v %+v", cfg.Mail, cfg.Lockout, cfg.Tokens)
	}
	if cfg.JWT.SignInTTL != time.Hour || cfg.JWT.VerifiedTTL != 8*time.Hour {
		t.Fatalf("unexpected default jwt ttl: %+v", cfg.JWT)
	}
}

func TestLoadRespectsEnvFileLocation(t *testing.T) {
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	envPath := filepath.Join(tmp, ".env")
	if err := os.WriteFile(envPath, []byte("JWT_SECRET=envfile-secret\nMYSQL_DSN=user:pass@tcp(localhost:3306)/skillbase?parseTime=true\nHTTP_PORT=9099\n"), 0600); err != nil {
		t.Fatalf("write .env failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.JWT.Secret != "envfile-secret" || cfg.HTTP.Port != "9099" {
		t.Fatalf("expected env file values, got %s %s", cfg.JWT.Secret, cfg.HTTP.Port)
	}
}
