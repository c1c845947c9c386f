package bootstrap

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestValidateConfig(t *testing.T) {
	logger := zap.NewNop()

	good := AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		SessionExpiry: 168 * time.Hour,
	}
	if err := ValidateConfig(nil, good, logger); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	bad := good
	bad.MongoURI = "not-a-mongo-uri"
	if err := ValidateConfig(nil, bad, logger); err == nil {
		t.Fatal("invalid mongo URI accepted")
	}

	bad = good
	bad.SessionExpiry = 0
	if err := ValidateConfig(nil, bad, logger); err == nil {
		t.Fatal("zero session expiry accepted")
	}
}
