package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uptask-dev/uptask-backend/config"
)

func TestInitializeFirebase_RequiresCredentialsPath(t *testing.T) {
	_, err := InitializeFirebase(context.Background(), &config.FirebaseConfig{})
	assert.ErrorContains(t, err, "credentials path")
}
