package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itzsam-lol/com-app/internal/pkg/config"
)

func TestDialectorSelectsDriver(t *testing.T) {
	d, err := Dialector(config.DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", Name: "comapp"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	d, err = Dialector(config.DatabaseConfig{Driver: "mysql", Host: "db", Port: "3306", Name: "comapp"})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	_, err = Dialector(config.DatabaseConfig{Driver: "sqlite"})
	assert.Error(t, err)
}

func TestModelsCoversSchema(t *testing.T) {
	assert.Len(t, Models(), 6)
}
