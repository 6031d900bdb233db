package apiv1

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const specPath = "../../../public/docs/v1/openapi.yml"

func TestLoadSpecValidates(t *testing.T) {
	doc, err := LoadSpec(context.Background(), specPath)
	require.NoError(t, err)
	assert.Equal(t, "com-app API", doc.Info.Title)

	assert.True(t, HasOperation(doc, "put", "/user/me/plan"))
	assert.True(t, HasOperation(doc, "POST", "/payment/stripe/webhook"))
	assert.True(t, HasOperation(doc, "PUT", "/sos/:id/status"))
	assert.False(t, HasOperation(doc, "DELETE", "/user/me"))
	assert.False(t, HasOperation(doc, "GET", "/unknown"))
}

func TestLoadSpecMissingFile(t *testing.T) {
	_, err := LoadSpec(context.Background(), "does-not-exist.yml")
	assert.Error(t, err)
}

func TestToOpenAPIPath(t *testing.T) {
	assert.Equal(t, "/sos/{id}/status", ToOpenAPIPath("/sos/:id/status"))
	assert.Equal(t, "/user/me", ToOpenAPIPath("/user/me"))
	assert.Equal(t, "/a/{b}", ToOpenAPIPath("/a/:b?"))
}
