package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/inventario-ventas/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "U1", "vendedor", "inventario-ventas", 5)
	require.NoError(t, err)

	userID, role, err := pkgjwt.Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "U1", userID)
	assert.Equal(t, "vendedor", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "U1", "admin", "x", 5)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate("secreto", "U1", "admin", "x", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("secreto", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "U1", "admin", "x", 5)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
	_, _, err = pkgjwt.Parse("", "abc")
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}
