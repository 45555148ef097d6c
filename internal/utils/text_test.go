package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripAccents(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Visite médicale", "Visite medicale"},
		{"Congé", "Conge"},
		{"ÉLECTRIQUE", "ELECTRIQUE"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripAccents(tt.in), tt.in)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Visite Médicale", "visite_médicale"},
		{"  Carte -- conducteur!! ", "carte_conducteur"},
		{"Permis C/E", "permis_c_e"},
		{"__FCO__", "fco"},
		{"Type de contrat", "type_de_contrat"},
		{"***", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
	assert.Equal(t, "visite_medicale", Slugify(StripAccents("Visite Médicale")))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("CHAUFFEURS SPL", "chauffeur"))
	assert.True(t, ContainsFold("Électrique", "electri"))
	assert.False(t, ContainsFold("ADMIN", "chauffeur"))
}
